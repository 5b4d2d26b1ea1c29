package services

import (
	"context"
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

const (
	defaultSimilarityThreshold = 0.60
	minSegmentWords            = 1
	maxSegmentWords            = 5
)

// SkillMatch is one semantic hit against the skills corpus.
type SkillMatch struct {
	Skill      string  `json:"skill"`
	Similarity float64 `json:"similarity"`
}

// SkillIndex aggregates segment vectors into per-skill best similarity.
// Query returns the skills whose best similarity reaches the threshold,
// sorted by descending score and cut to topK when topK > 0.
type SkillIndex interface {
	Query(ctx context.Context, vectors [][]float32, threshold float64, topK int) ([]SkillMatch, error)
	Size() int
}

// SemanticMatcherService extracts corpus skills mentioned in free text
// by embedding its word n-grams and ranking skills by best cosine
// similarity.
type SemanticMatcherService interface {
	MatchSkills(ctx context.Context, text string) ([]SkillMatch, error)
	MatchSkillsWithOptions(ctx context.Context, text string, threshold float64, topK int) ([]SkillMatch, error)
}

type semanticMatcher struct {
	embedder  Embedder
	index     SkillIndex
	segmenter TextSegmenter
	threshold float64
	topK      int
}

func NewSemanticMatcherService(embedder Embedder, index SkillIndex, segmenter TextSegmenter, threshold float64, topK int) SemanticMatcherService {
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}
	if segmenter == nil {
		segmenter = NewTextSegmenter(0)
	}
	return &semanticMatcher{
		embedder:  embedder,
		index:     index,
		segmenter: segmenter,
		threshold: threshold,
		topK:      topK,
	}
}

// MatchSkills implements SemanticMatcherService using the configured
// threshold and top-K.
func (s *semanticMatcher) MatchSkills(ctx context.Context, text string) ([]SkillMatch, error) {
	return s.MatchSkillsWithOptions(ctx, text, s.threshold, s.topK)
}

// MatchSkillsWithOptions implements SemanticMatcherService.
func (s *semanticMatcher) MatchSkillsWithOptions(ctx context.Context, text string, threshold float64, topK int) ([]SkillMatch, error) {
	if s.embedder == nil || s.index == nil {
		return nil, fmt.Errorf("semantic matcher not configured")
	}
	if threshold <= 0 {
		threshold = s.threshold
	}

	segments := s.segmenter.Segments(text, minSegmentWords, maxSegmentWords)
	if len(segments) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, 0, len(segments))
	for _, segment := range segments {
		if utf8.RuneCountInString(segment) <= 1 {
			continue
		}
		vector, err := s.embedder.GenerateEmbedding(ctx, segment)
		if err != nil {
			return nil, fmt.Errorf("failed to embed segment: %w", err)
		}
		vectors = append(vectors, vector)
	}
	if len(vectors) == 0 {
		return nil, nil
	}

	return s.index.Query(ctx, vectors, threshold, topK)
}

// localSkillIndex holds the whole corpus embedding matrix in memory.
// It is built once at startup and only read afterwards, so concurrent
// queries are safe.
type localSkillIndex struct {
	skills  []string
	vectors [][]float32
}

// NewLocalSkillIndex loads or builds the embedding matrix for the given
// skill labels. The on-disk cache is reused when its labels match;
// otherwise all skills are re-embedded and the cache rewritten.
func NewLocalSkillIndex(ctx context.Context, embedder Embedder, skills []string, cacheDir string, maxSkills int, model string) (SkillIndex, error) {
	if len(skills) == 0 {
		return nil, fmt.Errorf("empty skills corpus")
	}

	cachePath := filepath.Join(cacheDir, embeddingCacheFileName(maxSkills))
	if vectors, ok := loadEmbeddingCache(cachePath, model, skills); ok {
		log.Printf("✅ Loaded embeddings for %d skills from cache", len(skills))
		return &localSkillIndex{skills: skills, vectors: vectors}, nil
	}

	log.Printf("🔄 Creating embeddings for %d skills (one-time operation)...", len(skills))
	vectors := make([][]float32, 0, len(skills))
	for i, skill := range skills {
		vector, err := embedder.GenerateEmbedding(ctx, skill)
		if err != nil {
			return nil, fmt.Errorf("failed to embed skill %q: %w", skill, err)
		}
		vectors = append(vectors, vector)

		if (i+1)%1000 == 0 {
			log.Printf("📦 Embedded %d/%d skills", i+1, len(skills))
		}
	}

	if err := saveEmbeddingCache(cachePath, model, skills, vectors); err != nil {
		log.Printf("⚠️ Could not save embeddings cache: %v", err)
	} else {
		log.Printf("💾 Saved embeddings cache to %s", cachePath)
	}

	return &localSkillIndex{skills: skills, vectors: vectors}, nil
}

// Query implements SkillIndex.
func (idx *localSkillIndex) Query(ctx context.Context, vectors [][]float32, threshold float64, topK int) ([]SkillMatch, error) {
	best := make([]float64, len(idx.skills))

	for _, vector := range vectors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, skillVector := range idx.vectors {
			if sim := cosineSimilarity32(vector, skillVector); sim > best[i] {
				best[i] = sim
			}
		}
	}

	candidates := make([]SkillMatch, 0)
	for i, score := range best {
		if score > 0 {
			candidates = append(candidates, SkillMatch{Skill: idx.skills[i], Similarity: score})
		}
	}
	return rankSkillMatches(candidates, threshold, topK), nil
}

// rankSkillMatches filters candidates by threshold, sorts them by
// descending similarity (label ascending on ties) and cuts to topK when
// topK > 0. Raising the threshold can only shrink the result.
func rankSkillMatches(candidates []SkillMatch, threshold float64, topK int) []SkillMatch {
	matches := make([]SkillMatch, 0, len(candidates))
	for _, c := range candidates {
		if c.Similarity >= threshold {
			matches = append(matches, c)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Skill < matches[j].Skill
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

func (idx *localSkillIndex) Size() int {
	return len(idx.skills)
}

func cosineSimilarity32(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// LoadSkillsCorpus reads skill labels from the first column of a CSV
// file. The first row is treated as a header. Rows are trimmed and
// kept when at least two characters long and not purely numeric;
// duplicates are dropped preserving first occurrence. maxSkills > 0
// limits how many data rows are read.
func LoadSkillsCorpus(path string, maxSkills int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open skills file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var skills []string
	seen := make(map[string]bool)
	header := true
	rows := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read skills file: %w", err)
		}
		if header {
			header = false
			continue
		}

		rows++
		if len(record) > 0 {
			skill := strings.TrimSpace(record[0])
			if utf8.RuneCountInString(skill) >= 2 && !isAllDigits(skill) && !seen[skill] {
				seen[skill] = true
				skills = append(skills, skill)
			}
		}

		if maxSkills > 0 && rows >= maxSkills {
			break
		}
	}

	if len(skills) == 0 {
		return nil, fmt.Errorf("no usable skills in %s", path)
	}
	return skills, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// embeddingCacheFile is the gob payload written next to the corpus so
// embeddings survive restarts. Model and labels are stored to detect a
// stale cache.
type embeddingCacheFile struct {
	Model   string
	Skills  []string
	Vectors [][]float32
}

func embeddingCacheFileName(maxSkills int) string {
	suffix := "full"
	if maxSkills > 0 {
		suffix = strconv.Itoa(maxSkills)
	}
	return fmt.Sprintf("skill_embeddings_%s.gob", suffix)
}

func loadEmbeddingCache(path, model string, skills []string) ([][]float32, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var cached embeddingCacheFile
	if err := gob.NewDecoder(f).Decode(&cached); err != nil {
		log.Printf("⚠️ Could not load embeddings cache: %v", err)
		return nil, false
	}

	if cached.Model != model || !equalStringSlices(cached.Skills, skills) {
		log.Println("🔄 Embeddings cache does not match current corpus, regenerating...")
		return nil, false
	}
	return cached.Vectors, true
}

func saveEmbeddingCache(path, model string, skills []string, vectors [][]float32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer f.Close()

	payload := embeddingCacheFile{Model: model, Skills: skills, Vectors: vectors}
	if err := gob.NewEncoder(f).Encode(&payload); err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	return nil
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SkillMatchSet converts matches into a KeywordSet for tier scoring.
func SkillMatchSet(matches []SkillMatch) *models.KeywordSet {
	set := models.NewKeywordSet()
	for _, m := range matches {
		set.Add(models.SkillTerm{Label: m.Skill, Confidence: m.Similarity})
	}
	return set
}
