package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns fixed vectors per text and an orthogonal
// fallback for everything else, so similarity outcomes are exact.
type stubEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	err      error
	calls    int
}

func (s *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return s.fallback, nil
}

func TestCosineSimilarity32(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical unit vectors", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal vectors", []float32{1, 0, 0}, []float32{0, 1, 0}, 0},
		{"opposite vectors", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scaling does not matter", []float32{2, 0}, []float32{5, 0}, 1},
		{"length mismatch scores zero", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"empty vectors score zero", nil, nil, 0},
		{"zero vector scores zero", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity32(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRankSkillMatches(t *testing.T) {
	candidates := []SkillMatch{
		{Skill: "docker", Similarity: 0.55},
		{Skill: "kubernetes", Similarity: 0.91},
		{Skill: "terraform", Similarity: 0.70},
		{Skill: "ansible", Similarity: 0.70},
	}

	t.Run("filters by threshold and sorts descending", func(t *testing.T) {
		matches := rankSkillMatches(candidates, 0.60, 0)

		require.Len(t, matches, 3)
		assert.Equal(t, "kubernetes", matches[0].Skill)
		// Equal similarity resolves by label.
		assert.Equal(t, "ansible", matches[1].Skill)
		assert.Equal(t, "terraform", matches[2].Skill)
	})

	t.Run("topK cuts the tail", func(t *testing.T) {
		matches := rankSkillMatches(candidates, 0.50, 2)

		require.Len(t, matches, 2)
		assert.Equal(t, "kubernetes", matches[0].Skill)
	})

	t.Run("raising the threshold only shrinks the result", func(t *testing.T) {
		loose := rankSkillMatches(candidates, 0.50, 0)
		strict := rankSkillMatches(candidates, 0.75, 0)

		assert.LessOrEqual(t, len(strict), len(loose))
		for _, m := range strict {
			found := false
			for _, l := range loose {
				if l.Skill == m.Skill {
					found = true
					break
				}
			}
			assert.True(t, found, "strict match %q missing from loose set", m.Skill)
		}
	})

	t.Run("nothing survives an impossible threshold", func(t *testing.T) {
		assert.Empty(t, rankSkillMatches(candidates, 1.01, 0))
	})
}

func TestLocalSkillIndexQuery(t *testing.T) {
	idx := &localSkillIndex{
		skills: []string{"go", "python", "docker"},
		vectors: [][]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	}

	t.Run("per-skill best similarity across segment vectors", func(t *testing.T) {
		// First vector is an exact hit on go, second a partial hit on
		// python and docker.
		vectors := [][]float32{
			{1, 0, 0},
			{0, 0.8, 0.6},
		}

		matches, err := idx.Query(context.Background(), vectors, 0.60, 0)
		require.NoError(t, err)

		require.Len(t, matches, 3)
		assert.Equal(t, SkillMatch{Skill: "go", Similarity: 1}, matches[0])
		assert.Equal(t, "python", matches[1].Skill)
		assert.InDelta(t, 0.8, matches[1].Similarity, 1e-6)
		assert.InDelta(t, 0.6, matches[2].Similarity, 1e-6)
	})

	t.Run("threshold hides weak skills", func(t *testing.T) {
		matches, err := idx.Query(context.Background(), [][]float32{{0, 0.8, 0.6}}, 0.75, 0)
		require.NoError(t, err)

		require.Len(t, matches, 1)
		assert.Equal(t, "python", matches[0].Skill)
	})

	t.Run("cancelled context aborts the scan", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := idx.Query(ctx, [][]float32{{1, 0, 0}}, 0.5, 0)
		assert.ErrorIs(t, err, context.Canceled)
	})

	assert.Equal(t, 3, idx.Size())
}

func TestNewLocalSkillIndex(t *testing.T) {
	ctx := context.Background()
	skills := []string{"go", "python", "docker"}
	vectors := map[string][]float32{
		"go":     {1, 0, 0},
		"python": {0, 1, 0},
		"docker": {0, 0, 1},
	}

	t.Run("empty corpus is rejected", func(t *testing.T) {
		_, err := NewLocalSkillIndex(ctx, &stubEmbedder{}, nil, t.TempDir(), 0, "embed-1")
		assert.Error(t, err)
	})

	t.Run("builds, caches, and reloads without re-embedding", func(t *testing.T) {
		cacheDir := t.TempDir()
		embedder := &stubEmbedder{vectors: vectors}

		idx, err := NewLocalSkillIndex(ctx, embedder, skills, cacheDir, 3, "embed-1")
		require.NoError(t, err)
		assert.Equal(t, 3, idx.Size())
		assert.Equal(t, 3, embedder.calls)

		cachePath := filepath.Join(cacheDir, "skill_embeddings_3.gob")
		_, err = os.Stat(cachePath)
		require.NoError(t, err, "cache file should exist after first build")

		// A broken embedder proves the second build is served from cache.
		broken := &stubEmbedder{err: errors.New("embedding service down")}
		cached, err := NewLocalSkillIndex(ctx, broken, skills, cacheDir, 3, "embed-1")
		require.NoError(t, err)
		assert.Equal(t, 3, cached.Size())
		assert.Zero(t, broken.calls)

		matches, err := cached.Query(ctx, [][]float32{{1, 0, 0}}, 0.9, 0)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "go", matches[0].Skill)
	})

	t.Run("corpus change invalidates the cache", func(t *testing.T) {
		cacheDir := t.TempDir()
		_, err := NewLocalSkillIndex(ctx, &stubEmbedder{vectors: vectors}, skills, cacheDir, 3, "embed-1")
		require.NoError(t, err)

		// Different labels under the same cache key force a rebuild, so
		// the broken embedder now surfaces.
		changed := []string{"go", "python", "terraform"}
		_, err = NewLocalSkillIndex(ctx, &stubEmbedder{err: errors.New("down")}, changed, cacheDir, 3, "embed-1")
		assert.Error(t, err)
	})

	t.Run("model change invalidates the cache", func(t *testing.T) {
		cacheDir := t.TempDir()
		_, err := NewLocalSkillIndex(ctx, &stubEmbedder{vectors: vectors}, skills, cacheDir, 3, "embed-1")
		require.NoError(t, err)

		_, err = NewLocalSkillIndex(ctx, &stubEmbedder{err: errors.New("down")}, skills, cacheDir, 3, "embed-2")
		assert.Error(t, err)
	})
}

func TestEmbeddingCacheFileName(t *testing.T) {
	assert.Equal(t, "skill_embeddings_500.gob", embeddingCacheFileName(500))
	assert.Equal(t, "skill_embeddings_full.gob", embeddingCacheFileName(0))
	assert.Equal(t, "skill_embeddings_full.gob", embeddingCacheFileName(-1))
}

func TestSemanticMatcherMatchSkills(t *testing.T) {
	ctx := context.Background()

	index := &localSkillIndex{
		skills:  []string{"go", "python"},
		vectors: [][]float32{{1, 0, 0}, {0, 1, 0}},
	}
	embedder := &stubEmbedder{
		vectors:  map[string][]float32{"golang": {1, 0, 0}},
		fallback: []float32{0, 0, 1},
	}
	matcher := NewSemanticMatcherService(embedder, index, NewTextSegmenter(0), 0.60, 0)

	t.Run("text mentioning a corpus skill matches it", func(t *testing.T) {
		matches, err := matcher.MatchSkills(ctx, "golang developer")
		require.NoError(t, err)

		require.Len(t, matches, 1)
		assert.Equal(t, "go", matches[0].Skill)
		assert.InDelta(t, 1.0, matches[0].Similarity, 1e-9)
	})

	t.Run("empty text yields no matches and no error", func(t *testing.T) {
		matches, err := matcher.MatchSkills(ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("stricter threshold returns a subset", func(t *testing.T) {
		loose, err := matcher.MatchSkillsWithOptions(ctx, "golang developer", 0.50, 0)
		require.NoError(t, err)
		strict, err := matcher.MatchSkillsWithOptions(ctx, "golang developer", 0.99, 0)
		require.NoError(t, err)

		assert.LessOrEqual(t, len(strict), len(loose))
	})

	t.Run("embedder failure propagates", func(t *testing.T) {
		failing := NewSemanticMatcherService(
			&stubEmbedder{err: errors.New("quota exhausted")},
			index,
			NewTextSegmenter(0),
			0.60,
			0,
		)

		_, err := failing.MatchSkills(ctx, "golang developer")
		assert.ErrorContains(t, err, "failed to embed segment")
	})

	t.Run("unconfigured matcher errors", func(t *testing.T) {
		bare := NewSemanticMatcherService(nil, nil, nil, 0, 0)

		_, err := bare.MatchSkills(ctx, "golang developer")
		assert.ErrorContains(t, err, "not configured")
	})
}

func TestLoadSkillsCorpus(t *testing.T) {
	writeCSV := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "skills.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("header skipped, junk rows dropped, duplicates deduped", func(t *testing.T) {
		path := writeCSV(t, "skill,category\nGo,language\nx,short\n12345,numeric\nGo,dup\nKubernetes,tool\n")

		skills, err := LoadSkillsCorpus(path, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "Kubernetes"}, skills)
	})

	t.Run("maxSkills caps the rows read", func(t *testing.T) {
		path := writeCSV(t, "skill\nGo\nPython\nDocker\nRust\n")

		skills, err := LoadSkillsCorpus(path, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "Python"}, skills)
	})

	t.Run("rows with extra columns keep the first", func(t *testing.T) {
		path := writeCSV(t, "skill\n\"Spring Boot\",framework,java\n")

		skills, err := LoadSkillsCorpus(path, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"Spring Boot"}, skills)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadSkillsCorpus(filepath.Join(t.TempDir(), "absent.csv"), 0)
		assert.ErrorContains(t, err, "failed to open skills file")
	})

	t.Run("header-only file errors", func(t *testing.T) {
		path := writeCSV(t, "skill,category\n")

		_, err := LoadSkillsCorpus(path, 0)
		assert.ErrorContains(t, err, "no usable skills")
	})
}

func TestSkillMatchSet(t *testing.T) {
	set := SkillMatchSet([]SkillMatch{
		{Skill: "Terraform", Similarity: 0.82},
		{Skill: "terraform", Similarity: 0.75},
		{Skill: "Docker", Similarity: 0.64},
	})

	assert.Equal(t, 2, set.Len())
	terms := set.Terms()
	assert.Equal(t, "terraform", terms[0].Label)
	assert.InDelta(t, 0.82, terms[0].Confidence, 1e-9)
}
