package services

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

const defaultTopKeywords = 30

// KeywordExtractorService turns free text into the per-strategy keyword
// profile the similarity calculator consumes. The linguistic and
// semantic strategies are optional; a nil collaborator just leaves that
// tier empty.
type KeywordExtractorService interface {
	ExtractProfile(ctx context.Context, text string, corpus []string) *models.KeywordProfile
	ExtractTFIDF(text string, corpus []string, topN int) *models.KeywordSet
	TechnicalSkills(text string) *models.KeywordSet
}

type keywordExtractorService struct {
	dictionary SkillsDictionary
	linguistic LinguisticExtractor
	semantic   SemanticMatcherService
	topN       int
}

func NewKeywordExtractorService(
	dictionary SkillsDictionary,
	linguistic LinguisticExtractor,
	semantic SemanticMatcherService,
	topN int,
) KeywordExtractorService {
	if topN <= 0 {
		topN = defaultTopKeywords
	}
	return &keywordExtractorService{
		dictionary: dictionary,
		linguistic: linguistic,
		semantic:   semantic,
		topN:       topN,
	}
}

// ExtractProfile implements KeywordExtractorService. Blank input yields
// an empty profile; strategy failures degrade to empty tiers instead of
// erroring.
func (k *keywordExtractorService) ExtractProfile(ctx context.Context, text string, corpus []string) *models.KeywordProfile {
	profile := models.NewKeywordProfile()
	if strings.TrimSpace(text) == "" {
		return profile
	}

	profile.Skills = k.dictionary.Match(text)
	profile.TFIDF = k.ExtractTFIDF(text, corpus, k.topN)

	if k.linguistic != nil {
		profile.Linguistic = k.linguistic.Extract(text, k.topN)
	}

	if k.semantic != nil {
		matches, err := k.semantic.MatchSkills(ctx, text)
		if err != nil {
			log.Printf("⚠️ Semantic skill matching unavailable: %v", err)
		} else {
			for _, m := range matches {
				profile.Semantic.Add(models.SkillTerm{Label: m.Skill, Confidence: m.Similarity})
			}
		}
	}

	profile.All.AddAll(profile.Skills)
	profile.All.AddAll(profile.TFIDF)
	profile.All.AddAll(profile.Linguistic)
	profile.All.AddAll(profile.Semantic)

	return profile
}

// ExtractTFIDF implements KeywordExtractorService. The corpus holds the
// documents IDF is computed over; for a resume/job comparison that is
// the two texts themselves. Terms are 1-3 word grams over consecutive
// non-stopword tokens of the input.
func (k *keywordExtractorService) ExtractTFIDF(text string, corpus []string, topN int) *models.KeywordSet {
	if topN <= 0 {
		topN = k.topN
	}

	result := models.NewKeywordSet()
	terms := termSequence(text)
	if len(terms) == 0 {
		return result
	}

	tf := make(map[string]float64)
	for _, t := range terms {
		tf[t]++
	}
	total := float64(len(terms))

	df := make(map[string]float64)
	numDocs := 0
	for _, doc := range corpus {
		numDocs++
		seen := make(map[string]bool)
		for _, t := range termSequence(doc) {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}
	if numDocs == 0 {
		// No corpus given: IDF degenerates to a constant and the
		// ranking is plain term frequency.
		numDocs = 1
	}

	type scoredTerm struct {
		term  string
		score float64
	}
	scores := make([]scoredTerm, 0, len(tf))
	for term, count := range tf {
		idf := math.Log((1+float64(numDocs))/(1+df[term])) + 1
		scores = append(scores, scoredTerm{term: term, score: (count / total) * idf})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].term < scores[j].term
	})

	for _, s := range scores {
		if result.Len() >= topN {
			break
		}
		result.Add(models.SkillTerm{Label: s.term})
	}
	return result
}

// TechnicalSkills implements KeywordExtractorService.
func (k *keywordExtractorService) TechnicalSkills(text string) *models.KeywordSet {
	return k.dictionary.Match(text)
}

const (
	minTokenRunes = 3
	minGramWords  = 1
	maxGramWords  = 3
)

// termSequence expands text into the 1-3 gram term stream used for
// TF-IDF keyword ranking.
func termSequence(text string) []string {
	return gramSequence(text, minGramWords, maxGramWords)
}

// gramSequence tokenizes text and emits every minN..maxN word gram.
// Stopwords and short tokens break the gram window, so every multi-word
// term is a phrase that actually occurs in the text.
func gramSequence(text string, minN, maxN int) []string {
	runs := tokenRuns(text)

	var terms []string
	for _, run := range runs {
		for n := minN; n <= maxN; n++ {
			for i := 0; i+n <= len(run); i++ {
				terms = append(terms, strings.Join(run[i:i+n], " "))
			}
		}
	}
	return terms
}

// tokenRuns splits text into runs of consecutive meaningful tokens.
func tokenRuns(text string) [][]string {
	var runs [][]string
	var current []string

	endRun := func() {
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}

	for _, word := range segmentWords(text) {
		if utf8.RuneCountInString(word) < minTokenRunes || englishStopWords[word] || customStopWords[word] {
			endRun()
			continue
		}
		current = append(current, word)
	}
	endRun()

	return runs
}

// englishStopWords is the usual English function-word list.
var englishStopWords = buildWordSet(
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "cannot", "could", "did", "do", "does",
	"doing", "down", "during", "each", "few", "for", "from", "further", "had", "has",
	"have", "having", "he", "her", "here", "hers", "herself", "him", "himself", "his",
	"how", "i", "if", "in", "into", "is", "it", "its", "itself", "just", "me", "more",
	"most", "my", "myself", "no", "nor", "not", "now", "of", "off", "on", "once",
	"only", "or", "other", "our", "ours", "ourselves", "out", "over", "own", "same",
	"she", "should", "so", "some", "such", "than", "that", "the", "their", "theirs",
	"them", "themselves", "then", "there", "these", "they", "this", "those", "through",
	"to", "too", "under", "until", "up", "very", "was", "we", "were", "what", "when",
	"where", "which", "while", "who", "whom", "why", "will", "with", "would", "you",
	"your", "yours", "yourself", "yourselves",
)

// customStopWords drops terms that are frequent in resumes but carry no
// signal: contact labels, months, weekdays.
var customStopWords = buildWordSet(
	"company", "city", "state", "location", "email", "phone", "address",
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
	"mon", "tue", "wed", "thu", "fri", "sat", "sun",
)

func buildWordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
