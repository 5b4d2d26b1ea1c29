package services

import (
	"log"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

// LinguisticExtractor pulls keyword candidates out of text with part of
// speech tagging and named entity recognition: nouns, proper nouns and
// adjectives plus recognized entities, ranked by frequency. Extraction
// failures degrade to an empty set.
type LinguisticExtractor interface {
	Extract(text string, topN int) *models.KeywordSet
}

type linguisticExtractor struct{}

func NewLinguisticExtractor() LinguisticExtractor {
	return &linguisticExtractor{}
}

// Penn treebank tags worth keeping: nouns, proper nouns, adjectives.
var keywordTags = map[string]bool{
	"NN":   true,
	"NNS":  true,
	"NNP":  true,
	"NNPS": true,
	"JJ":   true,
	"JJR":  true,
	"JJS":  true,
}

// Extract implements LinguisticExtractor.
func (l *linguisticExtractor) Extract(text string, topN int) *models.KeywordSet {
	result := models.NewKeywordSet()
	if strings.TrimSpace(text) == "" {
		return result
	}
	if topN <= 0 {
		topN = defaultTopKeywords
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		log.Printf("⚠️ Linguistic extraction failed: %v", err)
		return result
	}

	freq := make(map[string]int)
	var order []string
	record := func(term string) {
		term = models.NormalizeTerm(strings.TrimRight(term, "."))
		if term == "" || utf8.RuneCountInString(term) < minTokenRunes {
			return
		}
		if englishStopWords[term] || customStopWords[term] {
			return
		}
		if freq[term] == 0 {
			order = append(order, term)
		}
		freq[term]++
	}

	for _, ent := range doc.Entities() {
		record(ent.Text)
	}
	for _, tok := range doc.Tokens() {
		if keywordTags[tok.Tag] {
			record(tok.Text)
		}
	}

	// Frequency rank; first appearance breaks ties to stay
	// deterministic.
	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	for _, term := range order {
		if result.Len() >= topN {
			break
		}
		result.Add(models.SkillTerm{Label: term})
	}
	return result
}
