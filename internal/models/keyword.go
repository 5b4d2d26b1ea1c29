package models

import (
	"sort"
	"strings"
)

// SkillTerm is a single extracted keyword or skill. Confidence is only
// populated by the semantic matcher (cosine similarity in [0,1]); the
// other strategies leave it at zero.
type SkillTerm struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence,omitempty"`
}

// NormalizeTerm lowercases a term and collapses runs of whitespace so
// that "Machine  Learning" and "machine learning" share one identity.
func NormalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// KeywordSet is an unordered, case-insensitively deduplicated collection
// of terms. Extractors build one per document; after that it is treated
// as read-only by the similarity calculator.
type KeywordSet struct {
	terms map[string]SkillTerm
}

func NewKeywordSet(labels ...string) *KeywordSet {
	s := &KeywordSet{terms: make(map[string]SkillTerm, len(labels))}
	for _, label := range labels {
		s.Add(SkillTerm{Label: label})
	}
	return s
}

// Add inserts a term under its normalized label. Duplicates keep the
// highest confidence seen.
func (s *KeywordSet) Add(t SkillTerm) {
	key := NormalizeTerm(t.Label)
	if key == "" {
		return
	}
	if existing, ok := s.terms[key]; ok && t.Confidence <= existing.Confidence {
		return
	}
	s.terms[key] = SkillTerm{Label: key, Confidence: t.Confidence}
}

func (s *KeywordSet) AddAll(other *KeywordSet) {
	if other == nil {
		return
	}
	for _, t := range other.terms {
		s.Add(t)
	}
}

func (s *KeywordSet) Contains(label string) bool {
	if s == nil {
		return false
	}
	_, ok := s.terms[NormalizeTerm(label)]
	return ok
}

func (s *KeywordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.terms)
}

// Labels returns the normalized labels in sorted order so output stays
// deterministic.
func (s *KeywordSet) Labels() []string {
	if s == nil {
		return nil
	}
	labels := make([]string, 0, len(s.terms))
	for key := range s.terms {
		labels = append(labels, key)
	}
	sort.Strings(labels)
	return labels
}

// Terms returns the terms sorted by descending confidence, then label.
func (s *KeywordSet) Terms() []SkillTerm {
	if s == nil {
		return nil
	}
	terms := make([]SkillTerm, 0, len(s.terms))
	for _, t := range s.terms {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Confidence != terms[j].Confidence {
			return terms[i].Confidence > terms[j].Confidence
		}
		return terms[i].Label < terms[j].Label
	})
	return terms
}

// KeywordProfile bundles the per-strategy keyword sets extracted from a
// single document. All is the union of the other tiers.
type KeywordProfile struct {
	Skills     *KeywordSet
	TFIDF      *KeywordSet
	Linguistic *KeywordSet
	Semantic   *KeywordSet
	All        *KeywordSet
}

func NewKeywordProfile() *KeywordProfile {
	return &KeywordProfile{
		Skills:     NewKeywordSet(),
		TFIDF:      NewKeywordSet(),
		Linguistic: NewKeywordSet(),
		Semantic:   NewKeywordSet(),
		All:        NewKeywordSet(),
	}
}
