package services

import (
	"strings"
	"unicode"
)

// TextSegmenter produces the candidate phrases the semantic matcher
// embeds: unique word n-grams of the input between minN and maxN words,
// in order of appearance.
type TextSegmenter interface {
	Segments(text string, minN int, maxN int) []string
}

type textSegmenter struct {
	maxSegments int
}

const defaultMaxSegments = 2000

func NewTextSegmenter(maxSegments int) TextSegmenter {
	if maxSegments <= 0 {
		maxSegments = defaultMaxSegments
	}
	return &textSegmenter{maxSegments: maxSegments}
}

// Segments implements TextSegmenter.
func (ts *textSegmenter) Segments(text string, minN int, maxN int) []string {
	if minN <= 0 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}

	words := segmentWords(text)
	if len(words) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var segments []string

	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(words); i++ {
			gram := strings.Join(words[i:i+n], " ")
			if seen[gram] {
				continue
			}
			seen[gram] = true

			segments = append(segments, gram)
			if len(segments) >= ts.maxSegments {
				return segments
			}
		}
	}

	return segments
}

// segmentWords lowercases the text and splits on anything that is not a
// letter, digit or one of "+#." so terms like "c++", "c#" and "node.js"
// stay whole. Trailing dots are stripped to keep sentence ends clean.
func segmentWords(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		w := strings.TrimRight(current.String(), ".")
		current.Reset()
		if w != "" {
			words = append(words, w)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return words
}
