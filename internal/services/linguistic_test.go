package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinguisticExtract(t *testing.T) {
	svc := NewLinguisticExtractor()

	t.Run("blank text yields an empty set", func(t *testing.T) {
		assert.Zero(t, svc.Extract("", 10).Len())
		assert.Zero(t, svc.Extract("   \n\t ", 10).Len())
	})

	t.Run("noun-heavy text produces terms drawn from it", func(t *testing.T) {
		text := "Experienced engineers build scalable backend services with containers and databases in modern cloud platforms."

		set := svc.Extract(text, 0)
		require.Greater(t, set.Len(), 0)

		lower := strings.ToLower(text)
		for _, label := range set.Labels() {
			assert.Contains(t, lower, label, "extracted term %q not present in source text", label)
			assert.GreaterOrEqual(t, utf8.RuneCountInString(label), minTokenRunes)
			assert.False(t, englishStopWords[label], "stopword %q surfaced", label)
		}
	})

	t.Run("topN caps the set", func(t *testing.T) {
		text := "Engineers design networks, databases, pipelines, dashboards, schedulers, compilers and clusters."

		set := svc.Extract(text, 3)
		assert.LessOrEqual(t, set.Len(), 3)
	})

	t.Run("repeated terms outrank one-off terms", func(t *testing.T) {
		text := "Kubernetes clusters, Kubernetes operators and Kubernetes upgrades, plus one spreadsheet."

		set := svc.Extract(text, 1)
		require.Equal(t, 1, set.Len())
		assert.True(t, set.Contains("kubernetes"))
	})
}
