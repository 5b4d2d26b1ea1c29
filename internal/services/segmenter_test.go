package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "symbols that belong to tech names are kept",
			in:   "C++, C# and Node.js",
			want: []string{"c++", "c#", "and", "node.js"},
		},
		{
			name: "trailing sentence dots are stripped",
			in:   "Shipped with Docker.",
			want: []string{"shipped", "with", "docker"},
		},
		{
			name: "punctuation splits words",
			in:   "python/django, react;vue",
			want: []string{"python", "django", "react", "vue"},
		},
		{
			name: "empty input",
			in:   "   \n\t ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segmentWords(tt.in))
		})
	}
}

func TestTextSegmenterSegments(t *testing.T) {
	seg := NewTextSegmenter(0)

	t.Run("all n-gram sizes in order of appearance", func(t *testing.T) {
		got := seg.Segments("alpha beta gamma", 1, 2)

		assert.Equal(t, []string{
			"alpha", "beta", "gamma",
			"alpha beta", "beta gamma",
		}, got)
	})

	t.Run("duplicate grams appear once", func(t *testing.T) {
		got := seg.Segments("go go go", 1, 2)

		assert.Equal(t, []string{"go", "go go"}, got)
	})

	t.Run("degenerate bounds are corrected", func(t *testing.T) {
		got := seg.Segments("alpha beta", 0, 0)
		assert.Equal(t, []string{"alpha", "beta"}, got)

		// maxN below minN collapses to minN.
		got = seg.Segments("alpha beta gamma", 2, 1)
		assert.Equal(t, []string{"alpha beta", "beta gamma"}, got)
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		assert.Nil(t, seg.Segments("", 1, 3))
	})
}

func TestTextSegmenterCap(t *testing.T) {
	seg := NewTextSegmenter(4)

	got := seg.Segments("one two three four five six", 1, 3)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"one", "two", "three", "four"}, got)
}
