package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingForScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, ATSRatingExcellent},
		{80, ATSRatingExcellent},
		{79, ATSRatingGood},
		{60, ATSRatingGood},
		{59, ATSRatingFair},
		{40, ATSRatingFair},
		{39, ATSRatingPoor},
		{0, ATSRatingPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RatingForScore(tt.score), "score %d", tt.score)
	}
}

func TestContactInfoPresence(t *testing.T) {
	assert.False(t, ContactInfo{}.HasEmail())
	assert.False(t, ContactInfo{}.HasPhone())

	contact := ContactInfo{Email: "dev@example.com", Phone: "+1 555 0100"}
	assert.True(t, contact.HasEmail())
	assert.True(t, contact.HasPhone())
}
