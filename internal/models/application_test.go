package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidReviewStatus(t *testing.T) {
	for _, s := range []string{"pending", "reviewed", "shortlisted", "rejected", "interviewed", "hired"} {
		assert.True(t, ValidReviewStatus(s), "status %q", s)
	}

	assert.False(t, ValidReviewStatus("archived"))
	assert.False(t, ValidReviewStatus(""))
	assert.False(t, ValidReviewStatus("Pending"))
}
