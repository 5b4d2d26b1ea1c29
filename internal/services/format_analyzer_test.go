package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

const wellFormedResume = `Jane Smith
jane.smith@example.com | +1 (555) 123-4567 | linkedin.com/in/janesmith

Summary
Backend engineer with eight years of experience building payment systems.

Experience
• Led the payments team at Acme Corp from 2019 to 2024
• Built the order pipeline in Go between 2016 and 2019

Education
BSc Computer Science, State University, 2012 to 2016

Skills
Go, PostgreSQL, Kubernetes, Docker

Languages
English - Native
German - Intermediate`

func TestFormatAnalyzerWellFormedResume(t *testing.T) {
	svc := NewFormatAnalyzerService()

	report := svc.AnalyzeText(wellFormedResume, 1)
	require.NotNil(t, report)

	assert.Equal(t, 1, report.PageCount)
	assert.Equal(t, []string{"summary", "experience", "education", "skills", "languages"}, report.DetectedSections)
	assert.Equal(t, 5, report.SectionCount)
	assert.True(t, report.HasLanguageSection)
	assert.Equal(t, "Go, PostgreSQL, Kubernetes, Docker", report.ExtractedSections["skills"])

	assert.Equal(t, "jane.smith@example.com", report.Contact.Email)
	assert.Equal(t, "+1 (555) 123-4567", report.Contact.Phone)
	assert.Equal(t, "linkedin.com/in/janesmith", report.Contact.LinkedIn)
	assert.Empty(t, report.Contact.GitHub)

	assert.True(t, report.HasBullets)
	assert.Equal(t, 2, report.BulletCount)
	assert.Equal(t, 6, report.DateCount)

	assert.Equal(t, []models.LanguageSkill{
		{Language: "English", Proficiency: "Native"},
		{Language: "German", Proficiency: "Intermediate"},
	}, report.Languages)

	// contact 30 + sections 25 + bullets 15 + dates 10 + length 10 +
	// line width 10
	assert.Equal(t, 100, report.ATSScore)
	assert.Equal(t, models.ATSRatingExcellent, report.ATSRating)
	assert.Empty(t, report.Issues)
}

func TestFormatAnalyzerBareText(t *testing.T) {
	svc := NewFormatAnalyzerService()

	report := svc.AnalyzeText("Just a short note", 1)
	require.NotNil(t, report)

	// Only the line-width points apply.
	assert.Equal(t, 10, report.ATSScore)
	assert.Equal(t, models.ATSRatingPoor, report.ATSRating)
	assert.False(t, report.Contact.HasEmail())
	assert.False(t, report.HasBullets)
	assert.Zero(t, report.SectionCount)

	require.Len(t, report.Issues, 6)
	assert.Contains(t, report.Issues, "Add an email address")
	assert.Contains(t, report.Issues, "Use bullet points for better readability")
	assert.Contains(t, report.Issues, "Resume text is very short; the PDF may not be readable by ATS parsers")
}

func TestFormatAnalyzerEmptyInput(t *testing.T) {
	svc := NewFormatAnalyzerService()

	t.Run("empty text", func(t *testing.T) {
		report := svc.AnalyzeText("", 0)

		assert.Zero(t, report.ATSScore)
		assert.Zero(t, report.TextLength)
		assert.Zero(t, report.WordCount)
		assert.Zero(t, report.AvgLineLength)
		assert.Equal(t, models.ATSRatingPoor, report.ATSRating)
	})

	t.Run("nil content", func(t *testing.T) {
		report := svc.Analyze(nil)

		require.NotNil(t, report)
		assert.Zero(t, report.PageCount)
		assert.Zero(t, report.ATSScore)
	})
}

func TestDetectSections(t *testing.T) {
	t.Run("header variants map to canonical names", func(t *testing.T) {
		lines := []string{
			"TECHNICAL SKILLS:",
			"Go, Rust",
			"Work Experience",
			"Acme Corp",
			"Academic Background",
			"State University",
		}

		order, extracted := detectSections(lines)

		assert.Equal(t, []string{"skills", "experience", "education"}, order)
		assert.Equal(t, "Go, Rust", extracted["skills"])
		assert.Equal(t, "Acme Corp", extracted["experience"])
	})

	t.Run("repeated headers are recorded once", func(t *testing.T) {
		lines := []string{
			"Skills",
			"Go",
			"Skills",
			"Rust",
		}

		order, extracted := detectSections(lines)

		assert.Equal(t, []string{"skills"}, order)
		assert.Equal(t, "Go\nRust", extracted["skills"])
	})

	t.Run("text before the first header is dropped", func(t *testing.T) {
		lines := []string{"Jane Smith", "Education", "BSc"}

		order, extracted := detectSections(lines)

		assert.Equal(t, []string{"education"}, order)
		assert.Equal(t, "BSc", extracted["education"])
	})
}

func TestDetectLanguagesWithoutSection(t *testing.T) {
	lines := []string{
		"Fluent English speaker, basic Spanish",
	}

	detected := detectLanguages(lines, "")

	require.Len(t, detected, 2)
	assert.Equal(t, "English", detected[0].Language)
	assert.Equal(t, "Spanish", detected[1].Language)
	// First proficiency word on the line wins for all its languages.
	assert.Equal(t, "Fluent", detected[0].Proficiency)
}
