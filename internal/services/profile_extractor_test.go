package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemini plays back a canned completion and records what it was
// asked for.
type fakeGemini struct {
	response    string
	err         error
	lastPrompt  string
	lastTemp    float32
	lastRetries int
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("embeddings not supported in this fake")
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return f.GenerateTextWithRetry(ctx, prompt, temperature, 1)
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	f.lastPrompt = prompt
	f.lastTemp = temperature
	f.lastRetries = maxRetries
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const extractionResponse = "```json\n" + `{
  "technical_skills": [
    {"skill": "Go", "years_experience": 4, "proficiency": "expert"},
    {"skill": "PostgreSQL"}
  ],
  "soft_skills": [
    {"skill": "communication", "context": "led sprint reviews"}
  ],
  "total_experience_years": 6,
  "certifications": [
    {"name": "CKA", "issuer": "CNCF", "year": 2023}
  ],
  "education": [
    {"degree": "BSc Computer Science", "institution": "State University", "year": 2018, "field": "Computer Science"}
  ],
  "job_titles": ["Backend Engineer"],
  "industries": ["fintech"],
  "summary": "Backend engineer with platform experience."
}` + "\n```"

func TestProfileExtractor(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a fenced JSON response", func(t *testing.T) {
		fake := &fakeGemini{response: extractionResponse}
		svc := NewProfileExtractorService(fake, 0)

		profile, err := svc.ExtractProfile(ctx, "Go engineer, six years of backend work.")

		require.NoError(t, err)
		require.Len(t, profile.TechnicalSkills, 2)
		assert.Equal(t, []string{"Go", "PostgreSQL"}, profile.SkillNames())
		require.NotNil(t, profile.TechnicalSkills[0].YearsExperience)
		assert.InDelta(t, 4.0, *profile.TechnicalSkills[0].YearsExperience, 1e-9)
		assert.Equal(t, "expert", profile.TechnicalSkills[0].Proficiency)
		assert.Nil(t, profile.TechnicalSkills[1].YearsExperience)
		assert.InDelta(t, 6.0, profile.TotalExperienceYears, 1e-9)
		require.Len(t, profile.Certifications, 1)
		require.NotNil(t, profile.Certifications[0].Year)
		assert.Equal(t, 2023, *profile.Certifications[0].Year)
		assert.Equal(t, []string{"Backend Engineer"}, profile.JobTitles)
		assert.Equal(t, "Backend engineer with platform experience.", profile.Summary)

		assert.Contains(t, fake.lastPrompt, "Go engineer, six years of backend work.")
		assert.Equal(t, float32(0.1), fake.lastTemp)
		assert.Equal(t, 3, fake.lastRetries, "maxRetries <= 0 falls back to the default")
	})

	t.Run("passes an explicit retry limit through", func(t *testing.T) {
		fake := &fakeGemini{response: extractionResponse}
		svc := NewProfileExtractorService(fake, 5)

		_, err := svc.ExtractProfile(ctx, "short resume")

		require.NoError(t, err)
		assert.Equal(t, 5, fake.lastRetries)
	})

	t.Run("truncates oversized resume text", func(t *testing.T) {
		fake := &fakeGemini{response: extractionResponse}
		svc := NewProfileExtractorService(fake, 0)

		resume := strings.Repeat("x", extractionTextLimit) + "OMITTED"
		_, err := svc.ExtractProfile(ctx, resume)

		require.NoError(t, err)
		assert.NotContains(t, fake.lastPrompt, "OMITTED")
		assert.Contains(t, fake.lastPrompt, strings.Repeat("x", 64))
	})

	t.Run("wraps generation failures", func(t *testing.T) {
		fake := &fakeGemini{err: errors.New("quota exhausted")}
		svc := NewProfileExtractorService(fake, 0)

		profile, err := svc.ExtractProfile(ctx, "resume")

		require.EqualError(t, err, "llm extraction failed: quota exhausted")
		assert.Nil(t, profile)
	})

	t.Run("rejects responses without a JSON object", func(t *testing.T) {
		fake := &fakeGemini{response: "Sorry, I cannot help with that."}
		svc := NewProfileExtractorService(fake, 0)

		profile, err := svc.ExtractProfile(ctx, "resume")

		require.ErrorContains(t, err, "failed to parse extraction response")
		assert.Nil(t, profile)
	})

	t.Run("requires a configured client", func(t *testing.T) {
		svc := NewProfileExtractorService(nil, 0)

		profile, err := svc.ExtractProfile(ctx, "resume")

		require.EqualError(t, err, "llm extraction not configured")
		assert.Nil(t, profile)
	})
}

func TestExtractJSONPayload(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "fenced with language tag",
			response: "```json\n{\"a\": 1}\n```",
			want:     `{"a": 1}`,
		},
		{
			name:     "fenced without language tag",
			response: "```\n{\"a\": 1}\n```",
			want:     `{"a": 1}`,
		},
		{
			name:     "prose around the object",
			response: "Here is the extraction:\n{\"a\": 1}\nLet me know if you need more.",
			want:     `{"a": 1}`,
		},
		{
			name:     "nested objects keep the outermost braces",
			response: `{"a": {"b": 2}}`,
			want:     `{"a": {"b": 2}}`,
		},
		{
			name:     "already clean",
			response: `{"a": 1}`,
			want:     `{"a": 1}`,
		},
		{
			name:     "no object at all comes back unchanged",
			response: "no json here",
			want:     "no json here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONPayload(tt.response))
		})
	}
}
