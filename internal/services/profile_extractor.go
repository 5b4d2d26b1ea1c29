package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

// ProfileExtractorService asks the LLM for a structured candidate
// profile from raw resume text. It is optional: the pipeline runs
// without it, and its failures never fail an analysis.
type ProfileExtractorService interface {
	ExtractProfile(ctx context.Context, resumeText string) (*models.CandidateProfile, error)
}

type profileExtractorService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewProfileExtractorService(gemini GeminiService, maxRetries int) ProfileExtractorService {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &profileExtractorService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// Keeps prompts inside the model's context window.
const extractionTextLimit = 15000

// ExtractProfile implements ProfileExtractorService.
func (p *profileExtractorService) ExtractProfile(ctx context.Context, resumeText string) (*models.CandidateProfile, error) {
	if p.gemini == nil {
		return nil, fmt.Errorf("llm extraction not configured")
	}
	if len(resumeText) > extractionTextLimit {
		resumeText = resumeText[:extractionTextLimit]
	}

	prompt := p.promptBuilder.BuildResumeExtractionPrompt(resumeText)

	response, err := p.gemini.GenerateTextWithRetry(ctx, prompt, 0.1, p.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("llm extraction failed: %w", err)
	}

	payload := ExtractJSONPayload(response)

	var profile models.CandidateProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	return &profile, nil
}
