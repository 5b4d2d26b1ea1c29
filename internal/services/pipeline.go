package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

// PipelineService runs the full resume-to-job analysis: extract text,
// build keyword profiles for both documents, score them, and attach
// recommendations. Failures are reported inside the result record, so
// callers always get a result and never a raw error.
type PipelineService interface {
	Analyze(ctx context.Context, resumePath, jobDescription string) *models.AnalysisResult
	AnalyzeText(ctx context.Context, resumeText, jobDescription string) *models.AnalysisResult
	SaveResult(result *models.AnalysisResult, path string) error
}

type pipelineService struct {
	parser     PDFParserService
	extractor  KeywordExtractorService
	similarity SimilarityService
	format     FormatAnalyzerService
	profiler   ProfileExtractorService
}

// NewPipelineService wires the analysis pipeline. format and profiler
// are optional; nil disables the corresponding section of the result.
func NewPipelineService(
	parser PDFParserService,
	extractor KeywordExtractorService,
	similarity SimilarityService,
	format FormatAnalyzerService,
	profiler ProfileExtractorService,
) PipelineService {
	return &pipelineService{
		parser:     parser,
		extractor:  extractor,
		similarity: similarity,
		format:     format,
		profiler:   profiler,
	}
}

// Analyze implements PipelineService.
func (p *pipelineService) Analyze(ctx context.Context, resumePath, jobDescription string) *models.AnalysisResult {
	log.Printf("📄 Extracting resume text from %s...", resumePath)

	content, err := p.parser.ExtractTextWithMetaData(resumePath)
	if err != nil {
		return failedResult(fmt.Sprintf("failed to extract text from resume: %v", err))
	}

	result := p.AnalyzeText(ctx, content.Text, jobDescription)
	result.ResumePath = resumePath

	if result.Success && p.format != nil {
		result.Format = p.format.Analyze(content)
		log.Printf("📋 Format analysis: score %d/100 (%s)", result.Format.ATSScore, result.Format.ATSRating)
	}

	return result
}

// AnalyzeText implements PipelineService. An empty resume with a
// non-empty job description is a valid zero-score analysis; a missing
// job description is an input error.
func (p *pipelineService) AnalyzeText(ctx context.Context, resumeText, jobDescription string) *models.AnalysisResult {
	if strings.TrimSpace(jobDescription) == "" {
		return failedResult("job description is empty")
	}

	log.Printf("🔍 Analyzing resume (%d chars) against job description (%d chars)", len(resumeText), len(jobDescription))

	corpus := []string{resumeText, jobDescription}
	resumeProfile := p.extractor.ExtractProfile(ctx, resumeText, corpus)
	jobProfile := p.extractor.ExtractProfile(ctx, jobDescription, corpus)

	match := p.similarity.CalculateWeightedScore(resumeText, jobDescription, resumeProfile, jobProfile)
	log.Printf("📊 Overall match: %.2f%% (%s)", match.OverallPercentage, match.MatchLevel)

	result := &models.AnalysisResult{
		Success:         true,
		AnalyzedAt:      time.Now(),
		Resume:          documentAnalysis(resumeText, resumeProfile),
		Job:             documentAnalysis(jobDescription, jobProfile),
		Match:           match,
		Recommendations: p.similarity.GenerateRecommendations(match),
	}

	if p.profiler != nil && strings.TrimSpace(resumeText) != "" {
		profile, err := p.profiler.ExtractProfile(ctx, resumeText)
		if err != nil {
			log.Printf("⚠️ LLM profile extraction skipped: %v", err)
		} else {
			result.Profile = profile
		}
	}

	return result
}

// SaveResult implements PipelineService, writing the result as
// indented JSON.
func (p *pipelineService) SaveResult(result *models.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}

	log.Printf("💾 Results saved to %s", path)
	return nil
}

func documentAnalysis(text string, profile *models.KeywordProfile) *models.DocumentAnalysis {
	return &models.DocumentAnalysis{
		TextLength: len(text),
		WordCount:  len(strings.Fields(text)),
		Skills:     profile.Skills.Labels(),
		TFIDF:      profile.TFIDF.Labels(),
		Linguistic: profile.Linguistic.Labels(),
		Semantic:   profile.Semantic.Terms(),
		All:        profile.All.Labels(),
	}
}

func failedResult(message string) *models.AnalysisResult {
	return &models.AnalysisResult{
		Success:    false,
		Error:      message,
		AnalyzedAt: time.Now(),
	}
}
