package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
	"github.com/yasmineajailia/ATS-AGENT/internal/repositories"
)

// ErrJobNotActive is returned when applying to a job that is closed or
// still a draft.
var ErrJobNotActive = errors.New("job is not accepting applications")

type MatchingService interface {
	Apply(ctx context.Context, jobID, userID, resumeDocID uuid.UUID) (*models.Application, error)
	BatchApply(ctx context.Context, userID, resumeDocID uuid.UUID, jobIDs []uuid.UUID) (*models.BatchApplyResponse, error)
	ProcessApplication(ctx context.Context, appID uuid.UUID) error
	RankedCandidates(jobID uuid.UUID, minScore *float64, limit int) ([]models.CandidateView, error)
	TopCandidates(jobID uuid.UUID, topN int) ([]models.CandidateView, error)
	JobStatistics(jobID uuid.UUID) (*models.JobStatistics, error)
}

type matchingService struct {
	appRepo   repositories.ApplicationRepository
	jobRepo   repositories.JobRepository
	userRepo  repositories.UserRepository
	docRepo   repositories.DocumentRepository
	pdfParser PDFParserService
	format    FormatAnalyzerService
	pipeline  PipelineService
}

// NewMatchingService wires the application scoring flow. The pipeline
// must be built with the platform weight preset so skill coverage
// dominates the aggregate.
func NewMatchingService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	docRepo repositories.DocumentRepository,
	pdfParser PDFParserService,
	format FormatAnalyzerService,
	pipeline PipelineService,
) MatchingService {
	return &matchingService{
		appRepo:   appRepo,
		jobRepo:   jobRepo,
		userRepo:  userRepo,
		docRepo:   docRepo,
		pdfParser: pdfParser,
		format:    format,
		pipeline:  pipeline,
	}
}

// Apply implements MatchingService. It validates the job, user and
// resume document, then records a queued application for the worker to
// score. A second application to the same job returns ErrAlreadyApplied.
func (s *matchingService) Apply(ctx context.Context, jobID, userID, resumeDocID uuid.UUID) (*models.Application, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	if job.Status != models.JobStatusActive {
		return nil, ErrJobNotActive
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.docRepo.FindByID(resumeDocID); err != nil {
		return nil, fmt.Errorf("failed to find resume document: %w", err)
	}

	app := &models.Application{
		JobID:            jobID,
		UserID:           userID,
		ResumeDocumentID: resumeDocID,
		Processing:       models.StatusQueued,
		Status:           models.ReviewPending,
	}

	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}

	log.Printf("📥 Application %s created for job %s\n", app.ID, jobID)
	return app, nil
}

// ProcessApplication implements MatchingService. It runs the full
// scoring flow for one queued application and persists the outcome.
func (s *matchingService) ProcessApplication(ctx context.Context, appID uuid.UUID) error {
	// Update status to processing
	if err := s.appRepo.UpdateStatus(appID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting scoring for application: %s\n", appID)

	// Get application details
	app, err := s.appRepo.FindByID(appID)
	if err != nil {
		s.appRepo.UpdateError(appID, err.Error())
		return fmt.Errorf("failed to get application: %w", err)
	}

	job, err := s.jobRepo.FindByID(app.JobID)
	if err != nil {
		s.appRepo.UpdateError(appID, fmt.Sprintf("Job not found: %v", err))
		return fmt.Errorf("failed to get job: %w", err)
	}

	resumeDoc, err := s.docRepo.FindByID(app.ResumeDocumentID)
	if err != nil {
		s.appRepo.UpdateError(appID, fmt.Sprintf("Resume document not found: %v", err))
		return fmt.Errorf("failed to get resume document: %w", err)
	}

	// Step 1: Parse resume PDF
	log.Println("📄 Parsing resume...")
	content, err := s.pdfParser.ExtractTextWithMetaData(resumeDoc.FilePath)
	if err != nil {
		s.appRepo.UpdateError(appID, fmt.Sprintf("Failed to parse resume: %v", err))
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	// Step 2: Analyze resume against the job posting
	log.Printf("📊 Scoring resume against job: %s\n", job.Title)
	analysis := s.pipeline.AnalyzeText(ctx, content.Text, job.FullText())
	if !analysis.Success {
		s.appRepo.UpdateError(appID, analysis.Error)
		return fmt.Errorf("failed to analyze resume: %s", analysis.Error)
	}

	// Step 3: Check resume structure and ATS friendliness
	if s.format != nil {
		analysis.Format = s.format.Analyze(content)
	}

	// Step 4: Save results
	log.Println("💾 Saving application scores...")
	updateData, err := s.buildScoreData(analysis, job.MinimumScore)
	if err != nil {
		s.appRepo.UpdateError(appID, fmt.Sprintf("Failed to encode results: %v", err))
		return fmt.Errorf("failed to encode results: %w", err)
	}

	if err := s.appRepo.UpdateResult(appID, updateData); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	// Keep the candidate's latest resume profile on their record.
	if skillsJSON, err := json.Marshal(analysis.Resume.Skills); err == nil {
		if err := s.userRepo.UpdateResumeProfile(app.UserID, resumeDoc.FilePath, content.Text, string(skillsJSON)); err != nil {
			log.Printf("⚠️  Failed to update user resume profile: %v\n", err)
		}
	}

	log.Printf("✅ Scoring completed for application: %s (%.2f%%)\n", appID, analysis.Match.OverallPercentage)
	return nil
}

// BatchApply implements MatchingService. Jobs are scored one by one and
// a failure on one job never aborts the rest. Results come back sorted
// by match score, failures last.
func (s *matchingService) BatchApply(ctx context.Context, userID, resumeDocID uuid.UUID, jobIDs []uuid.UUID) (*models.BatchApplyResponse, error) {
	results := make([]models.BatchApplyItem, 0, len(jobIDs))

	for _, jobID := range jobIDs {
		item := models.BatchApplyItem{JobID: jobID.String()}
		if job, err := s.jobRepo.FindByID(jobID); err == nil {
			item.JobTitle = job.Title
		}

		app, err := s.Apply(ctx, jobID, userID, resumeDocID)
		if err != nil {
			item.Error = err.Error()
			results = append(results, item)
			continue
		}

		if err := s.ProcessApplication(ctx, app.ID); err != nil {
			item.Error = err.Error()
			results = append(results, item)
			continue
		}

		scored, err := s.appRepo.FindByID(app.ID)
		if err != nil {
			item.Error = err.Error()
			results = append(results, item)
			continue
		}

		item.Success = true
		item.MatchScore = scored.MatchScore
		if scored.MatchLevel != nil {
			item.MatchLevel = *scored.MatchLevel
		}
		results = append(results, item)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Success != results[j].Success {
			return results[i].Success
		}
		if results[i].MatchScore == nil || results[j].MatchScore == nil {
			return false
		}
		return *results[i].MatchScore > *results[j].MatchScore
	})

	response := &models.BatchApplyResponse{
		Total:   len(results),
		Results: results,
	}
	for _, item := range results {
		if item.Success {
			response.Succeeded++
		} else {
			response.Failed++
		}
	}

	log.Printf("📋 Batch apply for user %s: %d succeeded, %d failed\n", userID, response.Succeeded, response.Failed)
	return response, nil
}

// RankedCandidates implements MatchingService. It returns scored
// candidates for a job, best match first. A nil minScore falls back to
// the job's own minimum score; pass a pointer to 0 to see everyone.
func (s *matchingService) RankedCandidates(jobID uuid.UUID, minScore *float64, limit int) ([]models.CandidateView, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	if minScore == nil {
		minScore = &job.MinimumScore
	}

	apps, err := s.appRepo.RankedByJob(jobID, minScore, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.CandidateView, 0, len(apps))
	for _, app := range apps {
		view := models.CandidateView{
			ApplicationID: app.ID.String(),
			UserID:        app.UserID.String(),
			FullName:      app.User.FullName,
			Email:         app.User.Email,
			Status:        string(app.Status),
			AppliedAt:     app.AppliedAt,
			ReviewedAt:    app.ReviewedAt,
		}
		if app.MatchScore != nil {
			view.MatchScore = *app.MatchScore
		}
		if app.MatchLevel != nil {
			view.MatchLevel = *app.MatchLevel
		}
		view.MatchedSkills = decodeSkillList(app.MatchedSkills)
		view.MissingSkills = decodeSkillList(app.MissingSkills)
		candidates = append(candidates, view)
	}

	return candidates, nil
}

// TopCandidates implements MatchingService. It ignores the job's
// minimum score and simply returns the best topN matches.
func (s *matchingService) TopCandidates(jobID uuid.UUID, topN int) ([]models.CandidateView, error) {
	if topN <= 0 {
		topN = 10
	}
	noFloor := 0.0
	return s.RankedCandidates(jobID, &noFloor, topN)
}

// JobStatistics implements MatchingService.
func (s *matchingService) JobStatistics(jobID uuid.UUID) (*models.JobStatistics, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	stats, err := s.appRepo.StatisticsForJob(jobID, job.MinimumScore)
	if err != nil {
		return nil, err
	}

	stats.AverageScore = round2(stats.AverageScore)
	stats.TopScore = round2(stats.TopScore)
	return stats, nil
}

func (s *matchingService) buildScoreData(analysis *models.AnalysisResult, threshold float64) (*repositories.ApplicationScoreData, error) {
	match := analysis.Match

	matchedJSON, err := json.Marshal(match.MatchedSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal matched skills: %w", err)
	}
	missingJSON, err := json.Marshal(match.MissingSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal missing skills: %w", err)
	}
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	matchScore := match.OverallPercentage
	skillsScore := round2(match.Detailed.SkillsMatchRate * 100)
	textScore := round2(match.Detailed.TextSimilarity * 100)
	meets := matchScore >= threshold
	recommendation := platformRecommendation(matchScore, threshold)

	matched := string(matchedJSON)
	missing := string(missingJSON)
	analysisStr := string(analysisJSON)

	data := &repositories.ApplicationScoreData{
		MatchScore:     &matchScore,
		SkillsScore:    &skillsScore,
		TextScore:      &textScore,
		MatchLevel:     &match.MatchLevel,
		MatchedSkills:  &matched,
		MissingSkills:  &missing,
		MeetsThreshold: &meets,
		Recommendation: &recommendation,
		Analysis:       &analysisStr,
	}
	if analysis.Format != nil {
		atsScore := float64(analysis.Format.ATSScore)
		data.ATSScore = &atsScore
	}
	return data, nil
}

// platformRecommendation phrases the outcome for the candidate relative
// to the job's minimum score.
func platformRecommendation(score, threshold float64) string {
	switch {
	case score >= 80:
		return "Excellent match! You are a strong candidate for this position."
	case score >= threshold+10:
		return "Good match! You meet the requirements and should have a good chance."
	case score >= threshold:
		return "You meet the minimum threshold. Consider highlighting relevant experience."
	default:
		return fmt.Sprintf("Your match score is below the threshold (%.0f%%). Consider building skills in missing areas.", threshold)
	}
}

func decodeSkillList(raw *string) []string {
	if raw == nil {
		return nil
	}
	var skills []string
	if err := json.Unmarshal([]byte(*raw), &skills); err != nil {
		return nil
	}
	return skills
}
