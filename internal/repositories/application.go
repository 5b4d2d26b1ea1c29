package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

// ErrAlreadyApplied is returned when a user applies to a job they
// already have an application for.
var ErrAlreadyApplied = errors.New("user has already applied to this job")

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	UpdateStatus(id uuid.UUID, status models.ProcessingStatus) error
	UpdateResult(id uuid.UUID, result *ApplicationScoreData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	UpdateReviewStatus(id uuid.UUID, status models.ReviewStatus, notes *string) error
	FindPendingJobs(limit int) ([]models.Application, error)
	RankedByJob(jobID uuid.UUID, minScore *float64, limit int) ([]models.Application, error)
	FindByUser(userID uuid.UUID) ([]models.Application, error)
	StatisticsForJob(jobID uuid.UUID, threshold float64) (*models.JobStatistics, error)
}

type ApplicationScoreData struct {
	MatchScore     *float64
	SkillsScore    *float64
	TextScore      *float64
	ATSScore       *float64
	MatchLevel     *string
	MatchedSkills  *string
	MissingSkills  *string
	MeetsThreshold *bool
	Recommendation *string
	Analysis       *string
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyApplied
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("application not found")
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) UpdateStatus(id uuid.UUID, status models.ProcessingStatus) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processing_status": status,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}

	return nil
}

func (r *applicationRepository) UpdateResult(id uuid.UUID, data *ApplicationScoreData) error {
	updates := map[string]interface{}{
		"processing_status": models.StatusCompleted,
		"updated_at":        time.Now(),
	}

	if data.MatchScore != nil {
		updates["match_score"] = *data.MatchScore
	}
	if data.SkillsScore != nil {
		updates["skills_score"] = *data.SkillsScore
	}
	if data.TextScore != nil {
		updates["text_score"] = *data.TextScore
	}
	if data.ATSScore != nil {
		updates["ats_score"] = *data.ATSScore
	}
	if data.MatchLevel != nil {
		updates["match_level"] = *data.MatchLevel
	}
	if data.MatchedSkills != nil {
		updates["matched_skills"] = *data.MatchedSkills
	}
	if data.MissingSkills != nil {
		updates["missing_skills"] = *data.MissingSkills
	}
	if data.MeetsThreshold != nil {
		updates["meets_threshold"] = *data.MeetsThreshold
	}
	if data.Recommendation != nil {
		updates["recommendation"] = *data.Recommendation
	}
	if data.Analysis != nil {
		updates["analysis"] = *data.Analysis
	}

	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}

	return nil
}

func (r *applicationRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processing_status": models.StatusFailed,
			"error_message":     errorMsg,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}

	return nil
}

// UpdateReviewStatus sets the employer review state. Last write wins:
// repeating the same status only refreshes the timestamps.
func (r *applicationRepository) UpdateReviewStatus(id uuid.UUID, status models.ReviewStatus, notes *string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":      status,
		"reviewed_at": now,
		"updated_at":  now,
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update review status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}

	return nil
}

func (r *applicationRepository) FindPendingJobs(limit int) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("processing_status = ?", models.StatusQueued).
		Order("applied_at ASC").
		Limit(limit).
		Find(&apps).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return apps, nil
}

// RankedByJob returns completed applications for a job ordered by match
// score, best first. A non-nil minScore filters out anything below it.
func (r *applicationRepository) RankedByJob(jobID uuid.UUID, minScore *float64, limit int) ([]models.Application, error) {
	query := r.db.
		Preload("User").
		Where("job_id = ? AND processing_status = ?", jobID, models.StatusCompleted)

	if minScore != nil {
		query = query.Where("match_score >= ?", *minScore)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	var apps []models.Application
	if err := query.Order("match_score DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to rank applications: %w", err)
	}

	return apps, nil
}

func (r *applicationRepository) FindByUser(userID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Preload("Job").
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&apps).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find applications by user: %w", err)
	}

	return apps, nil
}

// StatisticsForJob aggregates scoring outcomes for one job posting.
// Averages and maxima only consider completed applications.
func (r *applicationRepository) StatisticsForJob(jobID uuid.UUID, threshold float64) (*models.JobStatistics, error) {
	stats := &models.JobStatistics{
		JobID:           jobID.String(),
		StatusBreakdown: make(map[string]int64),
	}

	err := r.db.Model(&models.Application{}).
		Where("job_id = ?", jobID).
		Count(&stats.TotalApplications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	row := r.db.Model(&models.Application{}).
		Select("COALESCE(AVG(match_score), 0), COALESCE(MAX(match_score), 0)").
		Where("job_id = ? AND processing_status = ?", jobID, models.StatusCompleted).
		Row()
	if err := row.Scan(&stats.AverageScore, &stats.TopScore); err != nil {
		return nil, fmt.Errorf("failed to aggregate scores: %w", err)
	}

	err = r.db.Model(&models.Application{}).
		Where("job_id = ? AND processing_status = ? AND match_score >= ?", jobID, models.StatusCompleted, threshold).
		Count(&stats.AboveThreshold).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count above threshold: %w", err)
	}

	rows, err := r.db.Model(&models.Application{}).
		Select("status, COUNT(*)").
		Where("job_id = ?", jobID).
		Group("status").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to break down statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		stats.StatusBreakdown[status] = count
	}

	return stats, nil
}
