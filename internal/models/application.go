package models

import (
	"time"

	"github.com/google/uuid"
)

// ProcessingStatus tracks the async scoring lifecycle of an application.
type ProcessingStatus string

const (
	StatusQueued     ProcessingStatus = "queued"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// ReviewStatus is the employer-facing review state. Updates are plain
// metadata writes: any status may be set at any time, and repeating an
// update is a no-op beyond the timestamp.
type ReviewStatus string

const (
	ReviewPending     ReviewStatus = "pending"
	ReviewReviewed    ReviewStatus = "reviewed"
	ReviewShortlisted ReviewStatus = "shortlisted"
	ReviewRejected    ReviewStatus = "rejected"
	ReviewInterviewed ReviewStatus = "interviewed"
	ReviewHired       ReviewStatus = "hired"
)

// ValidReviewStatus reports whether s is one of the known review states.
func ValidReviewStatus(s string) bool {
	switch ReviewStatus(s) {
	case ReviewPending, ReviewReviewed, ReviewShortlisted, ReviewRejected, ReviewInterviewed, ReviewHired:
		return true
	}
	return false
}

// Application links a candidate to a job posting. One row per (job,
// user) pair; rows are never deleted, only scored once and re-reviewed.
type Application struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID            uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user" json:"job_id"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_user" json:"user_id"`
	ResumeDocumentID uuid.UUID        `gorm:"type:uuid;not null" json:"resume_document_id"`
	Processing       ProcessingStatus `gorm:"column:processing_status;not null;default:'queued'" json:"processing_status"`
	Status           ReviewStatus     `gorm:"not null;default:'pending'" json:"status"`
	MatchScore       *float64         `gorm:"type:decimal(5,2)" json:"match_score,omitempty"`
	SkillsScore      *float64         `gorm:"type:decimal(5,2)" json:"skills_score,omitempty"`
	TextScore        *float64         `gorm:"type:decimal(5,2)" json:"text_score,omitempty"`
	ATSScore         *float64         `gorm:"column:ats_score;type:decimal(5,2)" json:"ats_score,omitempty"`
	MatchLevel       *string          `gorm:"type:text" json:"match_level,omitempty"`
	MatchedSkills    *string          `gorm:"type:text" json:"matched_skills,omitempty"`
	MissingSkills    *string          `gorm:"type:text" json:"missing_skills,omitempty"`
	MeetsThreshold   *bool            `json:"meets_threshold,omitempty"`
	Recommendation   *string          `gorm:"type:text" json:"recommendation,omitempty"`
	// Analysis holds the full AnalysisResult JSON for the scored resume.
	Analysis     *string      `gorm:"type:text" json:"-"`
	ErrorMessage *string      `gorm:"type:text" json:"error_message,omitempty"`
	Notes        *string      `gorm:"type:text" json:"notes,omitempty"`
	AppliedAt    time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"applied_at"`
	ReviewedAt   *time.Time   `json:"reviewed_at,omitempty"`
	UpdatedAt    time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Job            Job      `gorm:"foreignKey:JobID" json:"-"`
	User           User     `gorm:"foreignKey:UserID" json:"-"`
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}
