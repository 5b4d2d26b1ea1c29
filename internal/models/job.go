package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

// DefaultMinimumScore is the match-score threshold a job gets when the
// employer does not set one.
const DefaultMinimumScore = 50.0

type Job struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EmployerID   uuid.UUID `gorm:"type:uuid;not null" json:"employer_id"`
	Title        string    `gorm:"type:text;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Requirements string    `gorm:"type:text" json:"requirements,omitempty"`
	// RequiredSkills holds a JSON-encoded skill list entered by the
	// employer, supplementing what extraction finds in the description.
	RequiredSkills string     `gorm:"type:text" json:"required_skills,omitempty"`
	Location       string     `gorm:"type:text" json:"location,omitempty"`
	EmploymentType string     `gorm:"type:text" json:"employment_type,omitempty"`
	SalaryMin      *float64   `gorm:"type:decimal(12,2)" json:"salary_min,omitempty"`
	SalaryMax      *float64   `gorm:"type:decimal(12,2)" json:"salary_max,omitempty"`
	MinimumScore   float64    `gorm:"not null;default:50" json:"minimum_score"`
	Status         JobStatus  `gorm:"not null;default:'active'" json:"status"`
	PostedAt       time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"posted_at"`
	ClosesAt       *time.Time `json:"closes_at,omitempty"`
	CreatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Employer Employer `gorm:"foreignKey:EmployerID" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}

// FullText joins title, description and requirements into the text the
// matching engine scores against.
func (j *Job) FullText() string {
	parts := []string{j.Title, j.Description}
	if j.Requirements != "" {
		parts = append(parts, "Requirements:\n"+j.Requirements)
	}
	if j.Location != "" {
		parts = append(parts, "Location: "+j.Location)
	}
	if j.EmploymentType != "" {
		parts = append(parts, "Employment Type: "+j.EmploymentType)
	}
	return strings.Join(parts, "\n\n")
}
