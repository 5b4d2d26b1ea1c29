package models

import "time"

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
}

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type RegisterEmployerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	CompanyName string `json:"company_name" validate:"required"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
}

type CreateJobRequest struct {
	EmployerID     string     `json:"employer_id" validate:"required,uuid"`
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description" validate:"required"`
	Requirements   string     `json:"requirements"`
	RequiredSkills []string   `json:"required_skills"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employment_type"`
	SalaryMin      *float64   `json:"salary_min"`
	SalaryMax      *float64   `json:"salary_max"`
	MinimumScore   *float64   `json:"minimum_score"`
	Status         string     `json:"status"`
	ClosesAt       *time.Time `json:"closes_at"`
}

type ApplyRequest struct {
	JobID            string `json:"job_id" validate:"required,uuid"`
	UserID           string `json:"user_id" validate:"required,uuid"`
	ResumeDocumentID string `json:"resume_document_id" validate:"required,uuid"`
}

type ApplyResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type BatchApplyRequest struct {
	UserID           string   `json:"user_id" validate:"required,uuid"`
	JobIDs           []string `json:"job_ids" validate:"required"`
	ResumeDocumentID string   `json:"resume_document_id" validate:"required,uuid"`
}

// BatchApplyItem reports the outcome for one job in a batch apply. A
// failed item carries Error and leaves the scores empty.
type BatchApplyItem struct {
	JobID      string   `json:"job_id"`
	JobTitle   string   `json:"job_title,omitempty"`
	Success    bool     `json:"success"`
	Error      string   `json:"error,omitempty"`
	MatchScore *float64 `json:"match_score,omitempty"`
	MatchLevel string   `json:"match_level,omitempty"`
}

type BatchApplyResponse struct {
	Total     int              `json:"total"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Results   []BatchApplyItem `json:"results"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes"`
}

type AnalyzeRequest struct {
	ResumeDocumentID string `json:"resume_document_id" validate:"required,uuid"`
	JobDescription   string `json:"job_description" validate:"required"`
}

// ApplicationScore is the result payload returned once scoring has
// completed.
type ApplicationScore struct {
	MatchScore     float64  `json:"match_score"`
	SkillsScore    float64  `json:"skills_score"`
	TextScore      float64  `json:"text_score"`
	ATSScore       *float64 `json:"ats_score,omitempty"`
	MatchLevel     string   `json:"match_level"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	MeetsThreshold bool     `json:"meets_threshold"`
	Recommendation string   `json:"recommendation"`
}

type ApplicationResultResponse struct {
	ID           string            `json:"id"`
	JobID        string            `json:"job_id"`
	UserID       string            `json:"user_id"`
	Processing   string            `json:"processing_status"`
	Status       string            `json:"status"`
	Result       *ApplicationScore `json:"result,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
	AppliedAt    time.Time         `json:"applied_at"`
}

// CandidateView is one row of a ranked candidate listing.
type CandidateView struct {
	ApplicationID string     `json:"application_id"`
	UserID        string     `json:"user_id"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	MatchScore    float64    `json:"match_score"`
	MatchLevel    string     `json:"match_level"`
	MatchedSkills []string   `json:"matched_skills,omitempty"`
	MissingSkills []string   `json:"missing_skills,omitempty"`
	Status        string     `json:"status"`
	AppliedAt     time.Time  `json:"applied_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}

// JobStatistics aggregates application outcomes for one job posting.
type JobStatistics struct {
	JobID             string           `json:"job_id"`
	TotalApplications int64            `json:"total_applications"`
	AverageScore      float64          `json:"average_score"`
	TopScore          float64          `json:"top_score"`
	AboveThreshold    int64            `json:"above_threshold"`
	StatusBreakdown   map[string]int64 `json:"status_breakdown"`
}
