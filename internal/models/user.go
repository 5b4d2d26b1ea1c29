package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email      string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	FullName   string    `gorm:"type:text;not null" json:"full_name"`
	Phone      string    `gorm:"type:text" json:"phone,omitempty"`
	Location   string    `gorm:"type:text" json:"location,omitempty"`
	ResumePath string    `gorm:"type:text" json:"resume_path,omitempty"`
	ResumeText string    `gorm:"type:text" json:"-"`
	// Skills holds the JSON-encoded skill list from the most recently
	// scored resume.
	Skills    string    `gorm:"type:text" json:"skills,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type Employer struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email       string    `gorm:"type:text;uniqueIndex;not null" json:"email"`
	CompanyName string    `gorm:"type:text;not null" json:"company_name"`
	Industry    string    `gorm:"type:text" json:"industry,omitempty"`
	Location    string    `gorm:"type:text" json:"location,omitempty"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Employer) TableName() string {
	return "employers"
}
