package models

// ContactInfo holds contact details detected in the resume text.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

func (c ContactInfo) HasEmail() bool { return c.Email != "" }
func (c ContactInfo) HasPhone() bool { return c.Phone != "" }

type LanguageSkill struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// FormatReport is the structural analysis of an uploaded resume: which
// sections and contact details were found, formatting stats, detected
// spoken languages, and the 0-100 ATS-friendliness score.
type FormatReport struct {
	PageCount          int               `json:"page_count"`
	TextLength         int               `json:"text_length"`
	WordCount          int               `json:"word_count"`
	DetectedSections   []string          `json:"detected_sections"`
	SectionCount       int               `json:"section_count"`
	ExtractedSections  map[string]string `json:"extracted_sections,omitempty"`
	Contact            ContactInfo       `json:"contact_info"`
	HasBullets         bool              `json:"has_bullets"`
	BulletCount        int               `json:"bullet_count"`
	DateCount          int               `json:"date_count"`
	AvgLineLength      float64           `json:"avg_line_length"`
	Languages          []LanguageSkill   `json:"detected_languages,omitempty"`
	HasLanguageSection bool              `json:"has_language_section"`
	ATSScore           int               `json:"ats_friendly_score"`
	ATSRating          string            `json:"ats_friendly_rating"`
	Issues             []string          `json:"issues,omitempty"`
}

const (
	ATSRatingExcellent = "Excellent"
	ATSRatingGood      = "Good"
	ATSRatingFair      = "Fair"
	ATSRatingPoor      = "Poor"
)

// RatingForScore maps an ATS score to its rating band.
func RatingForScore(score int) string {
	switch {
	case score >= 80:
		return ATSRatingExcellent
	case score >= 60:
		return ATSRatingGood
	case score >= 40:
		return ATSRatingFair
	default:
		return ATSRatingPoor
	}
}
