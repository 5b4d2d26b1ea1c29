package models

// CandidateProfile is the structured output of the LLM resume
// extraction. Fields the model cannot determine stay zero-valued.
type CandidateProfile struct {
	TechnicalSkills      []TechnicalSkill `json:"technical_skills"`
	SoftSkills           []SoftSkill      `json:"soft_skills"`
	TotalExperienceYears float64          `json:"total_experience_years"`
	Certifications       []Certification  `json:"certifications"`
	Education            []Education      `json:"education"`
	JobTitles            []string         `json:"job_titles"`
	Industries           []string         `json:"industries"`
	Summary              string           `json:"summary"`
}

type TechnicalSkill struct {
	Skill           string   `json:"skill"`
	YearsExperience *float64 `json:"years_experience,omitempty"`
	Proficiency     string   `json:"proficiency,omitempty"`
}

type SoftSkill struct {
	Skill   string `json:"skill"`
	Context string `json:"context,omitempty"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Year   *int   `json:"year,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution,omitempty"`
	Field       string `json:"field,omitempty"`
	Year        *int   `json:"year,omitempty"`
}

// SkillNames flattens the technical skills to their labels.
func (p *CandidateProfile) SkillNames() []string {
	names := make([]string, 0, len(p.TechnicalSkills))
	for _, s := range p.TechnicalSkills {
		if s.Skill != "" {
			names = append(names, s.Skill)
		}
	}
	return names
}
