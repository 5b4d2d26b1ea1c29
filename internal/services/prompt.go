package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt creates the prompt for structured resume
// extraction. The response contract matches models.CandidateProfile.
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Analyze the following resume text and extract structured information.

RESUME TEXT:
%s

Extract the following information:

1. Technical Skills: all technical skills, tools, programming languages, frameworks, platforms
2. Soft Skills: communication, leadership, teamwork, problem-solving and similar
3. Years of Experience: total years of professional experience, and per-skill years where mentioned
4. Certifications: all certifications, licenses, or professional credentials mentioned
5. Education: degrees, institutions, graduation years
6. Job Titles: all job titles held
7. Industries: industries worked in

Return ONLY a valid JSON object with this exact structure (no markdown, no code blocks):

{
  "technical_skills": [
    {"skill": "skill name", "years_experience": number or null, "proficiency": "beginner/intermediate/expert or null"}
  ],
  "soft_skills": [
    {"skill": "skill name", "context": "where mentioned or demonstrated"}
  ],
  "total_experience_years": number,
  "certifications": [
    {"name": "certification name", "issuer": "issuing organization", "year": number or null}
  ],
  "education": [
    {"degree": "degree name", "institution": "school name", "year": number or null, "field": "field of study"}
  ],
  "job_titles": ["title1", "title2"],
  "industries": ["industry1", "industry2"],
  "summary": "brief professional summary"
}

Be thorough and extract as much detail as possible. If information is not available, use null or an empty array.`,
		resumeText)
}

// ExtractJSONPayload strips markdown fences and surrounding prose from
// an LLM response, returning the outermost JSON object.
func ExtractJSONPayload(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```json")
		response = strings.TrimPrefix(response, "```")
		if idx := strings.LastIndex(response, "```"); idx >= 0 {
			response = response[:idx]
		}
		response = strings.TrimSpace(response)
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		return response[start : end+1]
	}
	return response
}
