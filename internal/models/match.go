package models

import "time"

// MatchWeights controls the weighted aggregate score. Weights must be
// non-negative and sum to 1.
type MatchWeights struct {
	Skills      float64 `yaml:"skills" json:"skills"`
	Keywords    float64 `yaml:"keywords" json:"keywords"`
	Text        float64 `yaml:"text" json:"text"`
	AllKeywords float64 `yaml:"all_keywords" json:"all_keywords"`
}

// MatchLevels holds the percentage cutoffs for the five match levels,
// checked from Excellent down.
type MatchLevels struct {
	Excellent float64 `yaml:"excellent" json:"excellent"`
	Good      float64 `yaml:"good" json:"good"`
	Moderate  float64 `yaml:"moderate" json:"moderate"`
	Low       float64 `yaml:"low" json:"low"`
}

var (
	// PipelineWeights is the default preset for the standalone analysis
	// pipeline: technical skills 40%, TF-IDF keywords 30%, full-text
	// similarity 20%, all keywords 10%.
	PipelineWeights = MatchWeights{Skills: 0.40, Keywords: 0.30, Text: 0.20, AllKeywords: 0.10}

	// PlatformWeights is the preset used when scoring applications on the
	// hiring platform, where skill coverage dominates.
	PlatformWeights = MatchWeights{Skills: 0.60, Keywords: 0.30, Text: 0.10, AllKeywords: 0.0}

	DefaultMatchLevels = MatchLevels{Excellent: 75, Good: 60, Moderate: 45, Low: 30}
)

const (
	MatchLevelExcellent = "Excellent Match"
	MatchLevelGood      = "Good Match"
	MatchLevelModerate  = "Moderate Match"
	MatchLevelLow       = "Low Match"
	MatchLevelPoor      = "Poor Match"
)

// TierOverlap describes how one keyword tier of the resume covers the
// same tier of the job description. MatchRate is the share of job terms
// found in the resume; Jaccard is symmetric.
type TierOverlap struct {
	Matched            []string `json:"matched_keywords"`
	MatchedCount       int      `json:"matched_count"`
	TotalJobTerms      int      `json:"total_job_keywords"`
	MatchRate          float64  `json:"match_rate"`
	Jaccard            float64  `json:"jaccard_similarity"`
	CoveragePercentage float64  `json:"coverage_percentage"`
}

// DetailedScores carries the per-tier inputs to the weighted aggregate.
type DetailedScores struct {
	TextSimilarity       float64 `json:"text_similarity"`
	SkillsMatchRate      float64 `json:"skills_match_rate"`
	KeywordsMatchRate    float64 `json:"tfidf_match_rate"`
	AllKeywordsMatchRate float64 `json:"all_keywords_match_rate"`
}

// MatchResult is the stateless output of one resume/job comparison. It
// is recomputed per request and never mutated afterwards.
type MatchResult struct {
	OverallScore      float64        `json:"overall_score"`
	OverallPercentage float64        `json:"overall_percentage"`
	MatchLevel        string         `json:"match_level"`
	Detailed          DetailedScores `json:"detailed_scores"`
	SkillsOverlap     TierOverlap    `json:"skills_overlap"`
	KeywordsOverlap   TierOverlap    `json:"keywords_overlap"`
	AllOverlap        TierOverlap    `json:"all_keywords_overlap"`
	MatchedSkills     []string       `json:"matched_skills"`
	MissingSkills     []string       `json:"missing_skills"`
	AdditionalSkills  []string       `json:"additional_skills,omitempty"`
	SkillsCoverage    float64        `json:"skills_coverage"`
}

// DocumentAnalysis summarizes the extraction output for one document.
type DocumentAnalysis struct {
	TextLength int         `json:"text_length"`
	WordCount  int         `json:"word_count"`
	Skills     []string    `json:"technical_skills"`
	TFIDF      []string    `json:"tfidf_keywords"`
	Linguistic []string    `json:"linguistic_keywords,omitempty"`
	Semantic   []SkillTerm `json:"semantic_skills,omitempty"`
	All        []string    `json:"all_keywords"`
}

// AnalysisResult is the single record produced by one pipeline run.
// Failures are carried inside it: Success is false and Error holds a
// human-readable message, so callers never deal with raw errors.
type AnalysisResult struct {
	Success         bool              `json:"success"`
	Error           string            `json:"error,omitempty"`
	AnalyzedAt      time.Time         `json:"analyzed_at"`
	ResumePath      string            `json:"resume_path,omitempty"`
	Resume          *DocumentAnalysis `json:"resume_analysis,omitempty"`
	Job             *DocumentAnalysis `json:"job_analysis,omitempty"`
	Match           *MatchResult      `json:"match,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
	Format          *FormatReport     `json:"format_analysis,omitempty"`
	Profile         *CandidateProfile `json:"candidate_profile,omitempty"`
}
