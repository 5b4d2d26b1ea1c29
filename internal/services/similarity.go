package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

// SimilarityService scores a resume keyword profile against a job
// profile using the configured weights and level cutoffs. All scores
// are derived values; nothing here keeps state between calls.
type SimilarityService interface {
	CalculateWeightedScore(resumeText, jobText string, resume, job *models.KeywordProfile) *models.MatchResult
	CosineTextSimilarity(resumeText, jobText string) float64
	KeywordOverlap(resume, job *models.KeywordSet) models.TierOverlap
	GenerateRecommendations(result *models.MatchResult) []string
}

type similarityService struct {
	weights models.MatchWeights
	levels  models.MatchLevels
}

func NewSimilarityService(weights models.MatchWeights, levels models.MatchLevels) SimilarityService {
	if weights == (models.MatchWeights{}) {
		weights = models.PipelineWeights
	}
	if levels == (models.MatchLevels{}) {
		levels = models.DefaultMatchLevels
	}
	return &similarityService{weights: weights, levels: levels}
}

// CalculateWeightedScore implements SimilarityService. Empty profiles
// and texts produce a zero score, never an error.
func (s *similarityService) CalculateWeightedScore(resumeText, jobText string, resume, job *models.KeywordProfile) *models.MatchResult {
	if resume == nil {
		resume = models.NewKeywordProfile()
	}
	if job == nil {
		job = models.NewKeywordProfile()
	}

	textSimilarity := s.CosineTextSimilarity(resumeText, jobText)
	skillsOverlap := s.KeywordOverlap(resume.Skills, job.Skills)
	keywordsOverlap := s.KeywordOverlap(resume.TFIDF, job.TFIDF)
	allOverlap := s.KeywordOverlap(resume.All, job.All)

	weighted := skillsOverlap.MatchRate*s.weights.Skills +
		keywordsOverlap.MatchRate*s.weights.Keywords +
		textSimilarity*s.weights.Text +
		allOverlap.MatchRate*s.weights.AllKeywords
	weighted = clamp01(weighted)

	percentage := round2(weighted * 100)

	var missing, additional []string
	for _, label := range job.Skills.Labels() {
		if !resume.Skills.Contains(label) {
			missing = append(missing, label)
		}
	}
	for _, label := range resume.Skills.Labels() {
		if !job.Skills.Contains(label) {
			additional = append(additional, label)
		}
	}

	return &models.MatchResult{
		OverallScore:      round4(weighted),
		OverallPercentage: percentage,
		MatchLevel:        s.levelFor(percentage),
		Detailed: models.DetailedScores{
			TextSimilarity:       textSimilarity,
			SkillsMatchRate:      skillsOverlap.MatchRate,
			KeywordsMatchRate:    keywordsOverlap.MatchRate,
			AllKeywordsMatchRate: allOverlap.MatchRate,
		},
		SkillsOverlap:    skillsOverlap,
		KeywordsOverlap:  keywordsOverlap,
		AllOverlap:       allOverlap,
		MatchedSkills:    skillsOverlap.Matched,
		MissingSkills:    missing,
		AdditionalSkills: additional,
		SkillsCoverage:   skillsOverlap.CoveragePercentage,
	}
}

// KeywordOverlap implements SimilarityService. MatchRate is the share
// of job terms found in the resume; an empty job tier scores 0.
func (s *similarityService) KeywordOverlap(resume, job *models.KeywordSet) models.TierOverlap {
	var matched []string
	for _, label := range resume.Labels() {
		if job.Contains(label) {
			matched = append(matched, label)
		}
	}

	matchRate := 0.0
	if job.Len() > 0 {
		matchRate = float64(len(matched)) / float64(job.Len())
	}

	return models.TierOverlap{
		Matched:            matched,
		MatchedCount:       len(matched),
		TotalJobTerms:      job.Len(),
		MatchRate:          round4(matchRate),
		Jaccard:            round4(jaccardSimilarity(resume, job)),
		CoveragePercentage: round2(matchRate * 100),
	}
}

// CosineTextSimilarity implements SimilarityService: TF-IDF vectors
// over 1-2 word grams of the two texts, cosine between them.
func (s *similarityService) CosineTextSimilarity(resumeText, jobText string) float64 {
	resumeCounts := termCounts(gramSequence(resumeText, 1, 2))
	jobCounts := termCounts(gramSequence(jobText, 1, 2))
	if len(resumeCounts) == 0 || len(jobCounts) == 0 {
		return 0
	}

	vocab := make(map[string]bool, len(resumeCounts)+len(jobCounts))
	for term := range resumeCounts {
		vocab[term] = true
	}
	for term := range jobCounts {
		vocab[term] = true
	}

	var dot, normResume, normJob float64
	for term := range vocab {
		df := 0.0
		if resumeCounts[term] > 0 {
			df++
		}
		if jobCounts[term] > 0 {
			df++
		}
		idf := math.Log(3.0/(1.0+df)) + 1

		rw := resumeCounts[term] * idf
		jw := jobCounts[term] * idf
		dot += rw * jw
		normResume += rw * rw
		normJob += jw * jw
	}

	if normResume == 0 || normJob == 0 {
		return 0
	}
	return round4(dot / (math.Sqrt(normResume) * math.Sqrt(normJob)))
}

// GenerateRecommendations implements SimilarityService.
func (s *similarityService) GenerateRecommendations(result *models.MatchResult) []string {
	var recommendations []string
	if result == nil {
		return recommendations
	}

	if result.OverallPercentage < 50 {
		recommendations = append(recommendations, "⚠️ Low match score. Consider tailoring your resume to this job description.")
	}

	if len(result.MissingSkills) > 0 {
		preview := result.MissingSkills
		if len(preview) > 5 {
			preview = preview[:5]
		}
		recommendations = append(recommendations, fmt.Sprintf("📝 Add these missing skills if you have them: %s", strings.Join(preview, ", ")))
	}

	if result.Detailed.SkillsMatchRate < 0.5 {
		recommendations = append(recommendations, "🔧 Highlight more relevant technical skills from the job description.")
	}

	if result.OverallPercentage >= 70 {
		recommendations = append(recommendations, "✅ Strong match! Your resume aligns well with the job requirements.")
	}

	return recommendations
}

func (s *similarityService) levelFor(percentage float64) string {
	switch {
	case percentage >= s.levels.Excellent:
		return models.MatchLevelExcellent
	case percentage >= s.levels.Good:
		return models.MatchLevelGood
	case percentage >= s.levels.Moderate:
		return models.MatchLevelModerate
	case percentage >= s.levels.Low:
		return models.MatchLevelLow
	default:
		return models.MatchLevelPoor
	}
}

// jaccardSimilarity over normalized labels; both sets empty yields 0.
func jaccardSimilarity(a, b *models.KeywordSet) float64 {
	intersection := 0
	for _, label := range a.Labels() {
		if b.Contains(label) {
			intersection++
		}
	}
	union := a.Len() + b.Len() - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func termCounts(terms []string) map[string]float64 {
	counts := make(map[string]float64, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
