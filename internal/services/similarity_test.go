package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

func TestKeywordOverlap(t *testing.T) {
	svc := NewSimilarityService(models.PipelineWeights, models.DefaultMatchLevels)

	tests := []struct {
		name         string
		resume       []string
		job          []string
		wantMatched  []string
		wantRate     float64
		wantJaccard  float64
		wantCoverage float64
	}{
		{
			name:         "half of job terms present",
			resume:       []string{"python", "aws"},
			job:          []string{"python", "docker"},
			wantMatched:  []string{"python"},
			wantRate:     0.5,
			wantJaccard:  0.3333,
			wantCoverage: 50,
		},
		{
			name:         "full coverage",
			resume:       []string{"go", "docker"},
			job:          []string{"docker", "go"},
			wantMatched:  []string{"docker", "go"},
			wantRate:     1,
			wantJaccard:  1,
			wantCoverage: 100,
		},
		{
			name:         "no overlap",
			resume:       []string{"python"},
			job:          []string{"docker"},
			wantMatched:  nil,
			wantRate:     0,
			wantJaccard:  0,
			wantCoverage: 0,
		},
		{
			name:         "empty job tier",
			resume:       []string{"python"},
			job:          nil,
			wantMatched:  nil,
			wantRate:     0,
			wantJaccard:  0,
			wantCoverage: 0,
		},
		{
			name:         "both empty",
			resume:       nil,
			job:          nil,
			wantMatched:  nil,
			wantRate:     0,
			wantJaccard:  0,
			wantCoverage: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlap := svc.KeywordOverlap(models.NewKeywordSet(tt.resume...), models.NewKeywordSet(tt.job...))

			assert.Equal(t, tt.wantMatched, overlap.Matched)
			assert.Equal(t, len(tt.wantMatched), overlap.MatchedCount)
			assert.Equal(t, len(tt.job), overlap.TotalJobTerms)
			assert.InDelta(t, tt.wantRate, overlap.MatchRate, 1e-9)
			assert.InDelta(t, tt.wantJaccard, overlap.Jaccard, 1e-9)
			assert.InDelta(t, tt.wantCoverage, overlap.CoveragePercentage, 1e-9)
		})
	}
}

func TestCosineTextSimilarity(t *testing.T) {
	svc := NewSimilarityService(models.PipelineWeights, models.DefaultMatchLevels)

	t.Run("identical texts score 1", func(t *testing.T) {
		text := "senior python developer building cloud services"
		assert.InDelta(t, 1.0, svc.CosineTextSimilarity(text, text), 1e-4)
	})

	t.Run("disjoint texts score 0", func(t *testing.T) {
		got := svc.CosineTextSimilarity("python developer", "accounting ledgers payroll")
		assert.Zero(t, got)
	})

	t.Run("empty side scores 0", func(t *testing.T) {
		assert.Zero(t, svc.CosineTextSimilarity("", "python developer"))
		assert.Zero(t, svc.CosineTextSimilarity("python developer", ""))
	})

	t.Run("partial overlap lands strictly between", func(t *testing.T) {
		got := svc.CosineTextSimilarity(
			"python docker aws engineer",
			"python terraform gcp engineer",
		)
		assert.Greater(t, got, 0.0)
		assert.Less(t, got, 1.0)
	})
}

func TestCalculateWeightedScore(t *testing.T) {
	svc := NewSimilarityService(models.PipelineWeights, models.DefaultMatchLevels)

	t.Run("weighted aggregate over the tiers", func(t *testing.T) {
		resume := models.NewKeywordProfile()
		resume.Skills = models.NewKeywordSet("python", "aws")
		resume.TFIDF = models.NewKeywordSet("python", "cloud")
		resume.All = models.NewKeywordSet("python", "aws", "cloud")

		job := models.NewKeywordProfile()
		job.Skills = models.NewKeywordSet("python", "docker")
		job.TFIDF = models.NewKeywordSet("python", "cloud")
		job.All = models.NewKeywordSet("python", "docker", "cloud")

		result := svc.CalculateWeightedScore("", "", resume, job)
		require.NotNil(t, result)

		// skills 0.5*0.40 + tfidf 1.0*0.30 + text 0*0.20 + all 0.6667*0.10
		assert.InDelta(t, 56.67, result.OverallPercentage, 1e-9)
		assert.Equal(t, models.MatchLevelModerate, result.MatchLevel)
		assert.Equal(t, []string{"python"}, result.MatchedSkills)
		assert.Equal(t, []string{"docker"}, result.MissingSkills)
		assert.Equal(t, []string{"aws"}, result.AdditionalSkills)
		assert.InDelta(t, 0.5, result.Detailed.SkillsMatchRate, 1e-9)
		assert.InDelta(t, 1.0, result.Detailed.KeywordsMatchRate, 1e-9)
		assert.InDelta(t, 50, result.SkillsCoverage, 1e-9)
	})

	t.Run("nil profiles score zero", func(t *testing.T) {
		result := svc.CalculateWeightedScore("", "", nil, nil)
		require.NotNil(t, result)
		assert.Zero(t, result.OverallPercentage)
		assert.Equal(t, models.MatchLevelPoor, result.MatchLevel)
		assert.Empty(t, result.MissingSkills)
	})

	t.Run("score is clamped to 100", func(t *testing.T) {
		heavy := NewSimilarityService(models.MatchWeights{Skills: 2.0}, models.DefaultMatchLevels)

		resume := models.NewKeywordProfile()
		resume.Skills = models.NewKeywordSet("python")
		job := models.NewKeywordProfile()
		job.Skills = models.NewKeywordSet("python")

		result := heavy.CalculateWeightedScore("", "", resume, job)
		assert.InDelta(t, 100, result.OverallPercentage, 1e-9)
		assert.Equal(t, models.MatchLevelExcellent, result.MatchLevel)
	})
}

func TestMatchLevelCutoffs(t *testing.T) {
	svc := &similarityService{weights: models.PipelineWeights, levels: models.DefaultMatchLevels}

	tests := []struct {
		percentage float64
		want       string
	}{
		{100, models.MatchLevelExcellent},
		{75, models.MatchLevelExcellent},
		{74.99, models.MatchLevelGood},
		{60, models.MatchLevelGood},
		{59.99, models.MatchLevelModerate},
		{45, models.MatchLevelModerate},
		{44.99, models.MatchLevelLow},
		{30, models.MatchLevelLow},
		{29.99, models.MatchLevelPoor},
		{0, models.MatchLevelPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.levelFor(tt.percentage), "percentage %.2f", tt.percentage)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	svc := NewSimilarityService(models.PipelineWeights, models.DefaultMatchLevels)

	t.Run("weak result collects every hint", func(t *testing.T) {
		result := &models.MatchResult{
			OverallPercentage: 40,
			MissingSkills:     []string{"a", "b", "c", "d", "e", "f", "g"},
			Detailed:          models.DetailedScores{SkillsMatchRate: 0.3},
		}

		recs := svc.GenerateRecommendations(result)
		require.Len(t, recs, 3)
		assert.Contains(t, recs[0], "Low match score")
		assert.Contains(t, recs[1], "a, b, c, d, e")
		assert.NotContains(t, recs[1], ", f")
		assert.Contains(t, recs[2], "technical skills")
	})

	t.Run("strong result only congratulates", func(t *testing.T) {
		result := &models.MatchResult{
			OverallPercentage: 85,
			Detailed:          models.DetailedScores{SkillsMatchRate: 0.9},
		}

		recs := svc.GenerateRecommendations(result)
		require.Len(t, recs, 1)
		assert.Contains(t, recs[0], "Strong match")
	})

	t.Run("nil result yields nothing", func(t *testing.T) {
		assert.Empty(t, svc.GenerateRecommendations(nil))
	})
}

func TestNewSimilarityServiceDefaults(t *testing.T) {
	svc, ok := NewSimilarityService(models.MatchWeights{}, models.MatchLevels{}).(*similarityService)
	require.True(t, ok)

	assert.Equal(t, models.PipelineWeights, svc.weights)
	assert.Equal(t, models.DefaultMatchLevels, svc.levels)
}
