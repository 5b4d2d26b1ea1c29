package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yasmineajailia/ATS-AGENT/internal/models"
)

// MatchProfile bundles the weight presets and match-level cutoffs used
// by the similarity calculator. A YAML file can override the built-in
// values per deployment.
type MatchProfile struct {
	Presets map[string]models.MatchWeights `yaml:"presets"`
	Levels  models.MatchLevels             `yaml:"levels"`
}

const (
	PresetPipeline = "pipeline"
	PresetPlatform = "platform"
)

func DefaultMatchProfile() *MatchProfile {
	return &MatchProfile{
		Presets: map[string]models.MatchWeights{
			PresetPipeline: models.PipelineWeights,
			PresetPlatform: models.PlatformWeights,
		},
		Levels: models.DefaultMatchLevels,
	}
}

// LoadMatchProfile reads a YAML profile from path. An empty path keeps
// the defaults; a named but unreadable or invalid file is an error
// rather than a silent fallback.
func LoadMatchProfile(path string) (*MatchProfile, error) {
	profile := DefaultMatchProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read match profile: %w", err)
	}

	var loaded MatchProfile
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse match profile: %w", err)
	}

	for name, weights := range loaded.Presets {
		profile.Presets[name] = weights
	}
	if loaded.Levels != (models.MatchLevels{}) {
		profile.Levels = loaded.Levels
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Weights returns the named preset, falling back to the pipeline preset
// for unknown names.
func (p *MatchProfile) Weights(preset string) models.MatchWeights {
	if w, ok := p.Presets[preset]; ok {
		return w
	}
	return p.Presets[PresetPipeline]
}

const weightSumTolerance = 1e-6

func (p *MatchProfile) Validate() error {
	for name, w := range p.Presets {
		if w.Skills < 0 || w.Keywords < 0 || w.Text < 0 || w.AllKeywords < 0 {
			return fmt.Errorf("match profile %q: weights must be non-negative", name)
		}
		sum := w.Skills + w.Keywords + w.Text + w.AllKeywords
		if math.Abs(sum-1.0) > weightSumTolerance {
			return fmt.Errorf("match profile %q: weights sum to %.4f, want 1.0", name, sum)
		}
	}
	l := p.Levels
	if l.Excellent <= l.Good || l.Good <= l.Moderate || l.Moderate <= l.Low || l.Low <= 0 {
		return fmt.Errorf("match profile: level cutoffs must be strictly descending and positive")
	}
	return nil
}
