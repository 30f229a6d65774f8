// Package confidence reduces retrieval and generation quality signals to a
// single 0-100 score, a display label, and an escalation decision.
package confidence

import (
	"math"
	"time"
)

// Label is the human-readable confidence bucket shown in the widget.
type Label string

const (
	LabelHigh   Label = "High"
	LabelMedium Label = "Medium"
	LabelLow    Label = "Low"
)

// Weights are the linear-model coefficients for the five factors. They must
// sum to 1.0. This is a fixed model, not a learned one.
type Weights struct {
	Retrieval      float64 `yaml:"retrieval" koanf:"retrieval"`
	Coverage       float64 `yaml:"coverage" koanf:"coverage"`
	ModelCertainty float64 `yaml:"model_certainty" koanf:"model_certainty"`
	Recency        float64 `yaml:"recency" koanf:"recency"`
	SourceTrust    float64 `yaml:"source_trust" koanf:"source_trust"`
}

// Config holds the scoring constants.
type Config struct {
	Weights Weights `yaml:"weights" koanf:"weights"`
	// HighThreshold and MediumThreshold bound the display labels:
	// score >= High -> High, score >= Medium -> Medium, else Low.
	HighThreshold   int `yaml:"high_threshold" koanf:"high_threshold"`
	MediumThreshold int `yaml:"medium_threshold" koanf:"medium_threshold"`
	// EscalateBelow is deliberately lower than MediumThreshold: an answer
	// can be labeled Low for display without routing to a human.
	EscalateBelow int `yaml:"escalate_below" koanf:"escalate_below"`
	// TrustedCategories get a source-trust boost.
	TrustedCategories []string `yaml:"trusted_categories" koanf:"trusted_categories"`
	// RecencyFreshDays is the age below which an article counts as fully
	// fresh; RecencyMaxDays the age at which recency bottoms out at zero.
	RecencyFreshDays int `yaml:"recency_fresh_days" koanf:"recency_fresh_days"`
	RecencyMaxDays   int `yaml:"recency_max_days" koanf:"recency_max_days"`
}

// DefaultConfig returns the production scoring constants.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Retrieval:      0.40,
			Coverage:       0.20,
			ModelCertainty: 0.20,
			Recency:        0.10,
			SourceTrust:    0.10,
		},
		HighThreshold:     80,
		MediumThreshold:   50,
		EscalateBelow:     40,
		TrustedCategories: []string{"onboarding", "billing", "account"},
		RecencyFreshDays:  30,
		RecencyMaxDays:    365,
	}
}

// Factors are the five independent inputs to the scoring formula, each
// already normalized to [0,1].
type Factors struct {
	RetrievalScore  float64
	PassageCoverage float64
	ModelCertainty  float64
	RecencyFactor   float64
	SourceTrust     float64
}

// Scorer computes confidence scores. It is stateless and safe for
// concurrent use.
type Scorer struct {
	cfg     Config
	trusted map[string]bool
}

// NewScorer creates a Scorer with the given constants.
func NewScorer(cfg Config) *Scorer {
	trusted := make(map[string]bool, len(cfg.TrustedCategories))
	for _, c := range cfg.TrustedCategories {
		trusted[c] = true
	}
	return &Scorer{cfg: cfg, trusted: trusted}
}

// Calculate applies the weighted linear model and returns an integer score
// clamped to [0,100].
func (s *Scorer) Calculate(f Factors) int {
	w := s.cfg.Weights
	raw := 100 * (w.Retrieval*f.RetrievalScore +
		w.Coverage*f.PassageCoverage +
		w.ModelCertainty*f.ModelCertainty +
		w.Recency*f.RecencyFactor +
		w.SourceTrust*f.SourceTrust)

	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Label maps a score to its display bucket.
func (s *Scorer) Label(score int) Label {
	switch {
	case score >= s.cfg.HighThreshold:
		return LabelHigh
	case score >= s.cfg.MediumThreshold:
		return LabelMedium
	default:
		return LabelLow
	}
}

// ShouldEscalate reports whether the request should route to a human: an
// explicit user request always escalates, otherwise only scores below the
// escalation threshold do. Note the threshold sits below the Low/Medium
// label boundary on purpose; the two are distinct policy knobs.
func (s *Scorer) ShouldEscalate(score int, explicitUserRequest bool) bool {
	return explicitUserRequest || score < s.cfg.EscalateBelow
}

// RetrievalScore averages the top-3 (or fewer) retrieval scores, normalized
// from [0,100] to [0,1].
func (s *Scorer) RetrievalScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	n := len(scores)
	if n > 3 {
		n = 3
	}

	sum := 0.0
	for _, v := range scores[:n] {
		sum += v / 100
	}
	return clamp01(sum / float64(n))
}

// PassageCoverage measures how much of the retrieved context made it into
// the answer: used over min(3, retrieved), capped at 1. Zero when nothing
// was retrieved.
func PassageCoverage(usedCount, retrievedCount int) float64 {
	if retrievedCount == 0 {
		return 0
	}
	denom := retrievedCount
	if denom > 3 {
		denom = 3
	}
	return clamp01(float64(usedCount) / float64(denom))
}

// RecencyFactor is 1.0 for articles updated within the fresh window and
// decays linearly to zero at the max age.
func (s *Scorer) RecencyFactor(lastUpdated time.Time, now time.Time) float64 {
	if lastUpdated.IsZero() {
		return 0
	}

	days := now.Sub(lastUpdated).Hours() / 24
	fresh := float64(s.cfg.RecencyFreshDays)
	max := float64(s.cfg.RecencyMaxDays)

	switch {
	case days <= fresh:
		return 1.0
	case days >= max:
		return 0
	default:
		return 1.0 - (days-fresh)/(max-fresh)
	}
}

// SourceTrust starts from a 0.5 baseline, boosted for trusted categories
// and publicly visible articles.
func (s *Scorer) SourceTrust(category string, public bool) float64 {
	trust := 0.5
	if s.trusted[category] {
		trust += 0.3
	}
	if public {
		trust += 0.2
	}
	return clamp01(trust)
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
