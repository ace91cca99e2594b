// internal/matching/experience.go
package matching

import (
	"talent-match-workers/internal/common/config"
)

// Experience fit qualifiers carried on the breakdown for explanation.
const (
	ExperienceInRange       = "excellent fit"
	ExperienceAdequate      = "adequate"
	ExperienceBelow         = "below requirement"
	ExperienceOverqualified = "overqualified"
)

// ExperienceScorer compares years of experience against a job's optional
// [min, max] requirement.
type ExperienceScorer struct {
	cfg config.ExperienceConfig
}

func NewExperienceScorer(cfg config.ExperienceConfig) *ExperienceScorer {
	return &ExperienceScorer{cfg: cfg}
}

// Score applies the experience policy: in range 1.0; under the minimum a
// linear falloff proportional to the shortfall; over the maximum a mild
// decay floored at the configured minimum. Unknown or negative years get
// the neutral default.
func (s *ExperienceScorer) Score(years *float64, job *JobRequirement) (Score, string) {
	if years == nil || *years < 0 {
		return NewScore(s.cfg.UnknownDefault), ExperienceAdequate
	}
	y := *years

	min := job.MinYears
	max := job.MaxYears

	if min != nil && y < *min {
		if *min <= 0 {
			return NewScore(1), ExperienceInRange
		}
		score := NewScore(y / *min)
		qualifier := ExperienceBelow
		if score.Float64() >= 0.7 {
			qualifier = ExperienceAdequate
		}
		return score, qualifier
	}

	if max != nil && y > *max {
		surplus := y - *max
		score := 1 - s.cfg.OverqualifiedDecay*surplus
		if score < s.cfg.OverqualifiedFloor {
			score = s.cfg.OverqualifiedFloor
		}
		return NewScore(score), ExperienceOverqualified
	}

	return NewScore(1), ExperienceInRange
}
