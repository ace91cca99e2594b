// internal/matching/combiner.go
package matching

import (
	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
)

// SignalSet carries the four sub-scores into the combiner. Signals listed
// in Missing were unavailable (collaborator down) and take no part in the
// weighted sum; their weight redistributes equally across the rest.
type SignalSet struct {
	Semantic   Score
	Skill      Score
	Experience Score
	Lexical    Score
	Missing    []string
}

// Combiner applies the configured weights to the sub-scores and emits a
// full breakdown. Inputs are pre-clamped by their producers; the combiner
// clamps the weighted sum as well and counts any violation.
type Combiner struct {
	weights config.WeightsConfig
	logger  logger.Logger
}

func NewCombiner(weights config.WeightsConfig, log logger.Logger) *Combiner {
	return &Combiner{weights: weights, logger: log}
}

// Combine computes the weighted final score and percentage.
func (c *Combiner) Combine(signals SignalSet) *ScoreBreakdown {
	weights := c.effectiveWeights(signals.Missing)

	values := map[string]Score{
		SignalSemantic:   signals.Semantic,
		SignalSkill:      signals.Skill,
		SignalExperience: signals.Experience,
		SignalLexical:    signals.Lexical,
	}

	var sum float64
	for signal, weight := range weights {
		sum += weight * values[signal].Float64()
	}

	final, clamped := ClampScore(sum)
	if clamped {
		metrics.ScoreClampViolations.WithLabelValues("final").Inc()
		c.logger.Error("combined score out of range, clamped", map[string]interface{}{
			"rawScore": sum,
		})
	}

	return &ScoreBreakdown{
		Semantic:       signals.Semantic,
		Skill:          signals.Skill,
		Experience:     signals.Experience,
		Lexical:        signals.Lexical,
		Final:          final,
		Percentage:     final.Percentage(),
		Partial:        len(signals.Missing) > 0,
		MissingSignals: signals.Missing,
	}
}

// effectiveWeights returns the configured weights with each missing
// signal's weight removed and redistributed equally among the remaining
// signals, keeping the total at 1.
func (c *Combiner) effectiveWeights(missing []string) map[string]float64 {
	weights := map[string]float64{
		SignalSemantic:   c.weights.Semantic,
		SignalSkill:      c.weights.Skill,
		SignalExperience: c.weights.Experience,
		SignalLexical:    c.weights.Lexical,
	}

	var lost float64
	for _, signal := range missing {
		lost += weights[signal]
		delete(weights, signal)
	}

	if lost > 0 && len(weights) > 0 {
		share := lost / float64(len(weights))
		for signal := range weights {
			weights[signal] += share
		}
	}

	return weights
}
