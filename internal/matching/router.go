// internal/matching/router.go
package matching

import (
	"context"
	"fmt"
	"strings"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/logger"
)

// Router maps a final percentage to a confidence band and builds the
// human-readable explanation. Band assignment is a pure function of the
// percentage; no prior state influences a single match.
type Router struct {
	bands  config.BandsConfig
	gap    GapAnalyzer
	logger logger.Logger
}

func NewRouter(bands config.BandsConfig, gap GapAnalyzer, log logger.Logger) *Router {
	return &Router{bands: bands, gap: gap, logger: log}
}

// Route assigns the band, completes the breakdown's explanation list and,
// for near-miss candidates with missing required skills, fetches training
// suggestions from the knowledge graph. Graph failures degrade to a result
// without suggestions; they never fail the match.
func (r *Router) Route(ctx context.Context, candidateSkills []NormalizedSkill, breakdown *ScoreBreakdown) (Band, []TrainingSuggestion) {
	band := r.band(breakdown.Percentage)
	breakdown.Explanations = append(breakdown.Explanations, r.explain(breakdown)...)

	var suggestions []TrainingSuggestion
	if r.gap != nil && band != BandAuto && len(breakdown.MissingRequired) > 0 {
		var err error
		suggestions, err = r.gap.AnalyzeGaps(ctx, candidateSkills, breakdown.MissingRequired)
		if err != nil {
			r.logger.Warn("knowledge graph unavailable, skipping gap analysis", map[string]interface{}{
				"missingSkills": breakdown.MissingRequired,
				"error":         err,
			})
			suggestions = nil
		}
	}

	return band, suggestions
}

func (r *Router) band(percentage float64) Band {
	switch {
	case percentage >= r.bands.AutoThreshold:
		return BandAuto
	case percentage >= r.bands.ReviewThreshold:
		return BandReview
	default:
		return BandHuman
	}
}

func (r *Router) explain(breakdown *ScoreBreakdown) []string {
	var parts []string

	if len(breakdown.MatchedRequired) > 0 {
		parts = append(parts, "key skills: "+joinCapped(breakdown.MatchedRequired, 3))
	}
	if len(breakdown.MatchedBonus) > 0 {
		parts = append(parts, "bonus skills: "+joinCapped(breakdown.MatchedBonus, 2))
	}
	if breakdown.ExperienceFit != "" {
		parts = append(parts, "experience: "+breakdown.ExperienceFit)
	}
	if len(breakdown.MissingRequired) > 0 {
		parts = append(parts, "missing: "+strings.Join(breakdown.MissingRequired, ", "))
	}
	if breakdown.Partial {
		parts = append(parts, fmt.Sprintf("partial scoring (signals unavailable: %s)",
			strings.Join(breakdown.MissingSignals, ", ")))
	}

	parts = append(parts, r.qualitativeTag(breakdown.Percentage))
	return parts
}

// qualitativeTag mirrors the band thresholds, with the HUMAN band split
// one band-width below the review cutoff.
func (r *Router) qualitativeTag(percentage float64) string {
	bandWidth := r.bands.AutoThreshold - r.bands.ReviewThreshold
	switch {
	case percentage >= r.bands.AutoThreshold:
		return "strong match"
	case percentage >= r.bands.ReviewThreshold:
		return "good match"
	case percentage >= r.bands.ReviewThreshold-bandWidth:
		return "possible fit"
	default:
		return "weak match"
	}
}

func joinCapped(items []string, limit int) string {
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}
