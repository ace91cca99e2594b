// internal/workers/matching/analyze-skill-gaps/models.go
package analyzeskillgaps

import "talent-match-workers/internal/matching"

type Input struct {
	CandidateSkills []string `json:"candidateSkills"`
	MissingRequired []string `json:"missingRequired"`
	MissingBonus    []string `json:"missingBonus,omitempty"`
}

type Output struct {
	Suggestions []matching.TrainingSuggestion `json:"suggestions"`
	GapCount    int                           `json:"gapCount"`
}
