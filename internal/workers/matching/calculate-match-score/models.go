// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import "talent-match-workers/internal/matching"

type Input struct {
	Candidate *matching.CandidateProfile `json:"candidate"`
	Job       *matching.JobRequirement   `json:"job,omitempty"`
	JobID     string                     `json:"jobId,omitempty"`
}

type Output struct {
	MatchID       string                        `json:"matchId"`
	JobID         string                        `json:"jobId"`
	Percentage    float64                       `json:"percentage"`
	Band          matching.Band                 `json:"band"`
	Breakdown     matching.ScoreBreakdown       `json:"breakdown"`
	Gap           []matching.TrainingSuggestion `json:"gap,omitempty"`
	PartialResult bool                          `json:"partialResult"`
}
