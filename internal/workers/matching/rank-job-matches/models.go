// internal/workers/matching/rank-job-matches/models.go
package rankjobmatches

import "talent-match-workers/internal/matching"

type Input struct {
	Candidate   *matching.CandidateProfile `json:"candidate"`
	JobIDs      []string                   `json:"jobIds,omitempty"`
	Department  string                     `json:"department,omitempty"`
	SortByScore bool                       `json:"sortByScore,omitempty"`
	TopK        int                        `json:"topK,omitempty"`
}

type Output struct {
	Matches         []*matching.MatchResult `json:"matches"`
	EvaluatedJobs   int                     `json:"evaluatedJobs"`
	SnapshotVersion string                  `json:"snapshotVersion,omitempty"`
}
