// internal/workers/matching/validate-candidate-profile/models.go
package validatecandidateprofile

import "talent-match-workers/internal/matching"

type Input struct {
	Candidate *matching.CandidateProfile `json:"candidate"`
}

type Output struct {
	Candidate        *matching.CandidateProfile `json:"candidate"`
	NormalizedSkills []matching.NormalizedSkill `json:"normalizedSkills"`
	Warnings         []string                   `json:"warnings"`
	InsufficientData bool                       `json:"insufficientData"`
}
