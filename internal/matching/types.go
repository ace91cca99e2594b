// internal/matching/types.go
package matching

import "context"

// Band is the routing decision derived from the final match percentage.
type Band string

const (
	BandAuto   Band = "AUTO"
	BandReview Band = "REVIEW"
	BandHuman  Band = "HUMAN"
)

// Signal names used in weight renormalization and clamp-violation reporting.
const (
	SignalSemantic   = "semantic"
	SignalSkill      = "skill"
	SignalExperience = "experience"
	SignalLexical    = "lexical"
)

// CandidateProfile is the structured candidate record produced by the
// upstream parsing pipeline. Fields may be partially populated.
type CandidateProfile struct {
	Name            string   `json:"name"`
	Skills          []string `json:"skills"`
	YearsExperience *float64 `json:"yearsExperience,omitempty"`
	FreeText        []string `json:"freeText,omitempty"`
}

// SkillRequirement is one required skill with a relative weight.
// Weight defaults to 1 when zero or negative.
type SkillRequirement struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight,omitempty"`
}

// JobRequirement describes one job posting. Loaded once per job and shared
// read-only across match computations.
type JobRequirement struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Department  string             `json:"department,omitempty"`
	Description string             `json:"description,omitempty"`
	Required    []SkillRequirement `json:"required"`
	Bonus       []string           `json:"bonus,omitempty"`
	MinYears    *float64           `json:"minYears,omitempty"`
	MaxYears    *float64           `json:"maxYears,omitempty"`
}

// RequiredSkills builds a required-skill list with default weights.
func RequiredSkills(names ...string) []SkillRequirement {
	reqs := make([]SkillRequirement, 0, len(names))
	for _, n := range names {
		reqs = append(reqs, SkillRequirement{Name: n, Weight: 1})
	}
	return reqs
}

// NormalizedSkill is a canonicalized skill token with its category tag.
type NormalizedSkill struct {
	Canonical string `json:"canonical"`
	Category  string `json:"category"`
}

// ScoreBreakdown carries every sub-score for explainability. Created fresh
// per (candidate, job) pair and never mutated after the router sees it.
type ScoreBreakdown struct {
	Semantic        Score    `json:"semantic"`
	Skill           Score    `json:"skill"`
	Experience      Score    `json:"experience"`
	Lexical         Score    `json:"lexical"`
	Final           Score    `json:"final"`
	Percentage      float64  `json:"percentage"`
	MatchedRequired []string `json:"matchedRequired"`
	MatchedBonus    []string `json:"matchedBonus"`
	MissingRequired []string `json:"missingRequired"`
	ExperienceFit   string   `json:"experienceFit"`
	Explanations    []string `json:"explanations"`
	Partial         bool     `json:"partial"`
	MissingSignals  []string `json:"missingSignals,omitempty"`
}

// TrainingSuggestion is one knowledge-graph recommendation for a missing
// skill, attached unmodified to near-miss match results.
type TrainingSuggestion struct {
	Skill         string   `json:"skill"`
	Priority      string   `json:"priority"`
	Resources     []string `json:"resources"`
	EstimatedTime string   `json:"estimatedTime"`
	Rationale     string   `json:"rationale,omitempty"`
}

// MatchResult is the terminal object returned to callers.
type MatchResult struct {
	MatchID       string               `json:"matchId"`
	JobID         string               `json:"jobId"`
	CandidateName string               `json:"candidateName"`
	Breakdown     ScoreBreakdown       `json:"breakdown"`
	Band          Band                 `json:"band"`
	Gap           []TrainingSuggestion `json:"gap,omitempty"`
}

// EmbeddingProvider produces a dense vector for a piece of text. The engine
// treats it as a black box and only bounds its similarity output.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GapAnalyzer maps a missing-skill set to ranked training suggestions,
// using the candidate's existing skills for adjacency rationale.
type GapAnalyzer interface {
	AnalyzeGaps(ctx context.Context, candidateSkills []NormalizedSkill, missing []string) ([]TrainingSuggestion, error)
}
