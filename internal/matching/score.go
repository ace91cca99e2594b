// internal/matching/score.go
package matching

import "math"

// Score is a bounded sub-score in [0,1]. Construct through NewScore or
// ClampScore so out-of-range values are normalized at the boundary instead
// of leaking into the combined result.
type Score float64

// NewScore clamps v into [0,1]. NaN collapses to 0.
func NewScore(v float64) Score {
	s, _ := ClampScore(v)
	return s
}

// ClampScore clamps v into [0,1] and reports whether clamping was needed.
// Callers use the report to log invariant violations.
func ClampScore(v float64) (Score, bool) {
	switch {
	case math.IsNaN(v):
		return 0, true
	case v < 0:
		return 0, true
	case v > 1:
		return 1, true
	}
	return Score(v), false
}

// Float64 returns the score as a plain float64.
func (s Score) Float64() float64 {
	return float64(s)
}

// Percentage converts the score to [0,100] rounded to one decimal.
func (s Score) Percentage() float64 {
	return math.Round(float64(s)*1000) / 10
}
