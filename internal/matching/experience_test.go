// internal/matching/experience_test.go
package matching

import (
	"testing"

	"talent-match-workers/internal/common/config"

	"github.com/stretchr/testify/assert"
)

func testExperienceConfig() config.ExperienceConfig {
	return config.ExperienceConfig{
		OverqualifiedFloor: 0.6,
		OverqualifiedDecay: 0.05,
		UnknownDefault:     0.5,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestExperienceScorer_Score(t *testing.T) {
	scorer := NewExperienceScorer(testExperienceConfig())

	tests := []struct {
		name          string
		years         *float64
		min, max      *float64
		expectedScore float64
		expectedFit   string
	}{
		{"within range", floatPtr(6), floatPtr(3), floatPtr(8), 1.0, ExperienceInRange},
		{"at minimum", floatPtr(3), floatPtr(3), floatPtr(8), 1.0, ExperienceInRange},
		{"at maximum", floatPtr(8), floatPtr(3), floatPtr(8), 1.0, ExperienceInRange},
		{"severe shortfall", floatPtr(1), floatPtr(5), floatPtr(10), 0.2, ExperienceBelow},
		{"mild shortfall reads adequate", floatPtr(4), floatPtr(5), floatPtr(10), 0.8, ExperienceAdequate},
		{"zero years against minimum", floatPtr(0), floatPtr(5), nil, 0.0, ExperienceBelow},
		{"overqualified mild decay", floatPtr(10), floatPtr(3), floatPtr(8), 0.9, ExperienceOverqualified},
		{"overqualified hits floor", floatPtr(30), floatPtr(3), floatPtr(8), 0.6, ExperienceOverqualified},
		{"unknown years neutral", nil, floatPtr(3), floatPtr(8), 0.5, ExperienceAdequate},
		{"negative years treated as unknown", floatPtr(-2), floatPtr(3), floatPtr(8), 0.5, ExperienceAdequate},
		{"no bounds at all", floatPtr(4), nil, nil, 1.0, ExperienceInRange},
		{"only minimum satisfied", floatPtr(12), floatPtr(5), nil, 1.0, ExperienceInRange},
		{"only maximum exceeded", floatPtr(12), nil, floatPtr(10), 0.9, ExperienceOverqualified},
		{"zero minimum never divides", floatPtr(0), floatPtr(0), floatPtr(5), 1.0, ExperienceInRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &JobRequirement{MinYears: tt.min, MaxYears: tt.max}
			score, fit := scorer.Score(tt.years, job)
			assert.InDelta(t, tt.expectedScore, score.Float64(), 1e-9)
			assert.Equal(t, tt.expectedFit, fit)
		})
	}
}

func TestExperienceScorer_UnderqualificationSteeperThanOver(t *testing.T) {
	scorer := NewExperienceScorer(testExperienceConfig())
	job := &JobRequirement{MinYears: floatPtr(6), MaxYears: floatPtr(8)}

	under, _ := scorer.Score(floatPtr(3), job) // 3 years short of 6
	over, _ := scorer.Score(floatPtr(11), job) // 3 years over 8

	assert.Less(t, under.Float64(), over.Float64())
	assert.GreaterOrEqual(t, over.Float64(), 0.6)
}
