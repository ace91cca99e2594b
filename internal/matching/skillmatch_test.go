// internal/matching/skillmatch_test.go
package matching

import (
	"testing"

	"talent-match-workers/internal/common/config"

	"github.com/stretchr/testify/assert"
)

func testSkillMatchConfig() config.SkillMatchConfig {
	return config.SkillMatchConfig{
		CategoryCredit: 0.5,
		BonusReward:    0.05,
		BonusCap:       0.15,
	}
}

func normalized(skills ...string) []NormalizedSkill {
	return NewNormalizer(DefaultTaxonomy()).Normalize(skills)
}

func TestSkillScorer_Score(t *testing.T) {
	scorer := NewSkillScorer(DefaultTaxonomy(), testSkillMatchConfig())

	tests := []struct {
		name            string
		candidate       []string
		job             *JobRequirement
		expectedScore   float64
		matchedRequired []string
		matchedBonus    []string
		missingRequired []string
	}{
		{
			name:      "all required matched plus bonus",
			candidate: []string{"python", "aws", "docker", "kubernetes"},
			job: &JobRequirement{
				Required: RequiredSkills("python", "aws", "docker"),
				Bonus:    []string{"kubernetes"},
			},
			expectedScore:   1.0,
			matchedRequired: []string{"python", "aws", "docker"},
			matchedBonus:    []string{"kubernetes"},
			missingRequired: []string{},
		},
		{
			name:      "one of four required",
			candidate: []string{"python"},
			job: &JobRequirement{
				Required: RequiredSkills("python", "aws", "docker", "terraform"),
			},
			expectedScore:   0.25,
			matchedRequired: []string{"python"},
			matchedBonus:    []string{},
			missingRequired: []string{"aws", "docker", "terraform"},
		},
		{
			name:            "zero required skills scores full",
			candidate:       []string{},
			job:             &JobRequirement{Required: nil},
			expectedScore:   1.0,
			matchedRequired: []string{},
			matchedBonus:    []string{},
			missingRequired: []string{},
		},
		{
			name:      "same category partial credit",
			candidate: []string{"gcp"},
			job: &JobRequirement{
				Required: RequiredSkills("aws"),
			},
			expectedScore:   0.5,
			matchedRequired: []string{},
			matchedBonus:    []string{},
			missingRequired: []string{"aws"},
		},
		{
			name:      "aliases resolve before comparison",
			candidate: []string{"k8s"},
			job: &JobRequirement{
				Required: RequiredSkills("kubernetes"),
			},
			expectedScore:   1.0,
			matchedRequired: []string{"kubernetes"},
			matchedBonus:    []string{},
			missingRequired: []string{},
		},
		{
			name:      "weighted required skills",
			candidate: []string{"python"},
			job: &JobRequirement{
				Required: []SkillRequirement{
					{Name: "python", Weight: 3},
					{Name: "aws", Weight: 1},
				},
			},
			expectedScore:   0.75,
			matchedRequired: []string{"python"},
			matchedBonus:    []string{},
			missingRequired: []string{"aws"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := scorer.Score(normalized(tt.candidate...), tt.job)
			assert.InDelta(t, tt.expectedScore, match.Score.Float64(), 1e-9)
			assert.Equal(t, tt.matchedRequired, match.MatchedRequired)
			assert.Equal(t, tt.matchedBonus, match.MatchedBonus)
			assert.Equal(t, tt.missingRequired, match.MissingRequired)
		})
	}
}

func TestSkillScorer_BonusCap(t *testing.T) {
	scorer := NewSkillScorer(DefaultTaxonomy(), testSkillMatchConfig())

	// 5 matched bonus skills at 0.05 each would be 0.25; cap at 0.15.
	match := scorer.Score(
		normalized("python", "react", "angular", "vue", "kafka", "spark"),
		&JobRequirement{
			Required: RequiredSkills("python"),
			Bonus:    []string{"react", "angular", "vue", "kafka", "spark"},
		},
	)
	assert.Equal(t, 1.0, match.Score.Float64())

	partial := scorer.Score(
		normalized("react", "angular", "vue", "kafka", "spark"),
		&JobRequirement{
			Required: RequiredSkills("python", "aws"),
			Bonus:    []string{"react", "angular", "vue", "kafka", "spark"},
		},
	)
	// react/angular/vue are frontend; no aws/python category overlap, so
	// base 0 + capped bonus only.
	assert.InDelta(t, 0.15, partial.Score.Float64(), 1e-9)
}

func TestSkillScorer_Monotonicity(t *testing.T) {
	scorer := NewSkillScorer(DefaultTaxonomy(), testSkillMatchConfig())
	candidate := normalized("python", "kubernetes")

	// Adding a required skill the candidate already has, all else equal,
	// never decreases the skill sub-score.
	before := scorer.Score(candidate, &JobRequirement{
		Required: RequiredSkills("python", "aws"),
	})
	after := scorer.Score(candidate, &JobRequirement{
		Required: RequiredSkills("python", "aws", "kubernetes"),
	})
	assert.GreaterOrEqual(t, after.Score.Float64(), before.Score.Float64())

	// Growing the candidate toward full coverage is also monotone.
	job := &JobRequirement{Required: RequiredSkills("python", "aws", "docker")}
	partial := scorer.Score(normalized("python"), job)
	grown := scorer.Score(normalized("python", "aws"), job)
	full := scorer.Score(normalized("python", "aws", "docker"), job)
	assert.GreaterOrEqual(t, grown.Score.Float64(), partial.Score.Float64())
	assert.GreaterOrEqual(t, full.Score.Float64(), grown.Score.Float64())
	assert.Equal(t, 1.0, full.Score.Float64())
}
