// internal/collaborators/knowledgegraph/analyzer_test.go
package knowledgegraph

import (
	"context"
	"testing"

	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return NewAnalyzer(matching.DefaultTaxonomy(), logger.NewNoOpLogger())
}

func candidateWith(skills ...string) []matching.NormalizedSkill {
	return matching.NewNormalizer(matching.DefaultTaxonomy()).Normalize(skills)
}

func TestAnalyzer_AnalyzeGaps_ResourceFamilies(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	tests := []struct {
		name          string
		missing       string
		expectedSkill string
		wantResource  string
	}{
		{"language family", "python", "Python", "Codecademy Python Course"},
		{"cloud family uppercased", "aws", "AWS", "AWS Cloud Practitioner Certification"},
		{"container family", "kubernetes", "Kubernetes", "CNCF Kubernetes Certification"},
		{"default family", "terraform", "Terraform", "Online course: Terraform Fundamentals"},
		{"alias resolves first", "k8s", "Kubernetes", "Hands-on Kubernetes Labs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions, err := analyzer.AnalyzeGaps(context.Background(), nil, []string{tt.missing})
			require.NoError(t, err)
			require.Len(t, suggestions, 1)

			assert.Equal(t, tt.expectedSkill, suggestions[0].Skill)
			assert.Equal(t, PriorityHigh, suggestions[0].Priority)
			assert.Equal(t, estimatedTimeHigh, suggestions[0].EstimatedTime)
			assert.Contains(t, suggestions[0].Resources, tt.wantResource)
		})
	}
}

func TestAnalyzer_AnalyzeGaps_AdjacencyRationale(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	suggestions, err := analyzer.AnalyzeGaps(
		context.Background(),
		candidateWith("docker"),
		[]string{"kubernetes"},
	)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "candidate has docker, adjacent to kubernetes", suggestions[0].Rationale)
}

func TestAnalyzer_AnalyzeGaps_NoAdjacency(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	suggestions, err := analyzer.AnalyzeGaps(
		context.Background(),
		candidateWith("python"),
		[]string{"kubernetes"},
	)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Empty(t, suggestions[0].Rationale)
}

func TestAnalyzer_AnalyzeGaps_CapsAtLimit(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	suggestions, err := analyzer.AnalyzeGaps(
		context.Background(),
		nil,
		[]string{"aws", "docker", "terraform", "kafka", "spark"},
	)
	require.NoError(t, err)
	assert.Len(t, suggestions, DefaultSkillLimit)
}

func TestAnalyzer_Analyze_PriorityOrdering(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	suggestions, err := analyzer.Analyze(
		context.Background(),
		nil,
		[]string{"docker"},
		[]string{"react"},
	)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "Docker", suggestions[0].Skill)
	assert.Equal(t, PriorityHigh, suggestions[0].Priority)
	assert.Equal(t, estimatedTimeHigh, suggestions[0].EstimatedTime)

	assert.Equal(t, "React", suggestions[1].Skill)
	assert.Equal(t, PriorityMedium, suggestions[1].Priority)
	assert.Equal(t, estimatedTimeMedium, suggestions[1].EstimatedTime)
}

func TestAnalyzer_Analyze_SortedAndDeduplicated(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	suggestions, err := analyzer.Analyze(
		context.Background(),
		nil,
		[]string{"Docker", "aws", "docker"},
		nil,
	)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "AWS", suggestions[0].Skill)
	assert.Equal(t, "Docker", suggestions[1].Skill)
}

func TestAnalyzer_Analyze_Empty(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	suggestions, err := analyzer.Analyze(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestAnalyzer_MultiWordSkillDisplay(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	suggestions, err := analyzer.AnalyzeGaps(context.Background(), nil, []string{"ml"})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Machine Learning", suggestions[0].Skill)
}
