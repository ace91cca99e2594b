// internal/matching/lexical_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicalScorer_Score(t *testing.T) {
	scorer := NewLexicalScorer()

	tests := []struct {
		name          string
		candidate     string
		job           string
		expectedScore float64
	}{
		{
			name:          "identical text",
			candidate:     "python aws docker",
			job:           "python aws docker",
			expectedScore: 1.0,
		},
		{
			name:          "half overlap",
			candidate:     "python aws",
			job:           "python aws docker terraform",
			expectedScore: 0.5,
		},
		{
			name:          "no overlap",
			candidate:     "cooking gardening",
			job:           "python aws docker",
			expectedScore: 0.0,
		},
		{
			name:          "empty candidate",
			candidate:     "",
			job:           "python aws",
			expectedScore: 0.0,
		},
		{
			name:          "empty job",
			candidate:     "python aws",
			job:           "",
			expectedScore: 0.0,
		},
		{
			name:          "stopwords ignored",
			candidate:     "experience with python and aws",
			job:           "the role is python with aws",
			expectedScore: 2.0 / 3.0,
		},
		{
			name:          "case insensitive",
			candidate:     "Python AWS",
			job:           "python aws",
			expectedScore: 1.0,
		},
		{
			name:          "term frequency bounds overlap",
			candidate:     "python",
			job:           "python python python",
			expectedScore: 1.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scorer.Score(tt.candidate, tt.job)
			assert.InDelta(t, tt.expectedScore, score.Float64(), 1e-9)
		})
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("C++ and C#, Node.js / React!")
	assert.Contains(t, tokens, "c++")
	assert.Contains(t, tokens, "c#")
	assert.Contains(t, tokens, "node")
	assert.Contains(t, tokens, "js")
	assert.Contains(t, tokens, "react")
	assert.NotContains(t, tokens, "and")
}
