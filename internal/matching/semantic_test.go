// internal/matching/semantic_test.go
package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// vectorProvider returns a fixed vector per text, or an error.
type vectorProvider struct {
	vectors map[string][]float32
	err     error
}

func (p *vectorProvider) Embed(_ context.Context, text string) ([]float32, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.vectors[text], nil
}

func TestSemanticScorer_Score(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical vectors", []float32{1, 0, 0}, []float32{1, 0, 0}, 1.0},
		{"opposed vectors rescale to zero", []float32{1, 0, 0}, []float32{-1, 0, 0}, 0.0},
		{"orthogonal vectors rescale to half", []float32{1, 0, 0}, []float32{0, 1, 0}, 0.5},
		{"zero norm yields neutral", []float32{0, 0, 0}, []float32{1, 0, 0}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := NewSemanticScorer(&vectorProvider{
				vectors: map[string][]float32{"candidate": tt.a, "job": tt.b},
			})
			score, err := scorer.Score(context.Background(), "candidate", "job")
			assert.NoError(t, err)
			assert.InDelta(t, tt.expected, score.Float64(), 1e-9)
		})
	}
}

func TestSemanticScorer_ProviderError(t *testing.T) {
	scorer := NewSemanticScorer(&vectorProvider{err: errors.New("connection refused")})
	_, err := scorer.Score(context.Background(), "a", "b")
	assert.Error(t, err)
}

func TestSemanticScorer_NoProvider(t *testing.T) {
	scorer := NewSemanticScorer(nil)
	_, err := scorer.Score(context.Background(), "a", "b")
	assert.Error(t, err)
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := cosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
	assert.Error(t, err)
}

func TestCosineSimilarity_EmptyVectors(t *testing.T) {
	_, err := cosineSimilarity(nil, nil)
	assert.Error(t, err)
}

func TestSemanticScorer_AlwaysBounded(t *testing.T) {
	// Drifted vectors must never escape [0,1] after rescaling.
	vectors := [][]float32{
		{1, 1, 1},
		{-1, -1, -1},
		{0.001, -0.999, 0.3},
		{1e6, -1e6, 1e6},
	}

	for _, a := range vectors {
		for _, b := range vectors {
			scorer := NewSemanticScorer(&vectorProvider{
				vectors: map[string][]float32{"candidate": a, "job": b},
			})
			score, err := scorer.Score(context.Background(), "candidate", "job")
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, score.Float64(), 0.0)
			assert.LessOrEqual(t, score.Float64(), 1.0)
		}
	}
}
