// internal/matching/semantic.go
package matching

import (
	"context"
	"fmt"
	"math"
)

// SemanticScorer computes the embedding-based closeness between candidate
// and job text. Raw cosine lives in [-1,1]; the scorer rescales it with
// (raw+1)/2 and clamps, so a semantically opposed pair can never push the
// combined score negative.
type SemanticScorer struct {
	provider EmbeddingProvider
}

func NewSemanticScorer(provider EmbeddingProvider) *SemanticScorer {
	return &SemanticScorer{provider: provider}
}

// Score embeds both texts and returns the rescaled cosine similarity.
// Provider failures surface as errors; the caller degrades to partial
// scoring instead of failing the match.
func (s *SemanticScorer) Score(ctx context.Context, candidateText, jobText string) (Score, error) {
	if s.provider == nil {
		return 0, fmt.Errorf("no embedding provider configured")
	}

	candidateVec, err := s.provider.Embed(ctx, candidateText)
	if err != nil {
		return 0, fmt.Errorf("embed candidate text: %w", err)
	}

	jobVec, err := s.provider.Embed(ctx, jobText)
	if err != nil {
		return 0, fmt.Errorf("embed job text: %w", err)
	}

	raw, err := cosineSimilarity(candidateVec, jobVec)
	if err != nil {
		return 0, err
	}

	return NewScore((raw + 1) / 2), nil
}

// cosineSimilarity computes cosine over float32 vectors with float64
// accumulation. A zero-norm vector yields similarity 0.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty embedding vector")
	}

	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
