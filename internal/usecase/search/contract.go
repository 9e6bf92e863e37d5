package search

import (
	"context"

	"github.com/kaira-health/medkb/internal/domain"
)

// Repository is the retrieval contract over the in-memory corpus.
type Repository interface {
	Search(query []float32, k int) []domain.ScoredDocument
	SearchChunks(query []float32, k int) []domain.ScoredChunk
	All() []domain.Document
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
