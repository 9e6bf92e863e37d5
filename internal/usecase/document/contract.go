package document

import (
	"context"

	"github.com/kaira-health/medkb/internal/domain"
)

// Chunker splits raw document text into typed chunks.
type Chunker interface {
	Split(docID, content string) []domain.Chunk
}

// Embedder vectorizes text. The ingestion path expects it to always
// succeed; resilient implementations degrade internally.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Repository is the storage contract for ingested documents.
type Repository interface {
	Add(doc domain.Document)
}
