package query

import (
	"context"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/usecase/search"
)

// Retriever ranks corpus documents against the question text.
type Retriever interface {
	Search(ctx context.Context, query string, k int, mode search.Mode) ([]domain.ScoredDocument, error)
}

// TimelineBuilder synthesizes events for the retrieved documents.
type TimelineBuilder interface {
	Build(ctx context.Context, docs []domain.Document) []domain.TimelineEvent
}

// TextGenerator produces the grounded answer text. Optional; nil or a
// failing call degrades to the extractive fallback.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
