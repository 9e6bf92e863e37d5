package domain

import (
	"context"
	"time"
)

// EmbeddingDimensions is the fixed vector length shared by the oracle path
// and the deterministic fallback. Downstream cosine comparison relies on
// both paths producing this exact dimension.
const EmbeddingDimensions = 384

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EventGenerator extracts structured timeline events from document text.
// Implementations may return malformed output; callers validate and fall
// back deterministically.
type EventGenerator interface {
	GenerateEvents(ctx context.Context, documentText string, documentDate time.Time) ([]TimelineEvent, error)
}

// TextGenerator produces free-text narrative from structured facts. Used
// only for summaries and recommendations, never for structured results.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Oracle is the full external capability contract. Every capability is
// optional at runtime: a nil oracle or a failing call degrades to the
// deterministic path, never to a hard failure.
type Oracle interface {
	Embedder
	EventGenerator
	TextGenerator
}

// HealthChecker verifies oracle availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
