package embedding

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/metrics"
)

// ResilientEmbedder prefers the oracle embedder and degrades to the
// deterministic fallback on any oracle failure. Oracle errors never
// propagate to callers; both paths produce the same vector dimension.
type ResilientEmbedder struct {
	oracle   domain.Embedder // nil means fallback-only
	fallback domain.Embedder
	logger   *zap.Logger
}

// NewResilient wraps an optional oracle embedder. Passing a nil oracle
// yields a fallback-only embedder.
func NewResilient(oracle domain.Embedder, logger *zap.Logger) *ResilientEmbedder {
	return &ResilientEmbedder{
		oracle:   oracle,
		fallback: NewFallback(),
		logger:   logger,
	}
}

// Embed implements domain.Embedder.
func (e *ResilientEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.oracle != nil {
		start := time.Now()
		vec, err := e.oracle.Embed(ctx, text)
		if err == nil && len(vec) == domain.EmbeddingDimensions {
			e.logger.Debug("oracle embedding",
				zap.Int("text_len", len(text)),
				zap.Duration("duration", time.Since(start)),
			)
			return vec, nil
		}

		// Dimension mismatch counts as an oracle failure: mixing vector
		// dimensions would poison cosine comparison downstream.
		if err == nil {
			e.logger.Warn("oracle embedding dimension mismatch, using fallback",
				zap.Int("got", len(vec)),
				zap.Int("want", domain.EmbeddingDimensions),
			)
		} else {
			e.logger.Warn("oracle embedding failed, using fallback", zap.Error(err))
		}
		metrics.FallbackTotal.WithLabelValues("embed").Inc()
	}

	return e.fallback.Embed(ctx, text)
}
