package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// BudgetedEmbedder wraps an oracle embedder with token budget enforcement.
// The embedding API does not report usage per call, so consumption is
// estimated at roughly four characters per token.
type BudgetedEmbedder struct {
	inner  domain.Embedder
	budget BudgetChecker
	logger *zap.Logger
}

// NewBudgeted wraps an embedder with budget enforcement.
func NewBudgeted(inner domain.Embedder, budget BudgetChecker, logger *zap.Logger) *BudgetedEmbedder {
	return &BudgetedEmbedder{
		inner:  inner,
		budget: budget,
		logger: logger,
	}
}

// Embed checks the budget, delegates to the inner embedder, and records usage.
func (p *BudgetedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := p.budget.Check(ctx); err != nil {
		p.logger.Error("Oracle budget exceeded", zap.Error(err))
		return nil, fmt.Errorf("budget check: %w", err)
	}

	start := time.Now()

	vec, err := p.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	tokens := estimateTokens(text)
	p.budget.Record(tokens)
	remaining := metrics.OracleBudgetTokensRemaining
	remaining.WithLabelValues("daily").Set(float64(p.budget.RemainingDaily()))
	remaining.WithLabelValues("monthly").Set(float64(p.budget.RemainingMonthly()))

	p.logger.Debug("Embedding request completed",
		zap.Duration("duration", time.Since(start)),
		zap.Int("dimensions", len(vec)),
		zap.Int64("estimated_tokens", tokens),
	)

	return vec, nil
}

// estimateTokens approximates token count from text length.
func estimateTokens(text string) int64 {
	n := int64(len(text)+3) / 4
	if n < 1 {
		n = 1
	}
	return n
}
