package timeline

import (
	"context"
	"time"

	"github.com/kaira-health/medkb/internal/domain"
)

// EventGenerator extracts structured events from document text. Optional;
// nil disables the oracle path entirely.
type EventGenerator interface {
	GenerateEvents(ctx context.Context, documentText string, documentDate time.Time) ([]domain.TimelineEvent, error)
}
