// Package timeline synthesizes a chronological sequence of clinical events
// from a set of documents.
package timeline

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/metrics"
)

// Service extracts and merges timeline events.
type Service struct {
	events         EventGenerator // nil disables the oracle path
	logger         *zap.Logger
	maxConcurrency int
}

// New creates a timeline service. events may be nil.
func New(events EventGenerator, logger *zap.Logger) *Service {
	return &Service{
		events:         events,
		logger:         logger,
		maxConcurrency: 4,
	}
}

// WithMaxConcurrency bounds the per-document extraction fan-out.
func (s *Service) WithMaxConcurrency(n int) *Service {
	if n > 0 {
		s.maxConcurrency = n
	}
	return s
}

// Build extracts events from every document concurrently and merges them
// into one ascending timeline. A failed oracle extraction degrades that one
// document to its deterministic fallback event; the batch never aborts.
func (s *Service) Build(ctx context.Context, docs []domain.Document) []domain.TimelineEvent {
	perDoc := make([][]domain.TimelineEvent, len(docs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.maxConcurrency)
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			perDoc[i] = s.extract(ctx, docs[i])
		}(i)
	}
	wg.Wait()

	var merged []domain.TimelineEvent
	for _, events := range perDoc {
		merged = append(merged, events...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}

// extract returns a document's events: oracle first, deterministic fallback
// on any failure or malformed output.
func (s *Service) extract(ctx context.Context, doc domain.Document) []domain.TimelineEvent {
	if s.events != nil {
		events, err := s.events.GenerateEvents(ctx, doc.Content, doc.Date)
		if err == nil && len(events) > 0 {
			// Pin the source document: the oracle does not know our IDs.
			for i := range events {
				events[i].DocumentID = doc.ID
			}
			return events
		}
		if err != nil {
			s.logger.Warn("event extraction failed, using fallback",
				zap.String("document_id", doc.ID),
				zap.Error(err),
			)
		}
		metrics.FallbackTotal.WithLabelValues("events").Inc()
	}

	return []domain.TimelineEvent{FallbackEvent(doc)}
}

// FallbackEvent derives the single deterministic event for a document: its
// own date, its summary, and a type fixed by the document category.
func FallbackEvent(doc domain.Document) domain.TimelineEvent {
	var evType domain.EventType
	switch doc.Category {
	case domain.CategoryPrescription:
		evType = domain.EventMedication
	case domain.CategoryLabReport, domain.CategoryTestReport:
		evType = domain.EventLabResult
	default:
		evType = domain.EventVisit
	}

	description := doc.Summary
	if description == "" {
		description = doc.Name
	}

	return domain.TimelineEvent{
		Date:        doc.Date,
		Description: description,
		Type:        evType,
		Doctor:      doc.Doctor,
		Hospital:    doc.Hospital,
		DocumentID:  doc.ID,
	}
}

// GroupByDay buckets a sorted timeline by calendar date for display. The
// grouping is a derived projection; the flat sorted slice stays canonical.
func GroupByDay(events []domain.TimelineEvent) []domain.TimelineDay {
	var days []domain.TimelineDay
	byDay := make(map[time.Time]int)

	for _, ev := range events {
		day := time.Date(ev.Date.Year(), ev.Date.Month(), ev.Date.Day(), 0, 0, 0, 0, time.UTC)
		if i, ok := byDay[day]; ok {
			days[i].Events = append(days[i].Events, ev)
			continue
		}
		byDay[day] = len(days)
		days = append(days, domain.TimelineDay{Date: day, Events: []domain.TimelineEvent{ev}})
	}
	return days
}
