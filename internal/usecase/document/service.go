// Package document handles ingestion: validation, chunking, vectorization,
// and corpus insertion.
package document

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
)

// Service ingests documents into the in-memory corpus.
type Service struct {
	chunker        Chunker
	embedder       Embedder
	repo           Repository
	logger         *zap.Logger
	maxConcurrency int
}

// New creates an ingestion service.
func New(chunker Chunker, embedder Embedder, repo Repository, logger *zap.Logger) *Service {
	return &Service{
		chunker:        chunker,
		embedder:       embedder,
		repo:           repo,
		logger:         logger,
		maxConcurrency: 4,
	}
}

// WithMaxConcurrency bounds the chunk-vectorization fan-out.
func (s *Service) WithMaxConcurrency(n int) *Service {
	if n > 0 {
		s.maxConcurrency = n
	}
	return s
}

// Ingest validates, chunks, vectorizes, and stores one document. The
// returned document carries its assigned ID, embedding, and chunks. A
// document with empty content is rejected before any vectorization work.
func (s *Service) Ingest(ctx context.Context, doc domain.Document) (domain.Document, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return domain.Document{}, fmt.Errorf("document %q has no content: %w", doc.Name, domain.ErrInvalidDocument)
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.Category == "" {
		doc.Category = domain.CategoryOther
	}

	embedding, err := s.embedder.Embed(ctx, doc.Content)
	if err != nil {
		return domain.Document{}, fmt.Errorf("vectorize document %s: %w", doc.ID, err)
	}
	doc.Embedding = embedding

	doc.Chunks = s.chunker.Split(doc.ID, doc.Content)
	if err := s.embedChunks(ctx, doc.Chunks); err != nil {
		return domain.Document{}, err
	}

	s.repo.Add(doc)
	s.logger.Debug("document ingested",
		zap.String("document_id", doc.ID),
		zap.String("category", string(doc.Category)),
		zap.Int("chunks", len(doc.Chunks)),
	)
	return doc, nil
}

// IngestBatch ingests each document independently. One invalid document
// never aborts the rest; the error slice is index-aligned with the input
// and nil at successful positions.
func (s *Service) IngestBatch(ctx context.Context, docs []domain.Document) ([]domain.Document, []error) {
	out := make([]domain.Document, len(docs))
	errs := make([]error, len(docs))
	for i, doc := range docs {
		out[i], errs[i] = s.Ingest(ctx, doc)
		if errs[i] != nil {
			s.logger.Warn("batch item failed",
				zap.Int("index", i),
				zap.String("name", doc.Name),
				zap.Error(errs[i]),
			)
		}
	}
	return out, errs
}

// embedChunks vectorizes chunks concurrently, bounded by maxConcurrency.
// The first error wins; remaining work still drains.
func (s *Service) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.maxConcurrency)
	errs := make([]error, len(chunks))

	for i := range chunks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			vec, err := s.embedder.Embed(ctx, chunks[i].Content)
			if err != nil {
				errs[i] = fmt.Errorf("vectorize chunk %s: %w", chunks[i].ID, err)
				return
			}
			chunks[i].Embedding = vec
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
