// Package medkb is an embeddable medical knowledge engine: it ingests
// medical documents into an in-memory corpus and answers questions over
// them with semantic retrieval, timeline synthesis, and deterministic
// clinical reasoning. An optional OpenAI-compatible oracle improves
// embeddings, event extraction, and phrasing; every capability degrades
// to a deterministic path when the oracle is absent or failing.
package medkb

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/db"
	dbRedis "github.com/kaira-health/medkb/internal/db/redis"
	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/knowledge"
	"github.com/kaira-health/medkb/internal/metrics"
	"github.com/kaira-health/medkb/internal/repository/corpus"
	"github.com/kaira-health/medkb/internal/repository/embcache"
	openaiOracle "github.com/kaira-health/medkb/internal/transport/openai"
	chunkinguc "github.com/kaira-health/medkb/internal/usecase/chunking"
	documentuc "github.com/kaira-health/medkb/internal/usecase/document"
	embeddinguc "github.com/kaira-health/medkb/internal/usecase/embedding"
	queryuc "github.com/kaira-health/medkb/internal/usecase/query"
	reasoninguc "github.com/kaira-health/medkb/internal/usecase/reasoning"
	searchuc "github.com/kaira-health/medkb/internal/usecase/search"
	timelineuc "github.com/kaira-health/medkb/internal/usecase/timeline"
)

// Engine is the medkb entry point. Each Engine owns one in-memory corpus;
// all methods are safe for concurrent use.
type Engine struct {
	store     db.Store // nil without a cache
	corpus    *corpus.Corpus
	documents *documentuc.Service
	search    *searchuc.Service
	timeline  *timelineuc.Service
	reasoning *reasoninguc.Service
	query     *queryuc.Service
}

// New creates an Engine. Without options it runs fully offline on the
// deterministic paths.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{logger: zap.NewNop()}
	for _, o := range opts {
		o(cfg)
	}
	logger := cfg.logger

	var oracle *openaiOracle.Oracle
	if cfg.oracleAPIKey != "" {
		embeddingModel := cfg.oracleEmbeddingModel
		if embeddingModel == "" {
			embeddingModel = "text-embedding-3-small"
		}
		chatModel := cfg.oracleChatModel
		if chatModel == "" {
			chatModel = "gpt-4o-mini"
		}
		oracle = openaiOracle.New(&openaiOracle.Config{
			APIKey:         cfg.oracleAPIKey,
			BaseURL:        cfg.oracleBaseURL,
			EmbeddingModel: embeddingModel,
			ChatModel:      chatModel,
			Logger:         logger,
		})
	}

	var store db.Store
	if len(cfg.cacheAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
		})
		if err != nil {
			return nil, fmt.Errorf("medkb: create cache store: %w", err)
		}
		store = s
	}

	// Embedder chain: oracle -> cache -> resilient fallback.
	var oracleEmb domain.Embedder
	if oracle != nil {
		oracleEmb = oracle
		if store != nil {
			oracleEmb = embcache.New(oracle, store, cfg.cacheTTL, metrics.EmbeddingCacheTotal, logger)
		}
	}
	embedder := embeddinguc.NewResilient(oracleEmb, logger)

	ref := knowledge.Default()
	if cfg.knowledgePath != "" {
		loaded, err := knowledge.Load(cfg.knowledgePath)
		if err != nil {
			return nil, fmt.Errorf("medkb: load knowledge tables: %w", err)
		}
		ref = loaded
	}

	c := corpus.New()

	docSvc := documentuc.New(chunkinguc.New(), embedder, c, logger)
	timelineSvc := timelineuc.New(nil, logger)
	if oracle != nil {
		timelineSvc = timelineuc.New(oracle, logger)
	}
	if cfg.maxConcurrency > 0 {
		docSvc = docSvc.WithMaxConcurrency(cfg.maxConcurrency)
		timelineSvc = timelineSvc.WithMaxConcurrency(cfg.maxConcurrency)
	}

	searchSvc := searchuc.New(c, embedder)

	var pairs reasoninguc.PairChecker
	var text reasoninguc.TextGenerator
	var answerText queryuc.TextGenerator
	if oracle != nil {
		pairs = oracle
		text = oracle
		answerText = oracle
	}
	reasoningSvc := reasoninguc.New(ref, pairs, text, logger)

	querySvc := queryuc.New(searchSvc, timelineSvc, answerText, logger)
	if cfg.topK > 0 {
		querySvc = querySvc.WithTopK(cfg.topK)
	}

	return &Engine{
		store:     store,
		corpus:    c,
		documents: docSvc,
		search:    searchSvc,
		timeline:  timelineSvc,
		reasoning: reasoningSvc,
		query:     querySvc,
	}, nil
}

// Close releases the cache connection, if any.
func (e *Engine) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// Ingest validates, chunks, vectorizes, and stores one document. The
// returned document carries its assigned ID.
func (e *Engine) Ingest(ctx context.Context, doc Document) (Document, error) {
	stored, err := e.documents.Ingest(ctx, toDomainDocument(doc))
	if err != nil {
		return Document{}, err
	}
	return fromDomainDocument(stored), nil
}

// IngestBatch ingests documents independently; the error slice is
// index-aligned with the input.
func (e *Engine) IngestBatch(ctx context.Context, docs []Document) ([]Document, []error) {
	in := make([]domain.Document, len(docs))
	for i, d := range docs {
		in[i] = toDomainDocument(d)
	}
	stored, errs := e.documents.IngestBatch(ctx, in)
	out := make([]Document, len(stored))
	for i, d := range stored {
		out[i] = fromDomainDocument(d)
	}
	return out, errs
}

// Document returns one ingested document by ID.
func (e *Engine) Document(id string) (Document, error) {
	doc, ok := e.corpus.Get(id)
	if !ok {
		return Document{}, fmt.Errorf("document %q: %w", id, domain.ErrDocumentNotFound)
	}
	return fromDomainDocument(doc), nil
}

// Search returns the top-k documents for a query. k <= 0 uses the default
// depth.
func (e *Engine) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	hits, err := e.search.Search(ctx, query, k, searchuc.ModeSemantic)
	if err != nil {
		return nil, err
	}
	return fromScoredDocuments(hits), nil
}

// Timeline synthesizes the chronological event sequence for the given
// document IDs, or for every ingested document when none are passed.
// Unknown IDs are skipped.
func (e *Engine) Timeline(ctx context.Context, ids ...string) []TimelineEvent {
	docs := e.corpus.All()
	if len(ids) > 0 {
		docs = e.corpus.Select(ids)
	}
	return fromDomainEvents(e.timeline.Build(ctx, docs))
}

// Analyze runs the clinical reasoning engine over explicit inputs.
func (e *Engine) Analyze(ctx context.Context, req AnalysisRequest) Analysis {
	analysis := e.reasoning.Analyze(ctx, reasoninguc.Request{
		Medications: req.Medications,
		Conditions:  req.Conditions,
		Series:      toDomainSeries(req.Series),
		Gender:      domain.Gender(req.Gender),
	})
	return fromDomainAnalysis(analysis)
}

// Ask answers a question grounded in the ingested documents.
func (e *Engine) Ask(ctx context.Context, question string) (Answer, error) {
	answer, err := e.query.Answer(ctx, question)
	if err != nil {
		return Answer{}, err
	}
	return fromDomainAnswer(answer), nil
}

// Len reports the number of ingested documents.
func (e *Engine) Len() int {
	return e.corpus.Len()
}
