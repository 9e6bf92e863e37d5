// Package chi exposes the engine over a JSON REST API. Sessions are
// selected with the X-Session-ID header; each session owns an isolated
// corpus created on first use.
package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kaira-health/medkb/internal/domain"
	"github.com/kaira-health/medkb/internal/logger"
	"github.com/kaira-health/medkb/internal/usecase/health"
	reasoninguc "github.com/kaira-health/medkb/internal/usecase/reasoning"
	searchuc "github.com/kaira-health/medkb/internal/usecase/search"
	timelineuc "github.com/kaira-health/medkb/internal/usecase/timeline"
)

const maxBatchSize = 100

// Server handles the REST API.
type Server struct {
	sessions      *sessionRegistry
	timeline      *timelineuc.Service
	reasoning     *reasoninguc.Service
	health        *health.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. factory builds per-session
// service bundles; timeline and reasoning are stateless and shared.
func NewServer(
	factory SessionFactory,
	timeline *timelineuc.Service,
	reasoning *reasoninguc.Service,
	healthSvc *health.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		sessions:      newSessionRegistry(factory),
		timeline:      timeline,
		reasoning:     reasoning,
		health:        healthSvc,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes mounts every endpoint on the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chirouter.Router) {
		r.Post("/documents", s.IngestDocument)
		r.Post("/documents/batch", s.IngestBatch)
		r.Get("/documents/{id}", s.GetDocument)
		r.Post("/search", s.Search)
		r.Get("/timeline", s.Timeline)
		r.Post("/analyze", s.Analyze)
		r.Post("/ask", s.Ask)
		r.Delete("/session", s.DropSession)
	})
}

// IngestDocument handles POST /v1/documents.
func (s *Server) IngestDocument(w http.ResponseWriter, r *http.Request) {
	var req ingestDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	doc, err := documentFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid date: "+err.Error())
		return
	}

	session := s.sessions.resolve(r)
	stored, err := session.Documents.Ingest(r.Context(), doc)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, documentToResponse(stored))
}

// GetDocument handles GET /v1/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := chirouter.URLParam(r, "id")

	session := s.sessions.resolve(r)
	doc, ok := session.Source.Get(id)
	if !ok {
		s.handleDomainError(w, fmt.Errorf("document %q: %w", id, domain.ErrDocumentNotFound))
		return
	}

	writeJSON(w, http.StatusOK, documentToResponse(doc))
}

// IngestBatch handles POST /v1/documents/batch. Items fail independently.
func (s *Server) IngestBatch(w http.ResponseWriter, r *http.Request) {
	var req ingestBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Documents) == 0 || len(req.Documents) > maxBatchSize {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"documents count must be between 1 and 100")
		return
	}

	session := s.sessions.resolve(r)

	items := make([]batchResultItem, len(req.Documents))
	succeeded, failed := 0, 0
	for i, itemReq := range req.Documents {
		doc, err := documentFromRequest(itemReq)
		if err == nil {
			doc, err = session.Documents.Ingest(r.Context(), doc)
		}
		if err != nil {
			logger.FromContext(r.Context()).Warn("batch item failed",
				zap.Int("index", i), zap.Error(err))
			items[i] = batchResultItem{
				Status: "error",
				Error:  &errorResponse{Code: codeValidationFailed, Message: safeDomainMessage(err)},
			}
			failed++
			continue
		}
		items[i] = batchResultItem{Status: "ok", Document: documentToResponse(doc)}
		succeeded++
	}

	writeJSON(w, http.StatusOK, ingestBatchResponse{
		Items:     items,
		Succeeded: succeeded,
		Failed:    failed,
	})
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query is required")
		return
	}

	mode := searchuc.ModeSemantic
	if req.Mode == string(searchuc.ModeHybrid) {
		mode = searchuc.ModeHybrid
	}

	session := s.sessions.resolve(r)

	if req.Chunks {
		hits, err := session.Search.SearchChunks(r.Context(), req.Query, req.TopK)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, searchResponse{Results: scoredChunksToResponse(hits)})
		return
	}

	hits, err := session.Search.Search(r.Context(), req.Query, req.TopK, mode)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: scoredDocsToResponse(hits)})
}

// Timeline handles GET /v1/timeline. An optional ids query parameter
// (comma-separated) restricts the timeline to those documents.
func (s *Server) Timeline(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.resolve(r)

	docs := session.Source.All()
	if raw := r.URL.Query().Get("ids"); raw != "" {
		docs = session.Source.Select(strings.Split(raw, ","))
	}

	events := s.timeline.Build(r.Context(), docs)
	writeJSON(w, http.StatusOK, timelineResponse{Events: eventsToResponse(events)})
}

// Analyze handles POST /v1/analyze.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	series, err := seriesFromRequest(req.Series)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid series date: "+err.Error())
		return
	}

	analysis := s.reasoning.Analyze(r.Context(), reasoninguc.Request{
		Medications: req.Medications,
		Conditions:  req.Conditions,
		Series:      series,
		Gender:      domain.Gender(req.Gender),
	})
	writeJSON(w, http.StatusOK, analysisToResponse(analysis))
}

// Ask handles POST /v1/ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "question is required")
		return
	}

	session := s.sessions.resolve(r)
	answer, err := session.Query.Answer(r.Context(), req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Answer:     answer.Text,
		Confidence: answer.Confidence,
		Sources:    scoredDocsToResponse(answer.Sources),
		Timeline:   eventsToResponse(answer.Timeline),
	})
}

// DropSession handles DELETE /v1/session.
func (s *Server) DropSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.drop(r) {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
