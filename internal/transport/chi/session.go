package chi

import (
	"net/http"
	"sync"

	"github.com/kaira-health/medkb/internal/domain"
	documentuc "github.com/kaira-health/medkb/internal/usecase/document"
	queryuc "github.com/kaira-health/medkb/internal/usecase/query"
	searchuc "github.com/kaira-health/medkb/internal/usecase/search"
)

// sessionHeader selects the caller's corpus. A missing header maps every
// request onto the shared default session.
const sessionHeader = "X-Session-ID"

const defaultSessionID = "default"

// DocumentSource exposes the session corpus to read-only consumers.
type DocumentSource interface {
	Get(id string) (domain.Document, bool)
	All() []domain.Document
	Select(ids []string) []domain.Document
	Len() int
}

// Session bundles the per-corpus services: ingestion, retrieval, and
// question answering all bound to one document set.
type Session struct {
	Documents *documentuc.Service
	Search    *searchuc.Service
	Query     *queryuc.Service
	Source    DocumentSource
}

// SessionFactory builds a fresh Session around a new empty corpus.
type SessionFactory func() *Session

// sessionRegistry hands out sessions keyed by the X-Session-ID header,
// creating them on first use.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	factory  SessionFactory
}

func newSessionRegistry(factory SessionFactory) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*Session),
		factory:  factory,
	}
}

// resolve returns the session for an HTTP request, creating it on demand.
func (r *sessionRegistry) resolve(req *http.Request) *Session {
	id := req.Header.Get(sessionHeader)
	if id == "" {
		id = defaultSessionID
	}

	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s = r.factory()
	r.sessions[id] = s
	return s
}

// drop removes a session and its corpus.
func (r *sessionRegistry) drop(req *http.Request) bool {
	id := req.Header.Get(sessionHeader)
	if id == "" {
		id = defaultSessionID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}
