// Package corpus is the in-memory, session-scoped document store. Each
// session owns exactly one Corpus; nothing is shared between sessions and
// nothing survives the session.
package corpus

import (
	"sync"

	"github.com/kaira-health/medkb/internal/domain"
)

// Corpus holds a session's documents with their embeddings, preserving
// insertion order for stable tie-breaking in search.
type Corpus struct {
	mu    sync.RWMutex
	docs  []domain.Document
	byID  map[string]int
}

// New creates an empty corpus.
func New() *Corpus {
	return &Corpus{byID: make(map[string]int)}
}

// Add inserts a document. A document with a duplicate ID replaces the
// existing one in place, keeping its original insertion position.
func (c *Corpus) Add(doc domain.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.byID[doc.ID]; ok {
		c.docs[i] = doc
		return
	}
	c.byID[doc.ID] = len(c.docs)
	c.docs = append(c.docs, doc)
}

// Get returns a document by ID.
func (c *Corpus) Get(id string) (domain.Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return domain.Document{}, false
	}
	return c.docs[i], true
}

// All returns the documents in insertion order.
func (c *Corpus) All() []domain.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Select returns the documents with the given IDs, skipping unknown ones.
// An empty id list selects the whole corpus.
func (c *Corpus) Select(ids []string) []domain.Document {
	if len(ids) == 0 {
		return c.All()
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		if i, ok := c.byID[id]; ok {
			out = append(out, c.docs[i])
		}
	}
	return out
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}
