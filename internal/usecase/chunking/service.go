// Package chunking splits document text into contiguous, type-tagged chunks
// using line-level keyword classification.
package chunking

import (
	"fmt"
	"strings"

	"github.com/kaira-health/medkb/internal/domain"
)

// Service splits documents into chunks.
type Service struct {
	rules []Rule
}

// New creates a chunker with the default rule set.
func New() *Service {
	return &Service{rules: DefaultRules}
}

// WithRules overrides the classification rules.
func (s *Service) WithRules(rules []Rule) *Service {
	if len(rules) > 0 {
		s.rules = rules
	}
	return s
}

// Split chunks a document's content. Consecutive lines of the same category
// accumulate into one chunk; a category change flushes the current chunk.
// A document with no non-empty lines yields zero chunks.
//
// Concatenating the returned chunks in position order reconstructs the
// document content up to whitespace normalization.
func (s *Service) Split(docID, content string) []domain.Chunk {
	var chunks []domain.Chunk

	var current []string
	currentType := domain.ChunkGeneral

	flush := func() {
		if len(current) == 0 {
			return
		}
		pos := len(chunks)
		chunks = append(chunks, domain.Chunk{
			ID:         fmt.Sprintf("%s#%d", docID, pos),
			DocumentID: docID,
			Content:    strings.Join(current, "\n"),
			Type:       currentType,
			Position:   pos,
		})
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineType := Classify(line, s.rules)
		if lineType != currentType {
			flush()
			currentType = lineType
		}
		current = append(current, line)
	}
	flush()

	return chunks
}
