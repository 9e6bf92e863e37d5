// Package knowledge holds the static clinical reference tables consumed by
// the reasoning engine: drug-interaction pairs, gender-aware lab reference
// ranges, and condition-to-first-line-therapy guidelines. The tables are
// illustrative and pluggable, not a complete formulary.
package knowledge

import (
	"strings"

	"github.com/kaira-health/medkb/internal/domain"
)

// Store is an immutable set of reference tables. Safe for concurrent use.
type Store struct {
	interactions []domain.DrugInteraction
	ranges       []domain.LabRange
	guidelines   []domain.Guideline
}

// NewStore creates a store from explicit tables.
func NewStore(
	interactions []domain.DrugInteraction,
	ranges []domain.LabRange,
	guidelines []domain.Guideline,
) *Store {
	return &Store{
		interactions: interactions,
		ranges:       ranges,
		guidelines:   guidelines,
	}
}

// Default returns a store backed by the built-in illustrative tables.
func Default() *Store {
	return NewStore(defaultInteractions, defaultRanges, defaultGuidelines)
}

// Interaction looks up the entry matching an unordered drug pair.
// Matching is a case-insensitive substring test in either order, so
// "Warfarin Sodium 5mg" still hits the "warfarin" entry.
func (s *Store) Interaction(drugA, drugB string) (domain.DrugInteraction, bool) {
	a := strings.ToLower(strings.TrimSpace(drugA))
	b := strings.ToLower(strings.TrimSpace(drugB))
	if a == "" || b == "" {
		return domain.DrugInteraction{}, false
	}
	for _, e := range s.interactions {
		ea := strings.ToLower(e.DrugA)
		eb := strings.ToLower(e.DrugB)
		if (strings.Contains(a, ea) && strings.Contains(b, eb)) ||
			(strings.Contains(a, eb) && strings.Contains(b, ea)) {
			return e, true
		}
	}
	return domain.DrugInteraction{}, false
}

// Range returns the reference range for a parameter, preferring an entry
// scoped to the given gender over a "both" entry.
func (s *Store) Range(parameter string, gender domain.Gender) (domain.LabRange, bool) {
	p := strings.ToLower(strings.TrimSpace(parameter))
	if p == "" {
		return domain.LabRange{}, false
	}

	var both domain.LabRange
	var haveBoth bool
	for _, e := range s.ranges {
		if strings.ToLower(e.Parameter) != p {
			continue
		}
		switch e.Gender {
		case gender:
			return e, true
		case domain.GenderBoth:
			both, haveBoth = e, true
		}
	}
	return both, haveBoth
}

// Guideline returns the first-line-therapy entry whose condition matches
// a case-insensitive substring of the given condition name.
func (s *Store) Guideline(condition string) (domain.Guideline, bool) {
	c := strings.ToLower(strings.TrimSpace(condition))
	if c == "" {
		return domain.Guideline{}, false
	}
	for _, e := range s.guidelines {
		if strings.Contains(c, strings.ToLower(e.Condition)) {
			return e, true
		}
	}
	return domain.Guideline{}, false
}

// Interactions returns the interaction table (for diagnostics/export).
func (s *Store) Interactions() []domain.DrugInteraction { return s.interactions }

// Ranges returns the lab range table.
func (s *Store) Ranges() []domain.LabRange { return s.ranges }

// Guidelines returns the guideline table.
func (s *Store) Guidelines() []domain.Guideline { return s.guidelines }
