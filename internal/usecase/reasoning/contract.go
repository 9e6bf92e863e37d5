package reasoning

import (
	"context"

	"github.com/kaira-health/medkb/internal/domain"
)

// Reference is the consumer contract for the knowledge reference store.
type Reference interface {
	Interaction(drugA, drugB string) (domain.DrugInteraction, bool)
	Range(parameter string, gender domain.Gender) (domain.LabRange, bool)
	Guideline(condition string) (domain.Guideline, bool)
}

// PairChecker is the optional oracle-backed secondary interaction check.
// Consulted only for pairs with no reference-table hit; a nil result means
// no known interaction.
type PairChecker interface {
	CheckPair(ctx context.Context, drugA, drugB string) (*domain.DrugInteraction, error)
}

// TextGenerator produces the free-text narrative. Optional.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Request is one reasoning-engine invocation.
type Request struct {
	Medications []string
	Conditions  []string
	Series      map[string][]domain.SeriesPoint
	Gender      domain.Gender
}
