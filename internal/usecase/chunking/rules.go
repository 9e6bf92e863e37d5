package chunking

import (
	"strings"

	"github.com/kaira-health/medkb/internal/domain"
)

// Rule classifies a line by case-insensitive substring cues. Rules are
// evaluated top-to-bottom; the first cue hit wins.
type Rule struct {
	Cues []string
	Type domain.ChunkType
}

// DefaultRules is the ordered classification rule set. Order is part of the
// contract: an earlier rule's cue shadows later ones, so a "Blood pressure"
// line lands in lab_result via "blood" while a "BP" line lands in
// vital_signs.
var DefaultRules = []Rule{
	{
		Cues: []string{"medication", "prescription", "mg", "dosage"},
		Type: domain.ChunkMedication,
	},
	{
		Cues: []string{"diagnosis", "condition", "syndrome"},
		Type: domain.ChunkDiagnosis,
	},
	{
		Cues: []string{"blood", "urine", "lab", "glucose", "cholesterol"},
		Type: domain.ChunkLabResult,
	},
	{
		Cues: []string{"blood pressure", "heart rate", "temperature", "weight", "bp"},
		Type: domain.ChunkVitalSigns,
	},
	{
		Cues: []string{"surgery", "procedure", "treatment", "therapy"},
		Type: domain.ChunkProcedure,
	},
}

// Classify returns the chunk type for a line, falling through to general.
func Classify(line string, rules []Rule) domain.ChunkType {
	lower := strings.ToLower(line)
	for _, rule := range rules {
		for _, cue := range rule.Cues {
			if strings.Contains(lower, cue) {
				return rule.Type
			}
		}
	}
	return domain.ChunkGeneral
}
