package knowledge

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kaira-health/medkb/internal/domain"
)

// fileTables is the YAML shape of a reference-table override file.
// Any table left empty falls back to the built-in default.
type fileTables struct {
	Interactions []domain.DrugInteraction `yaml:"interactions"`
	Ranges       []domain.LabRange        `yaml:"ranges"`
	Guidelines   []domain.Guideline       `yaml:"guidelines"`
}

// Load reads reference tables from a YAML file, filling omitted tables from
// the built-in defaults.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read knowledge file %s: %w", path, err)
	}

	var tables fileTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse knowledge file %s: %w", path, err)
	}

	if err := validate(tables); err != nil {
		return nil, fmt.Errorf("invalid knowledge file %s: %w", path, err)
	}

	if tables.Interactions == nil {
		tables.Interactions = defaultInteractions
	}
	if tables.Ranges == nil {
		tables.Ranges = defaultRanges
	}
	if tables.Guidelines == nil {
		tables.Guidelines = defaultGuidelines
	}

	return NewStore(tables.Interactions, tables.Ranges, tables.Guidelines), nil
}

func validate(tables fileTables) error {
	for i, e := range tables.Interactions {
		if e.DrugA == "" || e.DrugB == "" {
			return fmt.Errorf("interactions[%d]: drug names are required", i)
		}
		switch e.Severity {
		case domain.SeverityMild, domain.SeverityModerate, domain.SeveritySevere, domain.SeverityContraindicated:
		default:
			return fmt.Errorf("interactions[%d]: unknown severity %q", i, e.Severity)
		}
	}
	for i, r := range tables.Ranges {
		if r.Parameter == "" {
			return fmt.Errorf("ranges[%d]: parameter is required", i)
		}
		if r.NormalMin > r.NormalMax {
			return fmt.Errorf("ranges[%d]: normal_min %v > normal_max %v", i, r.NormalMin, r.NormalMax)
		}
		switch r.Gender {
		case domain.GenderBoth, domain.GenderMale, domain.GenderFemale:
		default:
			return fmt.Errorf("ranges[%d]: unknown gender %q", i, r.Gender)
		}
	}
	for i, g := range tables.Guidelines {
		if g.Condition == "" || g.FirstLine == "" {
			return fmt.Errorf("guidelines[%d]: condition and first_line are required", i)
		}
	}
	return nil
}
