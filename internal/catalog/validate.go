package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks a requirement table for the invariants the matcher relies on:
// unique IDs, known categories and evidence types, and a match spec that can
// select evidence for every non-document requirement.
func Validate(reqs []Requirement) error {
	var errs []error
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		if strings.TrimSpace(r.ID) == "" {
			errs = append(errs, fmt.Errorf("requirement %q: id is required", r.Name))
			continue
		}
		if _, dup := seen[r.ID]; dup {
			errs = append(errs, fmt.Errorf("requirement %s: duplicate id", r.ID))
		}
		seen[r.ID] = struct{}{}

		if strings.TrimSpace(r.Name) == "" {
			errs = append(errs, fmt.Errorf("requirement %s: name is required", r.ID))
		}
		if !r.Category.IsValid() {
			errs = append(errs, fmt.Errorf("requirement %s: unknown category %q", r.ID, r.Category))
		}
		if _, err := ParseEvidenceType(string(r.EvidenceType)); err != nil {
			errs = append(errs, fmt.Errorf("requirement %s: %w", r.ID, err))
			continue
		}
		if err := validateMatch(r); err != nil {
			errs = append(errs, fmt.Errorf("requirement %s: %w", r.ID, err))
		}
	}
	return errors.Join(errs...)
}

func validateMatch(r Requirement) error {
	m := r.Match
	if m.AnyCOSHHSheet {
		return nil
	}
	switch r.EvidenceType {
	case EvidenceDocument:
		return nil
	case EvidenceRecord:
		switch m.Record {
		case RecordTemperatureLogs, RecordIncidentLog, RecordRIDDORIncidents, RecordApplianceTestLabels:
			return nil
		case "":
			return errors.New("record requirement needs a record rule")
		default:
			return fmt.Errorf("unknown record rule %q", m.Record)
		}
	case EvidenceTraining:
		if len(m.Keywords) == 0 {
			return errors.New("training requirement needs keywords")
		}
	default:
		if len(m.Keywords) == 0 && m.TagEquals == "" {
			return fmt.Errorf("%s requirement needs keywords or a tag", r.EvidenceType)
		}
	}
	for _, k := range m.Keywords {
		if strings.TrimSpace(k) == "" {
			return errors.New("blank keyword")
		}
	}
	return nil
}
