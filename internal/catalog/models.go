// Package catalog holds the fixed requirement catalog a site is audited against.
//
// The catalog is data, not code: each Requirement carries a declarative MatchSpec
// that the readiness matcher interprets with a small closed set of strategies.
// Requirements returns a copy on every call; there is no runtime mutation.
package catalog

import (
	"fmt"
	"strings"
)

// Category groups requirements on the readiness report.
type Category string

const (
	CategoryFoodSafety   Category = "food_safety"
	CategoryHealthSafety Category = "health_safety"
	CategoryFire         Category = "fire_safety"
	CategoryTraining     Category = "training"
	CategoryCleaning     Category = "cleaning"
	CategoryEquipment    Category = "equipment"
	CategoryLegal        Category = "legal"
	CategoryCompliance   Category = "compliance"
)

var categoryLabels = map[Category]string{
	CategoryFoodSafety:   "Food Safety",
	CategoryHealthSafety: "Health & Safety",
	CategoryFire:         "Fire Safety",
	CategoryTraining:     "Training",
	CategoryCleaning:     "Cleaning",
	CategoryEquipment:    "Equipment",
	CategoryLegal:        "Legal",
	CategoryCompliance:   "General Compliance",
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display name used on inspector-facing reports.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// EvidenceType selects the matching strategy for a requirement.
type EvidenceType string

const (
	EvidenceDocument   EvidenceType = "document"
	EvidenceRecord     EvidenceType = "record"
	EvidenceTemplate   EvidenceType = "template"
	EvidenceCompletion EvidenceType = "completion"
	EvidenceTraining   EvidenceType = "training"
	EvidenceAssessment EvidenceType = "assessment"
)

// ParseEvidenceType parses a string into an EvidenceType, case-insensitive.
func ParseEvidenceType(s string) (EvidenceType, error) {
	t := EvidenceType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case EvidenceDocument, EvidenceRecord, EvidenceTemplate,
		EvidenceCompletion, EvidenceTraining, EvidenceAssessment:
		return t, nil
	default:
		return "", fmt.Errorf("invalid evidence type: %q", s)
	}
}

// RecordRule names one of the hand-coded record checks.
type RecordRule string

const (
	RecordTemperatureLogs     RecordRule = "temperature_logs"
	RecordIncidentLog         RecordRule = "incident_log"
	RecordRIDDORIncidents     RecordRule = "riddor_incidents"
	RecordApplianceTestLabels RecordRule = "appliance_test_labels"
)

// MatchSpec declares how evidence satisfies a requirement.
//
// Keywords are matched case-insensitively as substrings of the item's name,
// title or course. TagEquals is compared case-insensitively against the item's
// category or template type. Either one matching is enough.
type MatchSpec struct {
	Keywords      []string   `json:"keywords,omitempty"`
	TagEquals     string     `json:"tag_equals,omitempty"`
	Record        RecordRule `json:"record,omitempty"`
	AnyCOSHHSheet bool       `json:"any_coshh_sheet,omitempty"`
}

// Requirement is an immutable catalog entry.
type Requirement struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     Category     `json:"category"`
	Required     bool         `json:"required"`
	EvidenceType EvidenceType `json:"evidence_type"`
	Frequency    string       `json:"frequency,omitempty"`
	Match        MatchSpec    `json:"match"`
}
