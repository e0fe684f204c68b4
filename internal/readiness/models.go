// Package readiness turns an evidence snapshot into a readiness report.
//
// Everything here is a pure function of (catalog, snapshot, now). Evaluating
// the same inputs twice yields identical results.
package readiness

import (
	"time"

	"inspectready/internal/catalog"
	"inspectready/internal/evidence"
	id "inspectready/pkg/domain"
)

// Status is the evidence state of a single requirement.
type Status string

const (
	StatusMissing      Status = "missing"
	StatusValid        Status = "valid"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

// CategoryStatus summarises how much of a category is met.
type CategoryStatus string

const (
	CategoryComplete CategoryStatus = "complete"
	CategoryPartial  CategoryStatus = "partial"
	CategoryMissing  CategoryStatus = "missing"
)

// Evaluation is the outcome of matching one requirement against a snapshot.
type Evaluation struct {
	RequirementID      string
	Name               string
	Category           catalog.Category
	Required           bool
	EvidenceType       catalog.EvidenceType
	Found              bool
	MatchedDescription string
	ExpiryDate         *time.Time
	Status             Status
}

// Met reports whether the evaluation counts towards completion. Expiring
// evidence still counts; expired evidence does not.
func (e Evaluation) Met() bool {
	return e.Found && e.Status != StatusExpired
}

// StarRating is a 0-5 band with its inspector-facing label.
type StarRating struct {
	Stars int
	Label string
}

// CategorySummary aggregates the evaluations of one category.
type CategorySummary struct {
	Category       catalog.Category
	Requirements   []Evaluation
	TotalCount     int
	MetCount       int
	ExpiringCount  int
	ExpiredCount   int
	CompletionRate int
	Status         CategoryStatus
	Rating         StarRating
}

// OverallSummary rolls every category up into a single score.
type OverallSummary struct {
	TotalRequirements     int
	CompletedRequirements int
	OverallCompletionRate int
	ExpiringCount         int
	ExpiredCount          int
	Rating                StarRating
}

// IncidentCounters are informational totals shown alongside the score.
type IncidentCounters struct {
	Total            int
	RIDDORReportable int
	RIDDORReported   int
	InWindow         int
}

// Report is the assembled readiness report for one site.
type Report struct {
	ID             id.ReportID
	SiteID         id.SiteID
	CompanyID      id.CompanyID
	GeneratedAt    time.Time
	CatalogVersion string
	Overall        OverallSummary
	Categories     []CategorySummary
	Incidents      IncidentCounters
	FailedSources  []evidence.SourceFailure
}

// Partial reports whether any evidence source was unavailable.
func (r *Report) Partial() bool {
	return len(r.FailedSources) > 0
}
