package audit

import (
	"context"
	"time"

	id "inspectready/pkg/domain"
)

// EventCategory classifies audit events by retention and routing needs.
type EventCategory string

const (
	// CategoryCompliance covers events an inspector or auditor may ask for
	// later, such as which readiness score was shown for a site and when.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine activity that may be sampled.
	CategoryOperations EventCategory = "operations"
)

// AuditEvent names an action recorded in the audit trail.
type AuditEvent string

const (
	EventReportGenerated AuditEvent = "readiness_report_generated"
	EventReportCached    AuditEvent = "readiness_report_served_from_cache"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventReportGenerated: CategoryCompliance,
	EventReportCached:    CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is emitted by the readiness service to record what was shown for a
// site. It is transport-agnostic; stores decide how to serialize it.
type Event struct {
	Category       EventCategory `json:"category"`
	Timestamp      time.Time     `json:"timestamp"`
	Action         string        `json:"action"`
	UserID         id.UserID     `json:"user_id"`
	CompanyID      id.CompanyID  `json:"company_id"`
	SiteID         id.SiteID     `json:"site_id"`
	ReportID       id.ReportID   `json:"report_id"`
	RequestID      string        `json:"request_id,omitempty"`
	CatalogVersion string        `json:"catalog_version,omitempty"`
	CompletionRate int           `json:"completion_rate"`
	Stars          int           `json:"stars"`
	// FailedSources lists evidence sources that degraded to empty for this
	// report. Non-empty means the score was computed on partial evidence.
	FailedSources []string `json:"failed_sources,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is the port domain services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
