package evidence

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	id "inspectready/pkg/domain"
)

// SiteDirectory resolves the company that owns a site. Unknown sites return
// sentinel.ErrNotFound.
type SiteDirectory interface {
	SiteCompany(ctx context.Context, siteID id.SiteID) (id.CompanyID, error)
}

// DocumentStore lists a company's active documents.
type DocumentStore interface {
	ListActiveDocuments(ctx context.Context, companyID id.CompanyID) ([]Document, error)
}

// TrainingStore lists training bookings for a site.
type TrainingStore interface {
	ListTrainingRecords(ctx context.Context, siteID id.SiteID) ([]TrainingRecord, error)
}

// AssessmentStore lists a company's published risk assessments.
type AssessmentStore interface {
	ListPublishedAssessments(ctx context.Context, companyID id.CompanyID) ([]Assessment, error)
}

// TaskStore lists checklist templates and their completions.
type TaskStore interface {
	ListActiveTemplates(ctx context.Context, companyID id.CompanyID) ([]TaskTemplate, error)
	ListCompletions(ctx context.Context, siteID id.SiteID, windowStart time.Time) ([]TaskCompletion, error)
}

// TemperatureLogStore lists temperature readings recorded since windowStart.
type TemperatureLogStore interface {
	ListLogs(ctx context.Context, siteID id.SiteID, windowStart time.Time) ([]TemperatureLog, error)
}

// IncidentStore lists the full incident history for a site.
type IncidentStore interface {
	ListIncidents(ctx context.Context, siteID id.SiteID) ([]Incident, error)
}

// ApplianceStore lists PAT register entries. Implementations may scope the
// query loosely; the loader enforces the tenant match.
type ApplianceStore interface {
	ListAppliances(ctx context.Context, siteID id.SiteID, companyID id.CompanyID) ([]Appliance, error)
}

// COSHHStore lists a company's active COSHH sheets.
type COSHHStore interface {
	ListActiveSheets(ctx context.Context, companyID id.CompanyID) ([]COSHHSheet, error)
}

// Stores bundles every source the loader reads from.
type Stores struct {
	Sites           SiteDirectory
	Documents       DocumentStore
	Training        TrainingStore
	Assessments     AssessmentStore
	Tasks           TaskStore
	TemperatureLogs TemperatureLogStore
	Incidents       IncidentStore
	Appliances      ApplianceStore
	COSHH           COSHHStore
}
