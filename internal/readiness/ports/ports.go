//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks
package ports

import (
	"context"
	"time"

	"inspectready/internal/evidence"
	"inspectready/internal/readiness"
	id "inspectready/pkg/domain"
	"inspectready/pkg/platform/audit"
)

// EvidenceLoader fetches the evidence snapshot for one site.
type EvidenceLoader interface {
	Load(ctx context.Context, siteID id.SiteID, companyID id.CompanyID, now time.Time) (*evidence.Snapshot, error)
}

// ReportCache stores assembled reports between requests.
type ReportCache interface {
	Get(ctx context.Context, companyID id.CompanyID, siteID id.SiteID) (*readiness.Report, bool, error)
	Set(ctx context.Context, report *readiness.Report) error
}

// AuditPort defines the interface for emitting audit events.
// This matches the audit.Emitter interface but is defined here
// to maintain hexagonal boundaries.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
