// Package service orchestrates readiness report generation: cache lookup,
// evidence loading, scoring and the audit trail.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inspectready/internal/catalog"
	"inspectready/internal/evidence"
	"inspectready/internal/readiness"
	"inspectready/internal/readiness/metrics"
	"inspectready/internal/readiness/ports"
	id "inspectready/pkg/domain"
	dErrors "inspectready/pkg/domain-errors"
	"inspectready/pkg/platform/audit"
	"inspectready/pkg/platform/sentinel"
	"inspectready/pkg/requestcontext"
)

// GenerateRequest identifies the site to score. Fresh bypasses the cache.
type GenerateRequest struct {
	SiteID    id.SiteID
	CompanyID id.CompanyID
	Fresh     bool
}

// Service produces readiness reports.
type Service struct {
	loader       ports.EvidenceLoader
	cache        ports.ReportCache
	auditor      ports.AuditPort
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	requirements []catalog.Requirement
	version      string
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables report caching.
func WithCache(c ports.ReportCache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithAuditor sets the audit sink.
func WithAuditor(a ports.AuditPort) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithRequirements scores against reqs instead of the built-in catalog.
func WithRequirements(reqs []catalog.Requirement, version string) Option {
	return func(s *Service) {
		s.requirements = reqs
		s.version = version
	}
}

// New creates a Service over loader, scoring against the built-in catalog.
func New(loader ports.EvidenceLoader, opts ...Option) *Service {
	s := &Service{
		loader:       loader,
		logger:       slog.Default(),
		tracer:       otel.Tracer("inspectready/readiness"),
		requirements: catalog.Requirements(),
		version:      catalog.Version,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Requirements returns the requirement table reports are scored against.
func (s *Service) Requirements() []catalog.Requirement {
	out := make([]catalog.Requirement, len(s.requirements))
	copy(out, s.requirements)
	return out
}

// GenerateReport scores one site. Sources that fail to load are reported on
// the result, not as an error. The call fails for a cancelled caller, a
// missing site or company, or a site the company does not own.
func (s *Service) GenerateReport(ctx context.Context, req GenerateRequest) (*readiness.Report, error) {
	if req.SiteID.IsNil() || req.CompanyID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "cannot evaluate readiness: site and company are required")
	}

	ctx, span := s.tracer.Start(ctx, "readiness.GenerateReport", trace.WithAttributes(
		attribute.String("site_id", req.SiteID.String()),
		attribute.String("company_id", req.CompanyID.String()),
		attribute.Bool("fresh", req.Fresh),
	))
	defer span.End()

	start := time.Now()
	now := requestcontext.Now(ctx)

	if !req.Fresh {
		if report, ok := s.cached(ctx, req); ok {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			s.emit(ctx, audit.EventReportCached, report)
			return report, nil
		}
	}

	snap, err := s.loader.Load(ctx, req.SiteID, req.CompanyID, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evidence load aborted")
		return nil, loadError(err)
	}

	report := readiness.BuildReport(s.requirements, snap, now)
	report.ID = id.NewReportID()
	report.CatalogVersion = s.version

	// Partial reports are not cached so the next request retries the
	// failed sources.
	if s.cache != nil && !report.Partial() {
		if err := s.cache.Set(ctx, &report); err != nil {
			s.logger.WarnContext(ctx, "failed to cache readiness report",
				"site_id", req.SiteID,
				"error", err,
			)
		}
	}

	s.metrics.IncrementReport(report.Overall.Rating.Stars, report.Partial())
	s.metrics.ObserveGenerateLatency(time.Since(start))
	span.SetAttributes(
		attribute.Int("completion_rate", report.Overall.OverallCompletionRate),
		attribute.Int("stars", report.Overall.Rating.Stars),
		attribute.Int("failed_sources", len(report.FailedSources)),
	)
	s.emit(ctx, audit.EventReportGenerated, &report)

	s.logger.InfoContext(ctx, "readiness report generated",
		"request_id", requestcontext.RequestID(ctx),
		"report_id", report.ID,
		"site_id", report.SiteID,
		"company_id", report.CompanyID,
		"completion_rate", report.Overall.OverallCompletionRate,
		"stars", report.Overall.Rating.Stars,
		"partial", report.Partial(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &report, nil
}

func (s *Service) cached(ctx context.Context, req GenerateRequest) (*readiness.Report, bool) {
	if s.cache == nil {
		return nil, false
	}
	report, ok, err := s.cache.Get(ctx, req.CompanyID, req.SiteID)
	switch {
	case err != nil:
		s.metrics.IncrementCacheLookup("error")
		s.logger.WarnContext(ctx, "report cache lookup failed",
			"site_id", req.SiteID,
			"error", err,
		)
		return nil, false
	case !ok:
		s.metrics.IncrementCacheLookup("miss")
		return nil, false
	default:
		s.metrics.IncrementCacheLookup("hit")
		return report, true
	}
}

// emit records the report in the audit trail. Audit delivery never fails the
// read; the publisher counts and logs its own drops.
func (s *Service) emit(ctx context.Context, action audit.AuditEvent, report *readiness.Report) {
	if s.auditor == nil {
		return
	}
	failed := make([]string, 0, len(report.FailedSources))
	for _, f := range report.FailedSources {
		failed = append(failed, string(f.Source))
	}
	event := audit.Event{
		Action:         string(action),
		UserID:         requestcontext.UserID(ctx),
		CompanyID:      report.CompanyID,
		SiteID:         report.SiteID,
		ReportID:       report.ID,
		RequestID:      requestcontext.RequestID(ctx),
		CatalogVersion: report.CatalogVersion,
		CompletionRate: report.Overall.OverallCompletionRate,
		Stars:          report.Overall.Rating.Stars,
		FailedSources:  failed,
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", action,
			"report_id", report.ID,
			"error", err,
		)
	}
}

func loadError(err error) error {
	switch {
	case errors.Is(err, evidence.ErrSiteNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "site not found")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "evidence store unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "evidence loading timed out")
	case errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request cancelled while loading evidence")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load evidence")
	}
}
