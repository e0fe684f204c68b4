package evidence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"inspectready/internal/evidence/metrics"
	id "inspectready/pkg/domain"
	"inspectready/pkg/platform/sentinel"
)

const (
	// Window applied to completions and temperature logs.
	Window = 30 * 24 * time.Hour

	defaultSourceTimeout = 5 * time.Second
)

// Loader fetches an evidence snapshot from every configured store.
//
// Sources are fetched concurrently. A failing source degrades to an empty
// collection and is recorded on the snapshot; it never aborts the others.
type Loader struct {
	stores        Stores
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	sourceTimeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// WithSourceTimeout bounds each individual source fetch.
func WithSourceTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.sourceTimeout = d
		}
	}
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(l *Loader) {
		l.tracer = t
	}
}

// New creates a Loader over the given stores. Nil stores are reported as
// not-configured failures.
func New(stores Stores, opts ...Option) *Loader {
	l := &Loader{
		stores:        stores,
		logger:        slog.Default(),
		tracer:        otel.Tracer("inspectready/evidence"),
		sourceTimeout: defaultSourceTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches every source for the site and company as of now.
//
// The site must belong to companyID; otherwise Load returns ErrSiteNotFound
// without touching any source. If ctx is cancelled before all sources settle,
// Load returns ctx.Err() and the partially gathered collections are discarded.
func (l *Loader) Load(ctx context.Context, siteID id.SiteID, companyID id.CompanyID, now time.Time) (*Snapshot, error) {
	ctx, span := l.tracer.Start(ctx, "evidence.Load", trace.WithAttributes(
		attribute.String("site_id", siteID.String()),
		attribute.String("company_id", companyID.String()),
	))
	defer span.End()

	if err := l.checkOwner(ctx, siteID, companyID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "site ownership check failed")
		return nil, err
	}

	start := time.Now()
	snap := &Snapshot{
		SiteID:      siteID,
		CompanyID:   companyID,
		LoadedAt:    now,
		WindowStart: now.Add(-Window),
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	fail := func(err *SourceError) {
		mu.Lock()
		snap.Failures = append(snap.Failures, SourceFailure{
			Source:   err.Source,
			Category: err.Category,
			Message:  err.Underlying.Error(),
		})
		mu.Unlock()
	}

	s := l.stores
	fetch(ctx, l, &g, fail, SourceDocuments, s.Documents != nil, &snap.Documents,
		func(ctx context.Context) ([]Document, error) {
			return s.Documents.ListActiveDocuments(ctx, companyID)
		})
	fetch(ctx, l, &g, fail, SourceCOSHH, s.COSHH != nil, &snap.COSHHSheets,
		func(ctx context.Context) ([]COSHHSheet, error) {
			return s.COSHH.ListActiveSheets(ctx, companyID)
		})
	fetch(ctx, l, &g, fail, SourceAssessments, s.Assessments != nil, &snap.Assessments,
		func(ctx context.Context) ([]Assessment, error) {
			return s.Assessments.ListPublishedAssessments(ctx, companyID)
		})
	fetch(ctx, l, &g, fail, SourceTraining, s.Training != nil, &snap.Training,
		func(ctx context.Context) ([]TrainingRecord, error) {
			return s.Training.ListTrainingRecords(ctx, siteID)
		})
	fetch(ctx, l, &g, fail, SourceAppliances, s.Appliances != nil, &snap.Appliances,
		func(ctx context.Context) ([]Appliance, error) {
			items, err := s.Appliances.ListAppliances(ctx, siteID, companyID)
			if err != nil {
				return nil, err
			}
			return l.guardTenant(ctx, items, siteID, companyID), nil
		})
	fetch(ctx, l, &g, fail, SourceTemplates, s.Tasks != nil, &snap.Templates,
		func(ctx context.Context) ([]TaskTemplate, error) {
			return s.Tasks.ListActiveTemplates(ctx, companyID)
		})
	fetch(ctx, l, &g, fail, SourceCompletions, s.Tasks != nil, &snap.Completions,
		func(ctx context.Context) ([]TaskCompletion, error) {
			return s.Tasks.ListCompletions(ctx, siteID, snap.WindowStart)
		})
	fetch(ctx, l, &g, fail, SourceTemperatureLogs, s.TemperatureLogs != nil, &snap.TemperatureLogs,
		func(ctx context.Context) ([]TemperatureLog, error) {
			return s.TemperatureLogs.ListLogs(ctx, siteID, snap.WindowStart)
		})
	fetch(ctx, l, &g, fail, SourceIncidents, s.Incidents != nil, &snap.Incidents,
		func(ctx context.Context) ([]Incident, error) {
			return s.Incidents.ListIncidents(ctx, siteID)
		})

	// Every fetch swallows its own error
	_ = g.Wait()
	l.metrics.ObserveLoadLatency(time.Since(start))

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, "evaluation abandoned")
		return nil, err
	}

	sortFailures(snap.Failures)
	span.SetAttributes(attribute.Int("failed_sources", len(snap.Failures)))
	return snap, nil
}

// checkOwner fails closed: a missing directory, an unknown site and a site of
// another company all stop the load.
func (l *Loader) checkOwner(ctx context.Context, siteID id.SiteID, companyID id.CompanyID) error {
	if l.stores.Sites == nil {
		return ErrSiteDirectoryNotConfigured
	}

	lctx, cancel := context.WithTimeout(ctx, l.sourceTimeout)
	defer cancel()

	owner, err := l.stores.Sites.SiteCompany(lctx, siteID)
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, sentinel.ErrNotFound):
		return ErrSiteNotFound
	case err != nil:
		return fmt.Errorf("resolve site owner: %w", err)
	case owner != companyID:
		l.logger.WarnContext(ctx, "site requested outside its company",
			"site_id", siteID,
			"company_id", companyID,
		)
		return ErrSiteNotFound
	}
	return nil
}

// fetch runs one source under its own timeout. Results are written to dst only
// on success; a failure leaves dst as an empty, non-nil slice.
func fetch[T any](
	ctx context.Context,
	l *Loader,
	g *errgroup.Group,
	fail func(*SourceError),
	source Source,
	configured bool,
	dst *[]T,
	fn func(context.Context) ([]T, error),
) {
	*dst = []T{}
	g.Go(func() error {
		if !configured {
			l.recordFailure(ctx, fail, newSourceError(source, ErrSourceNotConfigured))
			return nil
		}

		fctx, cancel := context.WithTimeout(ctx, l.sourceTimeout)
		defer cancel()

		start := time.Now()
		items, err := fn(fctx)
		l.metrics.ObserveSourceLatency(string(source), time.Since(start))

		if err == nil && fctx.Err() != nil {
			err = fctx.Err()
		}
		if err != nil {
			l.recordFailure(ctx, fail, newSourceError(source, err))
			return nil
		}
		if items != nil {
			*dst = items
		}
		return nil
	})
}

func (l *Loader) recordFailure(ctx context.Context, fail func(*SourceError), err *SourceError) {
	l.metrics.IncrementSourceFailure(string(err.Source), string(err.Category))
	l.logger.WarnContext(ctx, "evidence source unavailable, continuing with empty collection",
		"source", err.Source,
		"category", err.Category,
		"error", err.Underlying,
	)
	fail(err)
}

// guardTenant drops appliance records that do not belong to the requested
// site and company.
func (l *Loader) guardTenant(ctx context.Context, items []Appliance, siteID id.SiteID, companyID id.CompanyID) []Appliance {
	kept := make([]Appliance, 0, len(items))
	dropped := 0
	for _, a := range items {
		if a.SiteID != siteID || a.CompanyID != companyID {
			dropped++
			l.logger.WarnContext(ctx, "dropping appliance record from another tenant",
				"appliance_id", a.ID,
				"requested_site_id", siteID,
				"requested_company_id", companyID,
				"record_site_id", a.SiteID,
				"record_company_id", a.CompanyID,
			)
			continue
		}
		kept = append(kept, a)
	}
	l.metrics.AddTenantMismatches(dropped)
	return kept
}

func sortFailures(failures []SourceFailure) {
	order := make(map[Source]int, len(AllSources()))
	for i, s := range AllSources() {
		order[s] = i
	}
	slices.SortStableFunc(failures, func(a, b SourceFailure) int {
		return order[a.Source] - order[b.Source]
	})
}
