// Package warmer regenerates readiness reports for a fixed set of sites on a
// cron schedule so the first request of the day hits a warm cache.
package warmer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"inspectready/internal/readiness"
	"inspectready/internal/readiness/service"
	id "inspectready/pkg/domain"
)

// Target is one company:site pair to warm.
type Target struct {
	CompanyID id.CompanyID
	SiteID    id.SiteID
}

// ParseTargets parses "company:site" UUID pairs.
func ParseTargets(raw []string) ([]Target, error) {
	targets := make([]Target, 0, len(raw))
	for _, pair := range raw {
		companyRaw, siteRaw, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("warm target %q: want company:site", pair)
		}
		companyID, err := id.ParseCompanyID(companyRaw)
		if err != nil {
			return nil, fmt.Errorf("warm target %q: %w", pair, err)
		}
		siteID, err := id.ParseSiteID(siteRaw)
		if err != nil {
			return nil, fmt.Errorf("warm target %q: %w", pair, err)
		}
		targets = append(targets, Target{CompanyID: companyID, SiteID: siteID})
	}
	return targets, nil
}

// Generator produces a report; satisfied by *service.Service.
type Generator interface {
	GenerateReport(ctx context.Context, req service.GenerateRequest) (*readiness.Report, error)
}

// Sweeper drops expired cache entries.
type Sweeper interface {
	Sweep() int
}

// Warmer runs Generator for every target on each scheduled tick.
type Warmer struct {
	generator   Generator
	targets     []Target
	logger      *slog.Logger
	sweeper     Sweeper
	timeout     time.Duration
	concurrency int

	cron    *cron.Cron
	mu      sync.Mutex
	running atomic.Bool
}

// Option configures a Warmer.
type Option func(*Warmer)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Warmer) {
		w.logger = logger
	}
}

// WithSweeper sweeps an in-process cache before each run.
func WithSweeper(s Sweeper) Option {
	return func(w *Warmer) {
		w.sweeper = s
	}
}

// WithTimeout bounds one whole run.
func WithTimeout(d time.Duration) Option {
	return func(w *Warmer) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithConcurrency caps how many sites are generated at once.
func WithConcurrency(n int) Option {
	return func(w *Warmer) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

// New creates a Warmer. Schedules accept five fields or, with a leading
// seconds field, six; descriptors such as @hourly also work.
func New(generator Generator, targets []Target, opts ...Option) *Warmer {
	w := &Warmer{
		generator:   generator,
		targets:     targets,
		logger:      slog.Default(),
		timeout:     5 * time.Minute,
		concurrency: 4,
		cron: cron.New(cron.WithParser(cron.NewParser(
			cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
		))),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start schedules RunOnce and starts the cron loop.
func (w *Warmer) Start(schedule string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()
		w.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule warmer %q: %w", schedule, err)
	}
	w.cron.Start()
	w.logger.Info("report warmer started", "schedule", schedule, "targets", len(w.targets))
	return nil
}

// Stop halts scheduling and waits for a run in progress, or until ctx ends.
func (w *Warmer) Stop(ctx context.Context) {
	w.mu.Lock()
	done := w.cron.Stop()
	w.mu.Unlock()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce regenerates every target's report, bypassing the cache lookup so
// the cache is refreshed. Overlapping runs are skipped.
func (w *Warmer) RunOnce(ctx context.Context) (warmed, failed int) {
	if !w.running.CompareAndSwap(false, true) {
		w.logger.WarnContext(ctx, "report warmer still running, skipping tick")
		return 0, 0
	}
	defer w.running.Store(false)

	if w.sweeper != nil {
		if n := w.sweeper.Sweep(); n > 0 {
			w.logger.DebugContext(ctx, "swept expired reports", "count", n)
		}
	}

	start := time.Now()
	var ok, bad atomic.Int64
	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for _, t := range w.targets {
		g.Go(func() error {
			_, err := w.generator.GenerateReport(ctx, service.GenerateRequest{
				SiteID:    t.SiteID,
				CompanyID: t.CompanyID,
				Fresh:     true,
			})
			if err != nil {
				bad.Add(1)
				w.logger.WarnContext(ctx, "failed to warm readiness report",
					"site_id", t.SiteID,
					"company_id", t.CompanyID,
					"error", err,
				)
				return nil
			}
			ok.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	w.logger.InfoContext(ctx, "report warmer run complete",
		"warmed", ok.Load(),
		"failed", bad.Load(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return int(ok.Load()), int(bad.Load())
}
