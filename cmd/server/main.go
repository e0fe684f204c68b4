package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"inspectready/internal/evidence"
	evmetrics "inspectready/internal/evidence/metrics"
	"inspectready/internal/platform/config"
	"inspectready/internal/platform/httpserver"
	"inspectready/internal/platform/logger"
	"inspectready/internal/platform/tracing"
	ratelimitmw "inspectready/internal/ratelimit/middleware"
	ratelimitstore "inspectready/internal/ratelimit/store"
	"inspectready/internal/readiness/handler"
	rmetrics "inspectready/internal/readiness/metrics"
	"inspectready/internal/readiness/service"
	"inspectready/internal/readiness/warmer"
)

// main wires dependencies and runs the HTTP server until SIGINT/SIGTERM.
// Business logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.UsingDevSigningKey() {
		log.Warn("using development JWT signing key; set JWT_SIGNING_KEY outside local development")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error("tracing shutdown failed", "error", err)
		}
	}()

	reg := prometheus.DefaultRegisterer
	infra := &infrastructure{log: log}
	defer infra.Close()

	stores, err := infra.evidenceStores(ctx, cfg)
	if err != nil {
		return err
	}
	loader := evidence.New(stores,
		evidence.WithLogger(log),
		evidence.WithMetrics(evmetrics.New(reg)),
		evidence.WithSourceTimeout(cfg.EvidenceSourceTimeout),
	)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(rmetrics.New(reg)),
	}
	reportCache, err := infra.reportCache(ctx, cfg)
	if err != nil {
		return err
	}
	if reportCache != nil {
		opts = append(opts, service.WithCache(reportCache))
	}
	auditor, err := infra.auditPublisher(ctx, cfg, reg)
	if err != nil {
		return err
	}
	opts = append(opts, service.WithAuditor(auditor))
	svc := service.New(loader, opts...)

	if len(cfg.WarmSites) > 0 {
		targets, err := warmer.ParseTargets(cfg.WarmSites)
		if err != nil {
			return err
		}
		warmOpts := []warmer.Option{warmer.WithLogger(log)}
		if infra.memoryCache != nil {
			warmOpts = append(warmOpts, warmer.WithSweeper(infra.memoryCache))
		}
		w := warmer.New(svc, targets, warmOpts...)
		if err := w.Start(cfg.WarmSchedule); err != nil {
			return err
		}
		defer w.Stop(context.Background())
	}

	var handlerOpts []handler.Option
	if infra.auditHistory != nil {
		handlerOpts = append(handlerOpts, handler.WithHistory(infra.auditHistory))
	}
	limiter := ratelimitstore.NewInMemory()
	go limiter.SweepEvery(ctx, 5*time.Minute, ratelimitmw.DefaultWindow)

	router := newRouter(cfg, log, reg, svc, limiter, infra, handlerOpts...)
	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting inspectready", "addr", cfg.Addr, "evidence_backend", infra.backend)
	return httpserver.Run(ctx, srv, log)
}
