package main

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"inspectready/internal/evidence"
	"inspectready/internal/evidence/store"
	"inspectready/internal/platform/config"
	"inspectready/internal/platform/postgres"
	platformredis "inspectready/internal/platform/redis"
	"inspectready/internal/readiness/cache"
	"inspectready/internal/readiness/ports"
	"inspectready/pkg/platform/audit"
	"inspectready/pkg/platform/audit/publisher"
	"inspectready/pkg/platform/audit/store/kafka"
	"inspectready/pkg/platform/audit/store/memory"
)

const auditBufferSize = 1024

// infrastructure owns external connections and closes them in reverse order.
type infrastructure struct {
	log     *slog.Logger
	backend string

	db          *sql.DB
	redis       *platformredis.Client
	memoryCache *cache.Memory
	kafka       *kafka.Store
	publisher   *publisher.Publisher

	// auditHistory is set when audit events stay in process.
	auditHistory *memory.InMemoryStore
}

// evidenceStores picks PostgreSQL, YAML fixtures or an empty in-memory store.
func (i *infrastructure) evidenceStores(ctx context.Context, cfg config.Server) (evidence.Stores, error) {
	switch {
	case cfg.DatabaseURL != "":
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return evidence.Stores{}, err
		}
		i.db = db
		if err := store.Migrate(ctx, db); err != nil {
			return evidence.Stores{}, err
		}
		i.backend = "postgres"
		return store.NewPostgres(db).Stores(), nil
	case cfg.FixturesPath != "":
		mem, err := store.LoadFixtures(cfg.FixturesPath, time.Now(), i.log)
		if err != nil {
			return evidence.Stores{}, err
		}
		i.backend = "fixtures"
		return mem.Stores(), nil
	default:
		i.backend = "memory"
		return store.NewInMemory().Stores(), nil
	}
}

// reportCache returns nil when caching is disabled.
func (i *infrastructure) reportCache(ctx context.Context, cfg config.Server) (ports.ReportCache, error) {
	if cfg.ReportCacheTTL <= 0 {
		return nil, nil
	}
	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client != nil {
		i.redis = client
		return cache.NewRedis(client.Client, cfg.ReportCacheTTL), nil
	}
	i.memoryCache = cache.NewMemory(cfg.ReportCacheTTL)
	return i.memoryCache, nil
}

func (i *infrastructure) auditPublisher(ctx context.Context, cfg config.Server, reg prometheus.Registerer) (*publisher.Publisher, error) {
	var sink audit.Store
	if len(cfg.Audit.KafkaBrokers) == 0 {
		i.auditHistory = memory.NewInMemoryStore()
		sink = i.auditHistory
	} else {
		ks, err := kafka.New(cfg.Audit.KafkaBrokers, cfg.Audit.Topic)
		if err != nil {
			return nil, err
		}
		i.kafka = ks
		if err := ks.EnsureTopic(ctx, 1, 1); err != nil {
			i.log.WarnContext(ctx, "could not ensure audit topic", "topic", cfg.Audit.Topic, "error", err)
		}
		sink = ks
	}
	i.publisher = publisher.NewPublisher(sink,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(i.log),
		publisher.WithMetrics(publisher.NewMetrics(reg)),
	)
	return i.publisher, nil
}

// Ping checks every configured dependency.
func (i *infrastructure) Ping(ctx context.Context) map[string]error {
	checks := make(map[string]error)
	if i.db != nil {
		checks["postgres"] = i.db.PingContext(ctx)
	}
	if i.redis != nil {
		checks["redis"] = i.redis.Health(ctx)
	}
	if i.kafka != nil {
		checks["kafka"] = i.kafka.Ping(ctx)
	}
	return checks
}

func (i *infrastructure) Close() {
	if i.publisher != nil {
		_ = i.publisher.Close()
	}
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			i.log.Error("redis close failed", "error", err)
		}
	}
	if i.db != nil {
		if err := i.db.Close(); err != nil {
			i.log.Error("postgres close failed", "error", err)
		}
	}
}
