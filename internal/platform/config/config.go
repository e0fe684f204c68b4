package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	pstrings "inspectready/pkg/platform/strings"
)

// DevJWTSigningKey is used when JWT_SIGNING_KEY is unset. It must be
// overridden outside local development.
const DevJWTSigningKey = "dev-secret-key-change-in-production"

// Server captures process-level configuration.
type Server struct {
	Addr      string `env:"INSPECTREADY_ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	JWTSigningKey string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"inspectready"`
	JWTAudience   string        `env:"JWT_AUDIENCE" envDefault:"inspectready-api"`
	JWTLeeway     time.Duration `env:"JWT_LEEWAY" envDefault:"30s"`

	// Evidence sources. DATABASE_URL wins over FIXTURES_PATH; with neither,
	// the service starts over an empty in-memory store.
	DatabaseURL           string        `env:"DATABASE_URL"`
	FixturesPath          string        `env:"FIXTURES_PATH"`
	EvidenceSourceTimeout time.Duration `env:"EVIDENCE_SOURCE_TIMEOUT" envDefault:"5s"`

	ReportCacheTTL time.Duration `env:"REPORT_CACHE_TTL" envDefault:"60s"`
	// RateLimitPerMinute caps readiness requests per company. Zero disables.
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	Redis          RedisConfig

	Audit AuditConfig

	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	WarmSchedule string   `env:"WARM_SCHEDULE"`
	WarmSites    []string `env:"WARM_SITES" envSeparator:","`
}

// RedisConfig configures the report cache connection. An empty URL selects
// the in-process cache.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// AuditConfig selects where report audit events go. Empty brokers keep
// events in memory.
type AuditConfig struct {
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic        string   `env:"AUDIT_TOPIC" envDefault:"inspectready.audit"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.WarmSites = pstrings.DedupeAndTrim(cfg.WarmSites)
	cfg.Audit.KafkaBrokers = pstrings.DedupeAndTrim(cfg.Audit.KafkaBrokers)
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c Server) Validate() error {
	if c.EvidenceSourceTimeout <= 0 {
		return fmt.Errorf("EVIDENCE_SOURCE_TIMEOUT must be positive")
	}
	if c.ReportCacheTTL < 0 {
		return fmt.Errorf("REPORT_CACHE_TTL must not be negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if len(c.WarmSites) > 0 && strings.TrimSpace(c.WarmSchedule) == "" {
		return fmt.Errorf("WARM_SITES requires WARM_SCHEDULE")
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// UsingDevSigningKey reports whether the built-in development key is active.
func (c Server) UsingDevSigningKey() bool {
	return c.JWTSigningKey == DevJWTSigningKey
}
