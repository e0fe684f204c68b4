package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.EvidenceSourceTimeout)
	assert.Equal(t, 60*time.Second, cfg.ReportCacheTTL)
	assert.Equal(t, "inspectready.audit", cfg.Audit.Topic)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.True(t, cfg.UsingDevSigningKey())
	assert.Empty(t, cfg.Redis.URL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("INSPECTREADY_ADDR", ":9090")
	t.Setenv("REPORT_CACHE_TTL", "0s")
	t.Setenv("KAFKA_BROKERS", " k1:9092,k2:9092,k1:9092,")
	t.Setenv("WARM_SCHEDULE", "*/5 * * * *")
	t.Setenv("WARM_SITES", "a:b,c:d")
	t.Setenv("JWT_SIGNING_KEY", "real-key")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Zero(t, cfg.ReportCacheTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Audit.KafkaBrokers)
	assert.Equal(t, []string{"a:b", "c:d"}, cfg.WarmSites)
	assert.False(t, cfg.UsingDevSigningKey())
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unparseable duration", "EVIDENCE_SOURCE_TIMEOUT", "soon"},
		{"zero source timeout", "EVIDENCE_SOURCE_TIMEOUT", "0s"},
		{"negative cache ttl", "REPORT_CACHE_TTL", "-1s"},
		{"negative rate limit", "RATE_LIMIT_PER_MINUTE", "-1"},
		{"unknown log format", "LOG_FORMAT", "xml"},
		{"warm sites without schedule", "WARM_SITES", "a:b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
