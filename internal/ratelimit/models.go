// Package ratelimit throttles report generation per company.
//
// Reports fan out to every evidence source, so a tenant hammering the
// endpoint (or a misconfigured dashboard polling with fresh=true) loads the
// source databases for everyone. Limits are counted over a sliding window.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is in whole seconds and only set when Allowed is false.
	RetryAfter int
}

// Store counts requests per key.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// CompanyKey builds the bucket key for a tenant.
func CompanyKey(companyID string) string {
	return "readiness:company:" + companyID
}
