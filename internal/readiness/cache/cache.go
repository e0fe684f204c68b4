// Package cache holds assembled readiness reports between requests.
//
// Entries are keyed by company, site and catalog version, so a catalog
// revision never serves a report scored against the previous table.
package cache

import (
	"context"
	"sync"
	"time"

	"inspectready/internal/catalog"
	"inspectready/internal/readiness"
	id "inspectready/pkg/domain"
)

// Key returns the cache key for a site's report.
func Key(companyID id.CompanyID, siteID id.SiteID) string {
	return "readiness:" + catalog.Version + ":" + companyID.String() + ":" + siteID.String()
}

type entry struct {
	report    readiness.Report
	expiresAt time.Time
}

// Memory is an in-process TTL cache used when Redis is not configured.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewMemory creates a cache whose entries live for ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *Memory) Get(_ context.Context, companyID id.CompanyID, siteID id.SiteID) (*readiness.Report, bool, error) {
	key := Key(companyID, siteID)

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	report := e.report
	return &report, true, nil
}

func (c *Memory) Set(_ context.Context, report *readiness.Report) error {
	if report == nil || c.ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[Key(report.CompanyID, report.SiteID)] = entry{
		report:    *report,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// Sweep drops expired entries. The warmer calls it on each tick.
func (c *Memory) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}
