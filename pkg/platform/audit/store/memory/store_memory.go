package memory

import (
	"context"
	"slices"
	"sync"

	id "inspectready/pkg/domain"
	audit "inspectready/pkg/platform/audit"
)

// DefaultPerSiteLimit bounds how many events are retained for one site.
const DefaultPerSiteLimit = 200

// InMemoryStore keeps the most recent audit events per site. It is the default
// sink when no Kafka brokers are configured and backs the report history
// endpoint in that mode.
type InMemoryStore struct {
	mu      sync.RWMutex
	events  map[id.SiteID][]audit.Event
	perSite int
}

type Option func(*InMemoryStore)

// WithPerSiteLimit overrides DefaultPerSiteLimit. Non-positive values are ignored.
func WithPerSiteLimit(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.perSite = n
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		events:  make(map[id.SiteID][]audit.Event),
		perSite: DefaultPerSiteLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append records event, evicting the site's oldest event once the limit is hit.
func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := append(s.events[event.SiteID], event)
	if over := len(events) - s.perSite; over > 0 {
		events = slices.Delete(events, 0, over)
	}
	s.events[event.SiteID] = events
	return nil
}

// ListBySite returns a site's retained events in append order.
func (s *InMemoryStore) ListBySite(_ context.Context, siteID id.SiteID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events[siteID]), nil
}
