package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "inspectready/pkg/domain"
	audit "inspectready/pkg/platform/audit"
	"inspectready/pkg/platform/audit/store/memory"
	"inspectready/pkg/platform/circuit"
)

type failingStore struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *failingStore) Append(context.Context, audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *failingStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func reportEvent(site id.SiteID) audit.Event {
	return audit.Event{
		SiteID: site,
		Action: string(audit.EventReportGenerated),
	}
}

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	site := id.SiteID(uuid.New())
	require.NoError(t, pub.Emit(context.Background(), reportEvent(site)))

	events, err := store.ListBySite(context.Background(), site)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventReportGenerated), events[0].Action)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category, "category derived from action")
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	site := id.SiteID(uuid.New())
	for range 10 {
		require.NoError(t, pub.Emit(context.Background(), reportEvent(site)))
	}
	require.NoError(t, pub.Close())

	events, err := store.ListBySite(context.Background(), site)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(1))
	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close(), "close is idempotent")

	err := pub.Emit(context.Background(), reportEvent(id.SiteID(uuid.New())))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPublisher_BufferFullDropsWithoutBlocking(t *testing.T) {
	block := make(chan struct{})
	store := &blockingStore{release: block}
	m := NewMetrics(prometheus.NewRegistry())
	pub := NewPublisher(store, WithAsyncBuffer(1), WithMetrics(m))

	var dropped int
	for range 10 {
		if err := pub.Emit(context.Background(), reportEvent(id.SiteID(uuid.New()))); errors.Is(err, ErrBufferFull) {
			dropped++
		}
	}
	close(block)
	require.NoError(t, pub.Close())

	assert.Positive(t, dropped)
	assert.Equal(t, float64(dropped), testutil.ToFloat64(m.Dropped.WithLabelValues("buffer_full")))
}

type blockingStore struct {
	release chan struct{}
}

func (s *blockingStore) Append(ctx context.Context, _ audit.Event) error {
	<-s.release
	return nil
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	site := id.SiteID(uuid.New())
	before := time.Now()
	require.NoError(t, pub.Emit(context.Background(), reportEvent(site)))
	after := time.Now()

	events, err := store.ListBySite(context.Background(), site)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.Before(before))
	assert.False(t, events[0].Timestamp.After(after))
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	site := id.SiteID(uuid.New())
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	event := reportEvent(site)
	event.Timestamp = at
	require.NoError(t, pub.Emit(context.Background(), event))

	events, err := store.ListBySite(context.Background(), site)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, at, events[0].Timestamp)
}

func TestPublisher_CircuitOpensOnRepeatedFailures(t *testing.T) {
	store := &failingStore{err: errors.New("broker unreachable")}
	m := NewMetrics(prometheus.NewRegistry())
	pub := NewPublisher(store,
		WithMetrics(m),
		WithBreaker(circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))),
	)
	defer pub.Close()

	ctx := context.Background()
	site := id.SiteID(uuid.New())
	assert.Error(t, pub.Emit(ctx, reportEvent(site)))
	assert.Error(t, pub.Emit(ctx, reportEvent(site)))

	err := pub.Emit(ctx, reportEvent(site))
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, store.Calls(), "open circuit skips the store")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CircuitBreakerState))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PersistFailures))
}

func TestPublisher_CancelledContextInAsyncMode(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(1))
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.Emit(ctx, reportEvent(id.SiteID(uuid.New())))
	assert.ErrorIs(t, err, context.Canceled)
}
