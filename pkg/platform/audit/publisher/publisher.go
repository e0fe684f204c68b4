// Package publisher delivers audit events to a store, optionally through an
// in-process buffer, with a circuit breaker in front of the store.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	audit "inspectready/pkg/platform/audit"
	"inspectready/pkg/platform/circuit"
)

var (
	// ErrBufferFull is returned by Emit when the async buffer has no room.
	ErrBufferFull = errors.New("audit buffer full")
	// ErrCircuitOpen is returned in sync mode while the store is tripped.
	ErrCircuitOpen = errors.New("audit store circuit open")
	// ErrClosed is returned by Emit after Close.
	ErrClosed = errors.New("audit publisher closed")
)

// Publisher fans audit events into a Store. In sync mode Emit blocks on the
// store; with WithAsyncBuffer a single worker drains a bounded queue and Emit
// never blocks.
type Publisher struct {
	store        audit.Store
	logger       *slog.Logger
	metrics      *Metrics
	breaker      *circuit.Breaker
	writeTimeout time.Duration

	buffer chan audit.Event
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables async delivery with a queue of size n.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.buffer = make(chan audit.Event, n)
		}
	}
}

// WithLogger sets a logger for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Publisher) {
		p.breaker = b
	}
}

// WithWriteTimeout bounds each async store write.
func WithWriteTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.writeTimeout = d
		}
	}
}

// NewPublisher creates a publisher over store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:        store,
		logger:       slog.Default(),
		breaker:      circuit.New("audit_store", circuit.WithFailureThreshold(5), circuit.WithCooldown(30*time.Second)),
		writeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit stamps the timestamp and category, then delivers the event.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.metrics.incDropped("closed")
		return ErrClosed
	}

	if p.buffer == nil {
		return p.write(ctx, event)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.buffer <- event:
		return nil
	default:
		p.metrics.incDropped("buffer_full")
		return ErrBufferFull
	}
}

// Close stops accepting events and drains the buffer.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	if p.buffer != nil {
		close(p.buffer)
	}
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.buffer {
		ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
		if err := p.write(ctx, event); err != nil && !errors.Is(err, ErrCircuitOpen) {
			p.logger.Warn("audit event dropped", "action", event.Action, "error", err)
		}
		cancel()
	}
}

func (p *Publisher) write(ctx context.Context, event audit.Event) error {
	if !p.breaker.Allow() {
		p.metrics.incDropped("circuit_open")
		return ErrCircuitOpen
	}

	if err := p.store.Append(ctx, event); err != nil {
		p.metrics.incPersistFailures()
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.metrics.setCircuitOpen(true)
			p.logger.ErrorContext(ctx, "audit store circuit opened", "error", err)
		}
		return err
	}

	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.metrics.setCircuitOpen(false)
		p.logger.InfoContext(ctx, "audit store circuit closed")
	}
	p.metrics.incEmitted(string(event.Category))
	return nil
}
