// Package publisher emits audit events to a sink, either inline or through a
// bounded buffer drained by a background worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	id "leadscout/pkg/domain"
	audit "leadscout/pkg/platform/audit"
	"leadscout/pkg/platform/audit/worker"
	"leadscout/pkg/requestcontext"
)

var (
	ErrBufferFull   = errors.New("audit buffer full")
	ErrClosed       = errors.New("audit publisher closed")
	ErrNotQueryable = errors.New("audit sink does not support queries")
)

type Publisher struct {
	sink   audit.Sink
	logger *slog.Logger
	clock  func() time.Time

	bufferSize int
	mu         sync.RWMutex
	closed     bool
	buffer     chan audit.Event
	done       chan struct{}
}

type Option func(*Publisher)

// WithAsyncBuffer makes Emit non-blocking. Events beyond size in flight are
// rejected with ErrBufferFull.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.bufferSize = size
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithClock(clock func() time.Time) Option {
	return func(p *Publisher) {
		p.clock = clock
	}
}

func NewPublisher(sink audit.Sink, opts ...Option) *Publisher {
	p := &Publisher{sink: sink, logger: slog.Default(), clock: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.buffer = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		w := worker.NewWorker(sink, p.buffer, p.logger)
		go func() {
			defer close(p.done)
			_ = w.Run(context.Background())
		}()
	}
	return p
}

// Emit fills in the timestamp, category and client metadata when unset and
// hands the event to the sink.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = p.clock()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.Device == "" {
		event.Device = requestcontext.ClientDevice(ctx)
	}

	if p.buffer == nil {
		return p.sink.Append(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.buffer <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// List returns the tenant's events when the sink is queryable.
func (p *Publisher) List(ctx context.Context, tenantID id.TenantID) ([]audit.Event, error) {
	store, ok := p.sink.(audit.Store)
	if !ok {
		return nil, ErrNotQueryable
	}
	return store.ListByTenant(ctx, tenantID)
}

// Close stops accepting events and waits until buffered events are drained.
func (p *Publisher) Close() {
	if p.buffer == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.buffer)
	p.mu.Unlock()
	<-p.done
}
