// Package fallback routes audit events to a secondary sink while the primary
// sink keeps failing.
package fallback

import (
	"context"
	"errors"
	"log/slog"

	audit "leadscout/pkg/platform/audit"
	"leadscout/pkg/platform/circuit"
)

type Sink struct {
	primary   audit.Sink
	secondary audit.Sink
	breaker   *circuit.Breaker
	logger    *slog.Logger
}

type Option func(*Sink)

func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Sink) {
		s.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

func New(primary, secondary audit.Sink, opts ...Option) *Sink {
	s := &Sink{
		primary:   primary,
		secondary: secondary,
		breaker:   circuit.New("audit"),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append tries the primary on every call and writes any event it rejects to
// the secondary, whether or not the circuit has opened yet. A run of primary
// successes closes the circuit again.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	err := s.primary.Append(ctx, event)
	if err == nil {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.logger.InfoContext(ctx, "audit sink recovered", "breaker", s.breaker.Name())
		}
		return nil
	}

	if _, change := s.breaker.RecordFailure(); change.Opened {
		s.logger.WarnContext(ctx, "audit sink failing, routing events to fallback",
			"breaker", s.breaker.Name(),
			"error", err,
		)
	}
	if serr := s.secondary.Append(ctx, event); serr != nil {
		return errors.Join(err, serr)
	}
	return nil
}

// Degraded reports whether events are currently going to the secondary.
func (s *Sink) Degraded() bool {
	return s.breaker.IsOpen()
}
