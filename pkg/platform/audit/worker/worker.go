package worker

import (
	"context"
	"log/slog"
	"sync/atomic"

	audit "leadscout/pkg/platform/audit"
)

// Worker consumes audit events from a channel and forwards them to a sink.
// A failed append is logged and counted; the worker keeps consuming.
type Worker struct {
	sink   audit.Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
	failed atomic.Int64
}

func NewWorker(sink audit.Sink, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run returns nil once inbox is closed and drained, or ctx.Err() when ctx
// ends first.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.sink.Append(ctx, event); err != nil {
				w.failed.Add(1)
				w.logger.ErrorContext(ctx, "failed to append audit event",
					"action", event.Action,
					"tenant_id", event.TenantID.String(),
					"request_id", event.RequestID,
					"error", err,
				)
			}
		}
	}
}

// Failed reports how many events could not be appended.
func (w *Worker) Failed() int64 {
	return w.failed.Load()
}
