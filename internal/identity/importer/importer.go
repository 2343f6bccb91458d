// Package importer creates contacts for the selected review items. Items are
// independent: each is submitted on its own and a failure never aborts the
// rest of the batch.
package importer

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"leadscout/internal/identity/metrics"
	"leadscout/internal/identity/models"
	"leadscout/internal/identity/ports"
	"leadscout/pkg/attrs"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/platform/audit"
	"leadscout/pkg/platform/sentinel"
	"leadscout/pkg/requestcontext"
)

const DefaultConcurrency = 4

const (
	reasonConflict    = "contact already exists"
	reasonStoreFailed = "failed to create contact"
)

var tracer = otel.Tracer("leadscout/internal/identity/importer")

type Executor struct {
	store          ports.ContactCreator
	concurrency    int
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher ports.AuditPublisher
}

type Option func(*Executor)

// WithConcurrency bounds the number of in-flight store calls.
func WithConcurrency(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(e *Executor) {
		e.auditPublisher = publisher
	}
}

func New(store ports.ContactCreator, opts ...Option) *Executor {
	e := &Executor{store: store, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute submits every selected candidate and returns once all of them have
// resolved. Per-item failures are reported in the result, in input order; an
// error is returned only when nothing is selected.
func (e *Executor) Execute(ctx context.Context, tenantID id.TenantID, selected []models.CandidateToken) (*models.ImportResult, error) {
	if len(selected) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "no candidates selected for import")
	}

	ctx, span := tracer.Start(ctx, "identity.import", trace.WithAttributes(
		attribute.String("tenant_id", tenantID.String()),
		attribute.Int("import.attempted", len(selected)),
	))
	defer span.End()

	reasons := make([]string, len(selected))
	failed := make([]bool, len(selected))

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)
	for i, token := range selected {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failed[i], reasons[i] = true, err.Error()
				e.metrics.IncrementImport("failed")
				return nil
			}
			contactID, err := e.store.CreateContact(ctx, tenantID, token)
			if err != nil {
				failed[i], reasons[i] = true, e.reasonFor(ctx, err)
				e.metrics.IncrementImport("failed")
				e.logAudit(ctx, audit.EventImportFailed, tenantID,
					"subject", token.NormalizedValue(),
					"reason", reasons[i],
				)
				return nil
			}
			e.metrics.IncrementImport("succeeded")
			e.logAudit(ctx, audit.EventContactImported, tenantID,
				"subject", token.NormalizedValue(),
				"contact_id", contactID.String(),
				"kind", string(token.Kind),
			)
			return nil
		})
	}
	_ = g.Wait()

	result := &models.ImportResult{Attempted: len(selected), Errors: []models.ImportError{}}
	for i, token := range selected {
		if failed[i] {
			result.Failed++
			result.Errors = append(result.Errors, models.ImportError{Candidate: token, Reason: reasons[i]})
			continue
		}
		result.Succeeded++
	}

	span.SetAttributes(
		attribute.Int("import.succeeded", result.Succeeded),
		attribute.Int("import.failed", result.Failed),
	)
	return result, nil
}

func (e *Executor) reasonFor(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return reasonConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err.Error()
	}
	if e.logger != nil {
		e.logger.WarnContext(ctx, "contact creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	var de *dErrors.Error
	if errors.As(err, &de) && de.Code != dErrors.CodeInternal {
		return de.Message
	}
	return reasonStoreFailed
}

func (e *Executor) logAudit(ctx context.Context, event audit.AuditEvent, tenantID id.TenantID, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event), "log_type", "audit", "tenant_id", tenantID.String())
	if e.logger != nil {
		e.logger.InfoContext(ctx, string(event), args...)
	}
	if e.auditPublisher == nil {
		return
	}
	_ = e.auditPublisher.Emit(requestcontext.Detach(ctx), audit.Event{
		Timestamp: requestcontext.Now(ctx),
		TenantID:  tenantID,
		UserID:    requestcontext.UserID(ctx),
		Subject:   attrs.ExtractString(attributes, "subject"),
		Action:    string(event),
		Reason:    attrs.ExtractString(attributes, "reason"),
		RequestID: requestID,
	})
}
