package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"leadscout/internal/identity/classifier"
	"leadscout/internal/identity/models"
	"leadscout/internal/identity/ports"
	"leadscout/internal/identity/session"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/platform/audit"
	"leadscout/pkg/platform/sentinel"
	"leadscout/pkg/requestcontext"
)

// Progress checkpoints of a screenshot run. Recognition covers 0-80.
const (
	progressRecognized = 80
	progressClassified = 90
	progressDone       = 100
)

const (
	failureRecognition = "recognition failed"
	failureTimeout     = "recognition timed out"
	failureLookup      = "contact lookup failed"
)

// Create opens an idle session for the tenant.
func (s *Service) Create(ctx context.Context, tenantID id.TenantID) (*session.Snapshot, error) {
	if tenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "tenant is required")
	}
	sess := session.New(tenantID, s.clock())
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, translateStoreErr(err)
	}
	s.metrics.SetActiveSessions(s.sessions.Len())
	s.logger.InfoContext(ctx, "extraction session created",
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", tenantID.String(),
		"session_id", sess.ID.String(),
	)
	return sess.Snapshot(), nil
}

// Get returns the tenant's session. Sessions of other tenants are not found.
func (s *Service) Get(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID) (*session.Snapshot, error) {
	snap, err := s.sessions.Get(ctx, tenantID, sessionID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return snap, nil
}

// Submit checks the feature gate and the image, then starts a new run. The
// session only moves to extracting once both checks pass. A submit while a
// run is in flight supersedes that run.
func (s *Service) Submit(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID, image []byte) (*Ticket, error) {
	enabled, err := s.gate.IsEnabled(ctx, tenantID, ports.CapabilityScreenshotImport)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "feature gate unavailable")
	}
	if !enabled {
		s.metrics.IncrementGateDenial()
		return nil, dErrors.New(dErrors.CodeForbidden, "screenshot import is not enabled for this tenant")
	}

	info, err := s.screenshot.ValidateImage(image)
	if err != nil {
		return nil, err
	}

	var generation uint64
	snap, err := s.sessions.Update(ctx, tenantID, sessionID, func(sess *session.Session) error {
		var err error
		generation, err = sess.BeginExtraction(s.clock())
		return err
	})
	if err != nil {
		return nil, translateStoreErr(err)
	}
	s.notify(sessionID, 0)

	s.logger.InfoContext(ctx, "screenshot submitted",
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", tenantID.String(),
		"session_id", sessionID.String(),
		"generation", generation,
		"format", info.Format,
		"bytes", info.Bytes,
	)
	return &Ticket{
		SessionID:  sessionID,
		TenantID:   tenantID,
		Generation: generation,
		Image:      info,
		Snapshot:   snap,
		data:       image,
	}, nil
}

// Run performs recognition, classification and deduplication for ticket and
// commits the review batch. When a newer run has started in the meantime
// the results are dropped and sentinel.ErrStale is returned.
func (s *Service) Run(ctx context.Context, ticket *Ticket) error {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "identity.extract", trace.WithAttributes(
		attribute.String("tenant_id", ticket.TenantID.String()),
		attribute.String("session_id", ticket.SessionID.String()),
		attribute.Int64("generation", int64(ticket.Generation)),
	))
	defer span.End()

	err := s.run(ctx, ticket)
	switch {
	case err == nil:
		s.metrics.ObserveExtraction("committed", time.Since(start))
	case errors.Is(err, sentinel.ErrStale):
		s.metrics.ObserveExtraction("stale", time.Since(start))
		span.SetAttributes(attribute.Bool("stale", true))
		s.logger.InfoContext(ctx, "discarded superseded extraction result",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", ticket.SessionID.String(),
			"generation", ticket.Generation,
		)
	default:
		s.metrics.ObserveExtraction("failed", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *Service) run(ctx context.Context, ticket *Ticket) error {
	result, err := s.recognize(ctx, ticket)
	if err != nil {
		reason, code := failureRecognition, dErrors.CodeUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			reason, code = failureTimeout, dErrors.CodeTimeout
		}
		return s.fail(ctx, ticket, reason, dErrors.Wrap(err, code, reason))
	}
	s.advance(ctx, ticket, progressRecognized)

	units := s.screenshot.Units(result)
	classified := s.classifier.ClassifyUnits(units, classifier.ProfileScreenshot)
	for _, c := range classified {
		s.metrics.ObserveClassified(classifier.ProfileScreenshot.Name, c)
	}
	tokens := models.Tokens(classified)
	s.advance(ctx, ticket, progressClassified)

	items, err := s.dedup.Build(ctx, ticket.TenantID, tokens)
	if err != nil {
		return s.fail(ctx, ticket, failureLookup, err)
	}
	duplicates := 0
	for _, it := range items {
		if it.IsDuplicate {
			duplicates++
		}
	}

	_, err = s.sessions.Update(ctx, ticket.TenantID, ticket.SessionID, func(sess *session.Session) error {
		return sess.CompleteExtraction(ticket.Generation, items, s.clock())
	})
	if err != nil {
		return translateStoreErr(err)
	}
	s.metrics.AddDuplicates(duplicates)
	s.notify(ticket.SessionID, progressDone)

	s.logAudit(ctx, audit.EventExtractionCompleted, ticket.TenantID,
		"subject", ticket.SessionID.String(),
		"reason", fmt.Sprintf("%d lines, %d candidates, %d duplicates", len(units), len(items), duplicates),
	)
	return nil
}

// recognize calls the recognizer under the OCR timeout, forwarding progress
// when the recognizer reports it.
func (s *Service) recognize(ctx context.Context, ticket *Ticket) (ports.RecognitionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.ocrTimeout)
	defer cancel()

	if pr, ok := s.recognizer.(ports.ProgressRecognizer); ok {
		return pr.RecognizeWithProgress(ctx, ticket.data, func(percent int) {
			percent = min(max(percent, 0), 100)
			s.advance(ctx, ticket, percent*progressRecognized/100)
		})
	}
	return s.recognizer.Recognize(ctx, ticket.data)
}

// advance records progress for the run. Progress of a superseded run is
// silently ignored.
func (s *Service) advance(ctx context.Context, ticket *Ticket, percent int) {
	snap, err := s.sessions.Update(ctx, ticket.TenantID, ticket.SessionID, func(sess *session.Session) error {
		return sess.SetProgress(ticket.Generation, percent, s.clock())
	})
	if err != nil {
		return
	}
	s.notify(ticket.SessionID, snap.Progress)
}

// fail moves the run to the error state and returns cause, or ErrStale when
// the run was superseded.
func (s *Service) fail(ctx context.Context, ticket *Ticket, reason string, cause error) error {
	_, err := s.sessions.Update(ctx, ticket.TenantID, ticket.SessionID, func(sess *session.Session) error {
		return sess.FailExtraction(ticket.Generation, reason, s.clock())
	})
	if err != nil {
		return translateStoreErr(err)
	}
	s.logger.WarnContext(ctx, "extraction failed",
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", ticket.TenantID.String(),
		"session_id", ticket.SessionID.String(),
		"error", cause,
	)
	s.logAudit(ctx, audit.EventExtractionFailed, ticket.TenantID,
		"subject", ticket.SessionID.String(),
		"reason", reason,
	)
	return cause
}

// Extract submits image and runs the extraction synchronously.
func (s *Service) Extract(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID, image []byte) (*session.Snapshot, error) {
	ticket, err := s.Submit(ctx, tenantID, sessionID, image)
	if err != nil {
		return nil, err
	}
	if err := s.Run(ctx, ticket); err != nil {
		return nil, err
	}
	return s.Get(ctx, tenantID, sessionID)
}

func (s *Service) notify(sessionID id.SessionID, percent int) {
	for _, o := range s.observers {
		o(sessionID, percent)
	}
}
