package service

import (
	"context"

	"leadscout/internal/identity/models"
	"leadscout/internal/identity/session"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/requestcontext"
)

// Toggle flips the selection of one review item.
func (s *Service) Toggle(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID, index int) (*session.Snapshot, error) {
	snap, err := s.sessions.Update(ctx, tenantID, sessionID, func(sess *session.Session) error {
		return sess.Toggle(index, s.clock())
	})
	return snap, translateStoreErr(err)
}

// SelectAll selects every item that is not a duplicate.
func (s *Service) SelectAll(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID) (*session.Snapshot, error) {
	snap, err := s.sessions.Update(ctx, tenantID, sessionID, func(sess *session.Session) error {
		return sess.SelectAll(s.clock())
	})
	return snap, translateStoreErr(err)
}

func (s *Service) ClearSelection(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID) (*session.Snapshot, error) {
	snap, err := s.sessions.Update(ctx, tenantID, sessionID, func(sess *session.Session) error {
		return sess.ClearSelection(s.clock())
	})
	return snap, translateStoreErr(err)
}

// Import creates contacts for the selected items and finishes the session.
// With nothing selected no store call is made and the session stays in
// review.
func (s *Service) Import(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID) (*models.ImportResult, error) {
	var selected []models.CandidateToken
	_, err := s.sessions.Update(ctx, tenantID, sessionID, func(sess *session.Session) error {
		var err error
		selected, err = sess.BeginImport(s.clock())
		return err
	})
	if err != nil {
		return nil, translateStoreErr(err)
	}

	result, err := s.importer.Execute(ctx, tenantID, selected)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "import failed")
	}

	_, err = s.sessions.Update(requestcontext.Detach(ctx), tenantID, sessionID, func(sess *session.Session) error {
		return sess.CompleteImport(result, s.clock())
	})
	if err != nil {
		return nil, translateStoreErr(err)
	}

	s.logger.InfoContext(ctx, "import finished",
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", tenantID.String(),
		"session_id", sessionID.String(),
		"attempted", result.Attempted,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result.Clone(), nil
}
