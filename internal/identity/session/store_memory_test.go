package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	id "leadscout/pkg/domain"
	"leadscout/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemorySuite) TestTenantScoping() {
	tenantID := id.TenantID(uuid.New())
	sess := New(tenantID, t0)
	s.Require().NoError(s.store.Create(s.ctx, sess))

	s.Run("owner sees the session", func() {
		snap, err := s.store.Get(s.ctx, tenantID, sess.ID)
		s.Require().NoError(err)
		s.Equal(StateIdle, snap.State)
	})

	s.Run("other tenant gets not found", func() {
		other := id.TenantID(uuid.New())
		_, err := s.store.Get(s.ctx, other, sess.ID)
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.Update(s.ctx, other, sess.ID, func(*Session) error { return nil })
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("duplicate id conflicts", func() {
		s.ErrorIs(s.store.Create(s.ctx, sess), sentinel.ErrConflict)
	})
}

func (s *InMemorySuite) TestUpdateIsAtomic() {
	tenantID := id.TenantID(uuid.New())
	sess := New(tenantID, t0)
	s.Require().NoError(s.store.Create(s.ctx, sess))

	_, err := s.store.Update(s.ctx, tenantID, sess.ID, func(se *Session) error {
		if _, err := se.BeginExtraction(t0); err != nil {
			return err
		}
		return errors.New("abort")
	})
	s.Require().Error(err)

	snap, err := s.store.Get(s.ctx, tenantID, sess.ID)
	s.Require().NoError(err)
	s.Equal(StateIdle, snap.State, "failed update is not applied")
	s.Zero(snap.Generation)

	snap, err = s.store.Update(s.ctx, tenantID, sess.ID, func(se *Session) error {
		_, err := se.BeginExtraction(t0)
		return err
	})
	s.Require().NoError(err)
	s.Equal(StateExtracting, snap.State)
	s.Equal(uint64(1), snap.Generation)
}

func (s *InMemorySuite) TestDeleteIdleSince() {
	tenantID := id.TenantID(uuid.New())
	stale := New(tenantID, t0)
	fresh := New(tenantID, t0.Add(time.Hour))
	s.Require().NoError(s.store.Create(s.ctx, stale))
	s.Require().NoError(s.store.Create(s.ctx, fresh))

	removed := s.store.DeleteIdleSince(s.ctx, t0.Add(30*time.Minute))

	s.Equal(1, removed)
	s.Equal(1, s.store.Len())
	_, err := s.store.Get(s.ctx, tenantID, stale.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
