package session

import (
	"context"
	"sync"
	"time"

	id "leadscout/pkg/domain"
	"leadscout/pkg/platform/sentinel"
)

// InMemory keeps sessions for their lifetime only; nothing is persisted.
type InMemory struct {
	mu       sync.Mutex
	sessions map[id.SessionID]*Session
}

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[id.SessionID]*Session)}
}

func (s *InMemory) Create(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return sentinel.ErrConflict
	}
	s.sessions[session.ID] = session.clone()
	return nil
}

// Get returns a snapshot. A session owned by another tenant is reported as
// not found.
func (s *InMemory) Get(_ context.Context, tenantID id.TenantID, sessionID id.SessionID) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok || session.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	return session.Snapshot(), nil
}

// Update applies fn to a copy of the session and stores the copy only when
// fn succeeds, so a failed mutation leaves the session untouched.
func (s *InMemory) Update(_ context.Context, tenantID id.TenantID, sessionID id.SessionID, fn func(*Session) error) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok || session.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	working := session.clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	s.sessions[sessionID] = working
	return working.Snapshot(), nil
}

// DeleteIdleSince removes sessions not updated since cutoff and returns how
// many were removed.
func (s *InMemory) DeleteIdleSince(_ context.Context, cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}

func (s *InMemory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
