package feature

import (
	"context"
	"maps"
	"sync"

	id "leadscout/pkg/domain"
)

// InMemoryStore keeps flags in a map for single-instance deployments and tests.
type InMemoryStore struct {
	mu    sync.RWMutex
	flags map[id.TenantID]Flags
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{flags: make(map[id.TenantID]Flags)}
}

func (s *InMemoryStore) List(_ context.Context, tenantID id.TenantID) (Flags, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Flags, len(s.flags[tenantID]))
	maps.Copy(out, s.flags[tenantID])
	return out, nil
}

func (s *InMemoryStore) Set(_ context.Context, tenantID id.TenantID, flags Flags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.flags[tenantID]
	if !ok {
		current = make(Flags, len(flags))
		s.flags[tenantID] = current
	}
	maps.Copy(current, flags)
	return nil
}
