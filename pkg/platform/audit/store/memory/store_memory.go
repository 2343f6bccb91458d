package memory

import (
	"context"
	"slices"
	"sync"

	id "leadscout/pkg/domain"
	audit "leadscout/pkg/platform/audit"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.TenantID][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.TenantID][]audit.Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.TenantID][]audit.Event)
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.TenantID] = append(s.events[event.TenantID], event)
	return nil
}

func (s *InMemoryStore) ListByTenant(_ context.Context, tenantID id.TenantID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[tenantID]...), nil
}

// ListRecent returns the most recent events across all tenants, newest
// last, capped at limit.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []audit.Event
	for _, events := range s.events {
		all = append(all, events...)
	}
	slices.SortStableFunc(all, func(a, b audit.Event) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}
