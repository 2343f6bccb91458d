package contact

import (
	"context"
	"slices"
	"strings"
	"sync"

	"leadscout/internal/identity/models"
	id "leadscout/pkg/domain"
	"leadscout/pkg/platform/sentinel"
	"leadscout/pkg/requestcontext"
)

// InMemoryStore keeps contacts per tenant, keyed by normalized value.
type InMemoryStore struct {
	mu       sync.RWMutex
	contacts map[id.TenantID]map[string]*Contact
}

// NewInMemoryStore creates an empty contact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{contacts: make(map[id.TenantID]map[string]*Contact)}
}

// LookupByNormalizedValues returns the IDs of existing contacts whose
// normalized value is in values.
func (s *InMemoryStore) LookupByNormalizedValues(_ context.Context, tenantID id.TenantID, values []string) (map[string]id.ContactID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]id.ContactID)
	byValue := s.contacts[tenantID]
	for _, v := range values {
		key := strings.ToLower(v)
		if c, ok := byValue[key]; ok {
			found[key] = c.ID
		}
	}
	return found, nil
}

// CreateContact stores token as a new contact. Returns sentinel.ErrConflict
// if the tenant already has a contact with the same normalized value.
func (s *InMemoryStore) CreateContact(ctx context.Context, tenantID id.TenantID, token models.CandidateToken) (id.ContactID, error) {
	c := New(tenantID, token, requestcontext.Now(ctx))

	s.mu.Lock()
	defer s.mu.Unlock()

	byValue, ok := s.contacts[tenantID]
	if !ok {
		byValue = make(map[string]*Contact)
		s.contacts[tenantID] = byValue
	}
	if _, exists := byValue[c.NormalizedValue]; exists {
		return id.ContactID{}, sentinel.ErrConflict
	}
	byValue[c.NormalizedValue] = c
	return c.ID, nil
}

// ListByTenant returns the tenant's contacts, oldest first.
func (s *InMemoryStore) ListByTenant(_ context.Context, tenantID id.TenantID) ([]*Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Contact, 0, len(s.contacts[tenantID]))
	for _, c := range s.contacts[tenantID] {
		cp := *c
		out = append(out, &cp)
	}
	slices.SortStableFunc(out, func(a, b *Contact) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.NormalizedValue, b.NormalizedValue)
	})
	return out, nil
}
