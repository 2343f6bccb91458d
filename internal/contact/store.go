package contact

import (
	"context"

	"leadscout/internal/identity/ports"
	id "leadscout/pkg/domain"
)

// Store is the contact persistence used by the server: the identity
// pipeline's port plus listing for operators.
type Store interface {
	ports.ContactStore
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*Contact, error)
}

var (
	_ Store = (*InMemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
