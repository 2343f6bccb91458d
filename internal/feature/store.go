package feature

import (
	"context"

	id "leadscout/pkg/domain"
)

// Store persists explicitly set flags. Capabilities a tenant never set are
// absent from List.
type Store interface {
	List(ctx context.Context, tenantID id.TenantID) (Flags, error)
	Set(ctx context.Context, tenantID id.TenantID, flags Flags) error
}
