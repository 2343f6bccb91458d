package testutil

import (
	"net/http"
	"time"

	id "leadscout/pkg/domain"
	"leadscout/pkg/requestcontext"
)

// WithTenant adds a tenant ID to the request context.
// This simulates what the tenant middleware does for authenticated requests.
// If tenantID is not a valid UUID, it will not be added to the context.
func WithTenant(req *http.Request, tenantID string) *http.Request {
	parsed, err := id.ParseTenantID(tenantID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithTenantID(req.Context(), parsed))
}

// WithOperator adds both tenant ID and operator (user) ID to the request context.
// Invalid IDs are silently ignored.
func WithOperator(req *http.Request, tenantID, userID string) *http.Request {
	ctx := req.Context()
	if parsed, err := id.ParseTenantID(tenantID); err == nil {
		ctx = requestcontext.WithTenantID(ctx, parsed)
	}
	if parsed, err := id.ParseUserID(userID); err == nil {
		ctx = requestcontext.WithUserID(ctx, parsed)
	}
	return req.WithContext(ctx)
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
