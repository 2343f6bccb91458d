// Package middleware holds the HTTP middleware chain of the leadscout server:
// request IDs, panic recovery, access logging, tenant authentication and the
// admin token guard.
package middleware

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "leadscout/pkg/domain"
	"leadscout/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the tenant and operator
// it was issued for.
type TokenValidator interface {
	ValidateTenantToken(tokenString string) (id.TenantID, id.UserID, error)
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if errDesc == "" {
		_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s"}`, errCode))
		return
	}
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireTenant rejects requests without a valid bearer token and injects the
// token's tenant and user into the request context.
func RequireTenant(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			tenantID, userID, err := validator.ValidateTenantToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithTenantID(ctx, tenantID)
			ctx = requestcontext.WithUserID(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdminToken guards operator-only routes with a shared secret header.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Admin-Token")
			// constant-time comparison
			if expectedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "admin token required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
