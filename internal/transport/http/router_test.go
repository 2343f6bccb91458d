package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "leadscout/internal/jwt_token"
	id "leadscout/pkg/domain"
	"leadscout/pkg/requestcontext"
	"leadscout/pkg/testutil"
)

const adminToken = "admin-secret"

type echoTenant struct{}

func (echoTenant) Register(r chi.Router) {
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, requestcontext.TenantID(r.Context()).String())
	})
}

type adminPing struct{}

func (adminPing) Register(r chi.Router) {
	r.Get("/admin/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func newTestRouter(health map[string]HealthCheck) (http.Handler, *jwttoken.JWTService) {
	jwt := jwttoken.NewJWTService("0123456789abcdef0123", "leadscout")
	return NewRouter(Deps{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tokens:     jwt,
		AdminToken: adminToken,
		Public:     []Registrar{echoTenant{}},
		Admin:      []Registrar{adminPing{}},
		Health:     health,
	}), jwt
}

func TestPublicRoutesRequireTenantToken(t *testing.T) {
	router, jwt := newTestRouter(nil)
	tenantID := id.TenantID(uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	token, err := jwt.GenerateAccessToken(tenantID, id.UserID(uuid.New()), time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tenantID.String(), rec.Body.String())
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	router, _ := newTestRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("X-Admin-Token", adminToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHealth(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		router, _ := newTestRouter(map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp healthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Checks["postgres"])
	})

	t.Run("failing check degrades", func(t *testing.T) {
		router, _ := newTestRouter(map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp healthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "unavailable", resp.Checks["redis"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterScaffold(t *testing.T) {
	testutil.Given(t, "the HTTP router", func(t *testing.T) {
		router, _ := newTestRouter(nil)

		testutil.When(t, "calling an unknown route", func(t *testing.T) {
			rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/v2/unknown"))

			testutil.Then(t, "it should respond with not found", func(t *testing.T) {
				testutil.AssertStatus(t, rec, http.StatusNotFound)
			})
		})

		testutil.When(t, "posting to /health", func(t *testing.T) {
			rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/health"))

			testutil.Then(t, "it should respond with method not allowed", func(t *testing.T) {
				testutil.AssertStatus(t, rec, http.StatusMethodNotAllowed)
			})
		})

		testutil.When(t, "calling a tenant route with a malformed bearer token", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodGet, "/v1/whoami")
			req.Header.Set("Authorization", "Bearer not-a-jwt")
			rec := testutil.DoRequest(router, req)

			testutil.Then(t, "it should respond with unauthorized", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rec, http.StatusUnauthorized, "unauthorized")
			})
		})
	})
}
