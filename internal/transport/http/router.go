// Package httptransport assembles the leadscout HTTP surface: public /v1
// routes scoped to the caller's tenant, operator /admin routes, health and
// metrics.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"leadscout/internal/platform/metrics"
	"leadscout/internal/platform/middleware"
	"leadscout/pkg/platform/httputil"
	"leadscout/pkg/platform/middleware/metadata"
	"leadscout/pkg/platform/middleware/requesttime"
)

// healthTimeout bounds each dependency check on /health.
const healthTimeout = 2 * time.Second

// Registrar mounts a handler's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Deps are the pieces NewRouter wires together.
type Deps struct {
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Tokens     middleware.TokenValidator
	AdminToken string

	// Public handlers register relative to /v1.
	Public []Registrar
	// Admin handlers register absolute /admin/... paths.
	Admin []Registrar

	Health map[string]HealthCheck
}

// NewRouter builds the chi router.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(d.Metrics.Middleware)

	r.Get("/health", healthHandler(d.Health))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequireTenant(d.Tokens, d.Logger))
		for _, h := range d.Public {
			h.Register(r)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(d.AdminToken, d.Logger))
		for _, h := range d.Admin {
			h.Register(r)
		}
	})

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
		status := http.StatusOK
		for _, name := range names {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			err := checks[name](ctx)
			cancel()
			if err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
