// Package handler exposes the admin API for per-tenant capability flags.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"leadscout/internal/feature"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/platform/httputil"
	"leadscout/pkg/requestcontext"
)

// Service defines the flag operations used by the admin API.
type Service interface {
	List(ctx context.Context, tenantID id.TenantID) (feature.Flags, error)
	Set(ctx context.Context, tenantID id.TenantID, capability feature.Capability, enabled bool) error
}

// Handler serves /admin/tenants/{tenant_id}/features.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the routes. The caller applies the admin token guard.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/tenants/{tenant_id}/features", h.HandleList)
	r.Get("/admin/tenants/{tenant_id}/features/{capability}", h.HandleGet)
	r.Put("/admin/tenants/{tenant_id}/features/{capability}", h.HandleSet)
}

// HandleList handles GET /admin/tenants/{tenant_id}/features.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenant_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	flags, err := h.service.List(ctx, tenantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list feature flags",
			"request_id", requestcontext.RequestID(ctx),
			"tenant_id", tenantID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromFlags(tenantID, flags))
}

// HandleGet handles GET /admin/tenants/{tenant_id}/features/{capability}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, capability, ok := parseScope(w, r)
	if !ok {
		return
	}
	flags, err := h.service.List(ctx, tenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FlagResponse{Capability: string(capability), Enabled: flags[capability]})
}

// HandleSet handles PUT /admin/tenants/{tenant_id}/features/{capability}.
func (h *Handler) HandleSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	tenantID, capability, ok := parseScope(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetFlagRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.Set(ctx, tenantID, capability, *req.Enabled); err != nil {
		h.logger.ErrorContext(ctx, "failed to set feature flag",
			"request_id", requestID,
			"tenant_id", tenantID.String(),
			"capability", string(capability),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FlagResponse{Capability: string(capability), Enabled: *req.Enabled})
}

func parseScope(w http.ResponseWriter, r *http.Request) (id.TenantID, feature.Capability, bool) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenant_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.TenantID{}, "", false
	}
	capability, err := feature.ParseCapability(chi.URLParam(r, "capability"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.TenantID{}, "", false
	}
	return tenantID, capability, true
}

// SetFlagRequest is the body of PUT .../features/{capability}.
type SetFlagRequest struct {
	Enabled *bool `json:"enabled"`
}

func (r *SetFlagRequest) Validate() error {
	if r == nil || r.Enabled == nil {
		return dErrors.New(dErrors.CodeValidation, "enabled is required")
	}
	return nil
}

// FlagResponse reports one capability.
type FlagResponse struct {
	Capability string `json:"capability"`
	Enabled    bool   `json:"enabled"`
}

// FlagsResponse reports every known capability of a tenant.
type FlagsResponse struct {
	TenantID string         `json:"tenant_id"`
	Features []FlagResponse `json:"features"`
}

func FromFlags(tenantID id.TenantID, flags feature.Flags) FlagsResponse {
	out := FlagsResponse{TenantID: tenantID.String(), Features: make([]FlagResponse, 0, len(flags))}
	for capability, enabled := range flags {
		out.Features = append(out.Features, FlagResponse{Capability: string(capability), Enabled: enabled})
	}
	slices.SortFunc(out.Features, func(a, b FlagResponse) int {
		return strings.Compare(a.Capability, b.Capability)
	})
	return out
}
