// Package admin serves operator views over a tenant's audit trail and
// imported contacts.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leadscout/internal/contact"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/platform/audit"
	"leadscout/pkg/platform/audit/publisher"
	"leadscout/pkg/platform/httputil"
	"leadscout/pkg/requestcontext"
)

// AuditLister reads a tenant's audit events.
type AuditLister interface {
	List(ctx context.Context, tenantID id.TenantID) ([]audit.Event, error)
}

// ContactLister reads a tenant's contacts.
type ContactLister interface {
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*contact.Contact, error)
}

type Handler struct {
	audit    AuditLister
	contacts ContactLister
	logger   *slog.Logger
}

func New(audit AuditLister, contacts ContactLister, logger *slog.Logger) *Handler {
	return &Handler{audit: audit, contacts: contacts, logger: logger}
}

// Register mounts the routes. The caller applies the admin token guard.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/tenants/{tenant_id}/audit", h.HandleListAudit)
	r.Get("/admin/tenants/{tenant_id}/contacts", h.HandleListContacts)
}

// HandleListAudit handles GET /admin/tenants/{tenant_id}/audit.
func (h *Handler) HandleListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenant_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := h.audit.List(ctx, tenantID)
	if errors.Is(err, publisher.ErrNotQueryable) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "audit trail is not queryable with the configured sink"))
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit events",
			"request_id", requestcontext.RequestID(ctx),
			"tenant_id", tenantID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromEvents(tenantID.String(), events))
}

// HandleListContacts handles GET /admin/tenants/{tenant_id}/contacts.
func (h *Handler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenant_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	contacts, err := h.contacts.ListByTenant(ctx, tenantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list contacts",
			"request_id", requestcontext.RequestID(ctx),
			"tenant_id", tenantID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, fromContacts(tenantID.String(), contacts))
}
