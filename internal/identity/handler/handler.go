package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"leadscout/internal/identity/adapters/dom"
	"leadscout/internal/identity/models"
	"leadscout/internal/identity/session"
	"leadscout/internal/identity/session/service"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/platform/httputil"
	"leadscout/pkg/platform/sentinel"
	"leadscout/pkg/requestcontext"
)

// DefaultMaxImageBytes bounds the multipart upload when no limit is configured.
const DefaultMaxImageBytes = 10 << 20

// multipartOverhead is the allowance for boundaries and part headers on top
// of the image itself.
const multipartOverhead = 64 << 10

// Service defines the extraction session operations exposed over HTTP.
type Service interface {
	Create(ctx context.Context, tenantID id.TenantID) (*session.Snapshot, error)
	Get(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID) (*session.Snapshot, error)
	Submit(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID, image []byte) (*service.Ticket, error)
	Run(ctx context.Context, ticket *service.Ticket) error
	Toggle(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID, index int) (*session.Snapshot, error)
	SelectAll(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID) (*session.Snapshot, error)
	ClearSelection(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID) (*session.Snapshot, error)
	Import(ctx context.Context, tenantID id.TenantID, sessionID id.SessionID) (*models.ImportResult, error)
	ExtractDOM(ctx context.Context, snapshot io.Reader) (*dom.Result, error)
}

// Handler wires extraction session endpoints to the session service.
type Handler struct {
	service       Service
	logger        *slog.Logger
	maxImageBytes int64
	spawn         func(func())
}

// Option configures a Handler.
type Option func(*Handler)

// WithMaxImageBytes bounds screenshot uploads.
func WithMaxImageBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxImageBytes = n
		}
	}
}

// New constructs an identity handler.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:       service,
		logger:        logger,
		maxImageBytes: DefaultMaxImageBytes,
		spawn:         func(f func()) { go f() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the identity endpoints. Callers are expected to have
// authenticated the tenant already.
func (h *Handler) Register(r chi.Router) {
	r.Route("/extraction-sessions", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Route("/{session_id}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Post("/image", h.HandleSubmitImage)
			r.Post("/items/{index}/toggle", h.HandleToggle)
			r.Post("/select-all", h.HandleSelectAll)
			r.Post("/clear-selection", h.HandleClearSelection)
			r.Post("/import", h.HandleImport)
		})
	})
	r.Post("/dom/display-name", h.HandleDOMDisplayName)
}

// HandleCreate handles POST /extraction-sessions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, ok := h.requireTenant(w, ctx)
	if !ok {
		return
	}
	snap, err := h.service.Create(ctx, tenantID)
	if err != nil {
		h.writeFailure(w, ctx, "failed to create extraction session", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromSnapshot(snap))
}

// HandleGet handles GET /extraction-sessions/{session_id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, sessionID, ok := h.sessionScope(w, r)
	if !ok {
		return
	}
	snap, err := h.service.Get(ctx, tenantID, sessionID)
	if err != nil {
		h.writeFailure(w, ctx, "failed to load extraction session", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSnapshot(snap))
}

// HandleSubmitImage handles POST /extraction-sessions/{session_id}/image.
// The image is validated synchronously; recognition continues in the
// background and is polled through HandleGet.
func (h *Handler) HandleSubmitImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	tenantID, sessionID, ok := h.sessionScope(w, r)
	if !ok {
		return
	}

	image, err := h.readImage(w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "rejected screenshot upload",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	ticket, err := h.service.Submit(ctx, tenantID, sessionID, image)
	if err != nil {
		h.writeFailure(w, ctx, "screenshot submission failed", err)
		return
	}

	runCtx := requestcontext.Detach(ctx)
	h.spawn(func() {
		if err := h.service.Run(runCtx, ticket); err != nil && !errors.Is(err, sentinel.ErrStale) {
			h.logger.WarnContext(runCtx, "background extraction failed",
				"request_id", requestID,
				"session_id", sessionID.String(),
				"generation", ticket.Generation,
				"error", err,
			)
		}
	})

	httputil.WriteJSON(w, http.StatusAccepted, FromSnapshot(ticket.Snapshot))
}

// HandleToggle handles POST /extraction-sessions/{session_id}/items/{index}/toggle.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, sessionID, ok := h.sessionScope(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "index must be a non-negative integer"))
		return
	}
	snap, err := h.service.Toggle(ctx, tenantID, sessionID, index)
	if err != nil {
		h.writeFailure(w, ctx, "failed to toggle review item", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSnapshot(snap))
}

// HandleSelectAll handles POST /extraction-sessions/{session_id}/select-all.
func (h *Handler) HandleSelectAll(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, h.service.SelectAll)
}

// HandleClearSelection handles POST /extraction-sessions/{session_id}/clear-selection.
func (h *Handler) HandleClearSelection(w http.ResponseWriter, r *http.Request) {
	h.applySelection(w, r, h.service.ClearSelection)
}

func (h *Handler) applySelection(w http.ResponseWriter, r *http.Request, op func(context.Context, id.TenantID, id.SessionID) (*session.Snapshot, error)) {
	ctx := r.Context()
	tenantID, sessionID, ok := h.sessionScope(w, r)
	if !ok {
		return
	}
	snap, err := op(ctx, tenantID, sessionID)
	if err != nil {
		h.writeFailure(w, ctx, "failed to update selection", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromSnapshot(snap))
}

// HandleImport handles POST /extraction-sessions/{session_id}/import.
// Partial failures are reported in the body with status 200.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID, sessionID, ok := h.sessionScope(w, r)
	if !ok {
		return
	}
	result, err := h.service.Import(ctx, tenantID, sessionID)
	if err != nil {
		h.writeFailure(w, ctx, "import failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleDOMDisplayName handles POST /dom/display-name.
func (h *Handler) HandleDOMDisplayName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	if _, ok := h.requireTenant(w, ctx); !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[DOMRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.ExtractDOM(ctx, strings.NewReader(req.HTML))
	if err != nil {
		h.writeFailure(w, ctx, "dom extraction failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDOMResult(res))
}

func (h *Handler) readImage(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBytes+multipartOverhead)
	file, _, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, dErrors.New(dErrors.CodeValidation, "image exceeds the upload limit")
		}
		return nil, dErrors.New(dErrors.CodeBadRequest, "multipart field \"image\" is required")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxImageBytes+1))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read image")
	}
	if int64(len(data)) > h.maxImageBytes {
		return nil, dErrors.New(dErrors.CodeValidation, "image exceeds the upload limit")
	}
	return data, nil
}

func (h *Handler) requireTenant(w http.ResponseWriter, ctx context.Context) (id.TenantID, bool) {
	tenantID := requestcontext.TenantID(ctx)
	if tenantID.IsNil() {
		h.logger.ErrorContext(ctx, "tenant missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.TenantID{}, false
	}
	return tenantID, true
}

func (h *Handler) sessionScope(w http.ResponseWriter, r *http.Request) (id.TenantID, id.SessionID, bool) {
	tenantID, ok := h.requireTenant(w, r.Context())
	if !ok {
		return id.TenantID{}, id.SessionID{}, false
	}
	sessionID, err := id.ParseSessionID(chi.URLParam(r, "session_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.TenantID{}, id.SessionID{}, false
	}
	return tenantID, sessionID, true
}

// writeFailure logs at warn for client errors and at error otherwise.
func (h *Handler) writeFailure(w http.ResponseWriter, ctx context.Context, msg string, err error) {
	level := slog.LevelWarn
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", requestcontext.TenantID(ctx).String(),
		"error", err,
	)
	httputil.WriteError(w, err)
}
