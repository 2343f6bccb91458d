package feature

import (
	"context"
	"log/slog"
	"maps"
	"strconv"

	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/platform/audit"
	"leadscout/pkg/requestcontext"
)

// AuditPublisher records flag changes.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service resolves flags against defaults and records changes.
type Service struct {
	store          Store
	defaults       Flags
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithDefaults sets the state of capabilities a tenant never set. Without
// it every capability defaults to disabled.
func WithDefaults(defaults Flags) Option {
	return func(s *Service) {
		maps.Copy(s.defaults, defaults)
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		defaults: make(Flags),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsEnabled implements ports.FeatureGate. Unknown capabilities are disabled.
func (s *Service) IsEnabled(ctx context.Context, tenantID id.TenantID, capability string) (bool, error) {
	flags, err := s.List(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return flags[Capability(capability)], nil
}

// List returns the effective state of every known capability.
func (s *Service) List(ctx context.Context, tenantID id.TenantID) (Flags, error) {
	stored, err := s.store.List(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "feature store unavailable")
	}
	out := make(Flags, len(Known))
	for _, c := range Known {
		out[c] = s.defaults[c]
		if enabled, ok := stored[c]; ok {
			out[c] = enabled
		}
	}
	return out, nil
}

// Set stores the flag and audits the change.
func (s *Service) Set(ctx context.Context, tenantID id.TenantID, capability Capability, enabled bool) error {
	if tenantID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "tenant_id is required")
	}
	if err := s.store.Set(ctx, tenantID, Flags{capability: enabled}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "feature store unavailable")
	}

	s.logger.InfoContext(ctx, "feature flag changed",
		"request_id", requestcontext.RequestID(ctx),
		"tenant_id", tenantID.String(),
		"capability", string(capability),
		"enabled", enabled,
	)
	if s.auditPublisher != nil {
		_ = s.auditPublisher.Emit(requestcontext.Detach(ctx), audit.Event{
			Timestamp: requestcontext.Now(ctx),
			TenantID:  tenantID,
			UserID:    requestcontext.UserID(ctx),
			Subject:   string(capability),
			Action:    string(audit.EventFeatureChanged),
			Reason:    "enabled=" + strconv.FormatBool(enabled),
			RequestID: requestcontext.RequestID(ctx),
		})
	}
	return nil
}
