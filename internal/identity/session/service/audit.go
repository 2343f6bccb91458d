package service

import (
	"context"

	"leadscout/pkg/attrs"
	id "leadscout/pkg/domain"
	"leadscout/pkg/platform/audit"
	"leadscout/pkg/requestcontext"
)

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, tenantID id.TenantID, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event), "log_type", "audit", "tenant_id", tenantID.String())
	s.logger.InfoContext(ctx, string(event), args...)
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(requestcontext.Detach(ctx), audit.Event{
		Timestamp: s.clock(),
		TenantID:  tenantID,
		UserID:    requestcontext.UserID(ctx),
		Subject:   attrs.ExtractString(attributes, "subject"),
		Action:    string(event),
		Reason:    attrs.ExtractString(attributes, "reason"),
		RequestID: requestID,
	})
}
