package audit

import (
	"context"
	"time"

	id "leadscout/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks
// can route and retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers durable changes to tenant data, such as
	// imported contacts and capability changes.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers pipeline activity useful for debugging.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	TenantID  id.TenantID   `json:"tenant_id"`
	UserID    id.UserID     `json:"user_id"`
	Subject   string        `json:"subject"`
	Action    string        `json:"action"`
	Reason    string        `json:"reason,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	ClientIP  string        `json:"client_ip,omitempty"`
	Device    string        `json:"device,omitempty"`
}

type AuditEvent string

const (
	// Import events
	EventContactImported AuditEvent = "contact_imported"
	EventImportFailed    AuditEvent = "contact_import_failed"

	// Extraction events
	EventExtractionCompleted AuditEvent = "extraction_completed"
	EventExtractionFailed    AuditEvent = "extraction_failed"

	// Feature events
	EventFeatureChanged AuditEvent = "feature_changed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventContactImported: CategoryCompliance,
	EventFeatureChanged:  CategoryCompliance,

	EventImportFailed:        CategoryOperations,
	EventExtractionCompleted: CategoryOperations,
	EventExtractionFailed:    CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Sink persists or forwards events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Store is a Sink that can also be queried.
type Store interface {
	Sink
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]Event, error)
}
