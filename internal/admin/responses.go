package admin

import (
	"time"

	"leadscout/internal/contact"
	"leadscout/pkg/platform/audit"
)

// AuditEventResponse is the HTTP response DTO for one audit event.
type AuditEventResponse struct {
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Subject   string    `json:"subject,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Device    string    `json:"device,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditListResponse wraps a tenant's audit trail.
type AuditListResponse struct {
	TenantID string                `json:"tenant_id"`
	Events   []*AuditEventResponse `json:"events"`
	Total    int                   `json:"total"`
}

// ContactResponse is the HTTP response DTO for a stored contact.
type ContactResponse struct {
	ID        string    `json:"id"`
	Value     string    `json:"value"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactListResponse wraps a tenant's contacts.
type ContactListResponse struct {
	TenantID string             `json:"tenant_id"`
	Contacts []*ContactResponse `json:"contacts"`
	Total    int                `json:"total"`
}

func fromEvents(tenantID string, events []audit.Event) *AuditListResponse {
	out := &AuditListResponse{TenantID: tenantID, Events: make([]*AuditEventResponse, 0, len(events))}
	for _, e := range events {
		resp := &AuditEventResponse{
			Action:    e.Action,
			Category:  string(e.Category),
			Subject:   e.Subject,
			Reason:    e.Reason,
			RequestID: e.RequestID,
			ClientIP:  e.ClientIP,
			Device:    e.Device,
			Timestamp: e.Timestamp,
		}
		if !e.UserID.IsNil() {
			resp.UserID = e.UserID.String()
		}
		out.Events = append(out.Events, resp)
	}
	out.Total = len(out.Events)
	return out
}

func fromContacts(tenantID string, contacts []*contact.Contact) *ContactListResponse {
	out := &ContactListResponse{TenantID: tenantID, Contacts: make([]*ContactResponse, 0, len(contacts))}
	for _, c := range contacts {
		out.Contacts = append(out.Contacts, &ContactResponse{
			ID:        c.ID.String(),
			Value:     c.Value,
			Kind:      string(c.Kind),
			CreatedAt: c.CreatedAt,
		})
	}
	out.Total = len(out.Contacts)
	return out
}
