// Package contact stores the contacts created by the import executor and
// answers the batch lookups the deduplicator makes.
package contact

import (
	"time"

	"leadscout/internal/identity/models"
	id "leadscout/pkg/domain"
)

// Contact is one imported identity.
//
// Invariants:
//   - NormalizedValue is unique per tenant
//   - NormalizedValue == strings.ToLower(Value)
type Contact struct {
	ID              id.ContactID     `json:"id"`
	TenantID        id.TenantID      `json:"tenant_id"`
	Value           string           `json:"value"`
	NormalizedValue string           `json:"normalized_value"`
	Kind            models.TokenKind `json:"kind"`
	CreatedAt       time.Time        `json:"created_at"`
}

// New builds a contact for token.
func New(tenantID id.TenantID, token models.CandidateToken, now time.Time) *Contact {
	return &Contact{
		ID:              id.NewContactID(),
		TenantID:        tenantID,
		Value:           token.RawValue,
		NormalizedValue: token.NormalizedValue(),
		Kind:            token.Kind,
		CreatedAt:       now,
	}
}
