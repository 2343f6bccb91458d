// Package domain holds typed identifiers shared across modules.
//
// Typed IDs keep tenant, contact and session identifiers from being swapped by
// accident. Construct them with the Parse functions at trust boundaries; direct
// conversion from uuid.UUID is reserved for code that generated the UUID itself.
package domain

import (
	"github.com/google/uuid"

	dErrors "leadscout/pkg/domain-errors"
)

// TenantID identifies a CRM tenant. Every store call is scoped by it.
type TenantID uuid.UUID

// UserID identifies the authenticated operator acting within a tenant.
type UserID uuid.UUID

// ContactID identifies a contact/lead owned by the external Contact Store.
type ContactID uuid.UUID

// SessionID identifies one extraction session (one uploaded image).
type SessionID uuid.UUID

func (id TenantID) String() string  { return uuid.UUID(id).String() }
func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id ContactID) String() string { return uuid.UUID(id).String() }
func (id SessionID) String() string { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ContactID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs serialize as plain UUID strings in JSON.
func (id TenantID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id ContactID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id SessionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText accepts any UUID, including nil, so stored events and
// payloads round-trip. Use the Parse functions to validate request input.
func (id *TenantID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *UserID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ContactID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SessionID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// ParseTenantID parses and validates a tenant identifier.
func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s, "tenant_id")
	return TenantID(u), err
}

// ParseUserID parses and validates a user identifier.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user_id")
	return UserID(u), err
}

// ParseContactID parses and validates a contact identifier.
func ParseContactID(s string) (ContactID, error) {
	u, err := parseUUID(s, "contact_id")
	return ContactID(u), err
}

// ParseSessionID parses and validates an extraction session identifier.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session_id")
	return SessionID(u), err
}

// NewContactID generates a fresh contact identifier.
func NewContactID() ContactID { return ContactID(uuid.New()) }

// NewUserID generates a fresh operator identifier.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewSessionID generates a fresh session identifier.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	if len(s) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is too long")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be the nil UUID")
	}
	return u, nil
}
