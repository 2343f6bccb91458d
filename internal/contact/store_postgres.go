package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"leadscout/internal/identity/models"
	id "leadscout/pkg/domain"
	"leadscout/pkg/platform/sentinel"
	"leadscout/pkg/requestcontext"
)

// PostgresStore persists contacts in PostgreSQL. The schema lives in
// migrations/001_contacts.sql.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed contact store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const lookupQuery = `
SELECT normalized_value, id
FROM contacts
WHERE tenant_id = $1 AND normalized_value = ANY($2)`

// LookupByNormalizedValues resolves the whole batch in one query.
func (s *PostgresStore) LookupByNormalizedValues(ctx context.Context, tenantID id.TenantID, values []string) (map[string]id.ContactID, error) {
	found := make(map[string]id.ContactID)
	if len(values) == 0 {
		return found, nil
	}

	rows, err := s.db.QueryContext(ctx, lookupQuery, uuid.UUID(tenantID), pq.Array(values))
	if err != nil {
		return nil, fmt.Errorf("lookup contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			value     string
			contactID uuid.UUID
		)
		if err := rows.Scan(&value, &contactID); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		found[value] = id.ContactID(contactID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return found, nil
}

const insertQuery = `
INSERT INTO contacts (id, tenant_id, value, normalized_value, kind, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (tenant_id, normalized_value) DO NOTHING
RETURNING id`

// CreateContact inserts token. A unique-key collision returns
// sentinel.ErrConflict.
func (s *PostgresStore) CreateContact(ctx context.Context, tenantID id.TenantID, token models.CandidateToken) (id.ContactID, error) {
	c := New(tenantID, token, requestcontext.Now(ctx))

	var inserted uuid.UUID
	err := s.db.QueryRowContext(ctx, insertQuery,
		uuid.UUID(c.ID),
		uuid.UUID(c.TenantID),
		c.Value,
		c.NormalizedValue,
		string(c.Kind),
		c.CreatedAt,
	).Scan(&inserted)
	if errors.Is(err, sql.ErrNoRows) {
		return id.ContactID{}, sentinel.ErrConflict
	}
	if err != nil {
		return id.ContactID{}, fmt.Errorf("insert contact: %w", err)
	}
	return id.ContactID(inserted), nil
}

const listQuery = `
SELECT id, value, normalized_value, kind, created_at
FROM contacts
WHERE tenant_id = $1
ORDER BY created_at, normalized_value`

// ListByTenant returns the tenant's contacts, oldest first.
func (s *PostgresStore) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*Contact, error) {
	rows, err := s.db.QueryContext(ctx, listQuery, uuid.UUID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []*Contact
	for rows.Next() {
		var (
			contactID uuid.UUID
			kind      string
			c         = &Contact{TenantID: tenantID}
		)
		if err := rows.Scan(&contactID, &c.Value, &c.NormalizedValue, &kind, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.ID = id.ContactID(contactID)
		c.Kind = models.TokenKind(kind)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return out, nil
}

// Health pings the database.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
