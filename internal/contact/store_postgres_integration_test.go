//go:build integration

package contact_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"leadscout/internal/contact"
	"leadscout/internal/identity/models"
	id "leadscout/pkg/domain"
	"leadscout/pkg/platform/sentinel"
	"leadscout/pkg/requestcontext"
	"leadscout/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *contact.PostgresStore
	tenantID id.TenantID
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T(), "migrations/001_contacts.sql")
	s.store = contact.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "contacts"))
	s.tenantID = id.TenantID(uuid.New())
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
}

func (s *PostgresStoreSuite) TestCreateAndBatchLookup() {
	ana, err := s.store.CreateContact(s.ctx, s.tenantID, models.CandidateToken{RawValue: "@Ana", Kind: models.TokenHandle})
	s.Require().NoError(err)
	joel, err := s.store.CreateContact(s.ctx, s.tenantID, models.CandidateToken{RawValue: "Joel Jota", Kind: models.TokenDisplayName})
	s.Require().NoError(err)

	found, err := s.store.LookupByNormalizedValues(s.ctx, s.tenantID, []string{"@ana", "joel jota", "@missing"})
	s.Require().NoError(err)
	s.Equal(map[string]id.ContactID{"@ana": ana, "joel jota": joel}, found)
}

func (s *PostgresStoreSuite) TestEmptyLookupSkipsQuery() {
	found, err := s.store.LookupByNormalizedValues(s.ctx, s.tenantID, nil)
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *PostgresStoreSuite) TestDuplicateReturnsConflict() {
	_, err := s.store.CreateContact(s.ctx, s.tenantID, models.CandidateToken{RawValue: "@ana", Kind: models.TokenHandle})
	s.Require().NoError(err)

	_, err = s.store.CreateContact(s.ctx, s.tenantID, models.CandidateToken{RawValue: "@ANA", Kind: models.TokenHandle})
	s.ErrorIs(err, sentinel.ErrConflict)

	_, err = s.store.CreateContact(s.ctx, id.TenantID(uuid.New()), models.CandidateToken{RawValue: "@ana", Kind: models.TokenHandle})
	s.NoError(err)
}

func (s *PostgresStoreSuite) TestListByTenant() {
	_, err := s.store.CreateContact(s.ctx, s.tenantID, models.CandidateToken{RawValue: "@bo", Kind: models.TokenHandle})
	s.Require().NoError(err)
	_, err = s.store.CreateContact(s.ctx, s.tenantID, models.CandidateToken{RawValue: "@ana", Kind: models.TokenHandle})
	s.Require().NoError(err)

	list, err := s.store.ListByTenant(s.ctx, s.tenantID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("@ana", list[0].Value)
	s.Equal(models.TokenHandle, list[1].Kind)
	s.True(list[0].CreatedAt.Equal(requestcontext.Now(s.ctx)))
}
