package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"leadscout/internal/identity/models"
	"leadscout/internal/identity/ports/mocks"
	id "leadscout/pkg/domain"
	dErrors "leadscout/pkg/domain-errors"
	"leadscout/pkg/platform/audit"
	"leadscout/pkg/platform/sentinel"
	"leadscout/pkg/requestcontext"
)

type ExecutorSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *mocks.MockContactCreator
	audit    *mocks.MockAuditPublisher
	tenantID id.TenantID
}

func TestExecutorSuite(t *testing.T) {
	suite.Run(t, new(ExecutorSuite))
}

func (s *ExecutorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockContactCreator(s.ctrl)
	s.audit = mocks.NewMockAuditPublisher(s.ctrl)
	s.tenantID = id.TenantID(uuid.New())
}

func (s *ExecutorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func tokens(values ...string) []models.CandidateToken {
	out := make([]models.CandidateToken, len(values))
	for i, v := range values {
		out[i] = models.CandidateToken{RawValue: v, Kind: models.TokenHandle}
	}
	return out
}

func (s *ExecutorSuite) assertCounts(r *models.ImportResult) {
	s.Equal(r.Attempted, r.Succeeded+r.Failed)
	s.Len(r.Errors, r.Failed)
}

func (s *ExecutorSuite) TestZeroSelectedIsRejectedBeforeStoreCalls() {
	exec := New(s.store)

	result, err := exec.Execute(context.Background(), s.tenantID, nil)

	s.Require().Error(err)
	s.Nil(result)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ExecutorSuite) TestAllSucceed() {
	selected := tokens("@ana", "@bo", "@carla")
	s.store.EXPECT().CreateContact(gomock.Any(), s.tenantID, gomock.Any()).
		Return(id.NewContactID(), nil).Times(3)

	result, err := New(s.store).Execute(context.Background(), s.tenantID, selected)

	s.Require().NoError(err)
	s.Equal(3, result.Attempted)
	s.Equal(3, result.Succeeded)
	s.Zero(result.Failed)
	s.NotNil(result.Errors)
	s.Empty(result.Errors)
	s.assertCounts(result)
}

func (s *ExecutorSuite) TestPartialFailureKeepsInputOrder() {
	selected := tokens("@ana", "@bo", "@carla", "@davi")
	s.store.EXPECT().CreateContact(gomock.Any(), s.tenantID, selected[0]).Return(id.NewContactID(), nil)
	s.store.EXPECT().CreateContact(gomock.Any(), s.tenantID, selected[1]).
		Return(id.ContactID{}, fmt.Errorf("insert: %w", sentinel.ErrConflict))
	s.store.EXPECT().CreateContact(gomock.Any(), s.tenantID, selected[2]).Return(id.NewContactID(), nil)
	s.store.EXPECT().CreateContact(gomock.Any(), s.tenantID, selected[3]).
		Return(id.ContactID{}, errors.New("pq: connection reset"))

	result, err := New(s.store, WithConcurrency(4)).Execute(context.Background(), s.tenantID, selected)

	s.Require().NoError(err)
	s.Equal(4, result.Attempted)
	s.Equal(2, result.Succeeded)
	s.Equal(2, result.Failed)
	s.Require().Len(result.Errors, 2)
	s.Equal("@bo", result.Errors[0].Candidate.RawValue)
	s.Equal("contact already exists", result.Errors[0].Reason)
	s.Equal("@davi", result.Errors[1].Candidate.RawValue)
	s.Equal("failed to create contact", result.Errors[1].Reason)
	s.assertCounts(result)
}

func (s *ExecutorSuite) TestCodedStoreErrorMessageIsReported() {
	s.store.EXPECT().CreateContact(gomock.Any(), s.tenantID, gomock.Any()).
		Return(id.ContactID{}, dErrors.New(dErrors.CodeValidation, "value too long for contact"))

	result, err := New(s.store).Execute(context.Background(), s.tenantID, tokens("@ana"))

	s.Require().NoError(err)
	s.Require().Len(result.Errors, 1)
	s.Equal("value too long for contact", result.Errors[0].Reason)
}

func (s *ExecutorSuite) TestCancelledBeforeStart() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(s.store).Execute(ctx, s.tenantID, tokens("@ana", "@bo"))

	s.Require().NoError(err)
	s.Equal(2, result.Failed)
	for _, e := range result.Errors {
		s.Equal("context canceled", e.Reason)
	}
	s.assertCounts(result)
}

func (s *ExecutorSuite) TestCancelledMidImport() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	selected := tokens("@ana", "@bo", "@carla")
	s.store.EXPECT().CreateContact(gomock.Any(), s.tenantID, selected[0]).
		DoAndReturn(func(context.Context, id.TenantID, models.CandidateToken) (id.ContactID, error) {
			cancel()
			return id.NewContactID(), nil
		})

	result, err := New(s.store, WithConcurrency(1)).Execute(ctx, s.tenantID, selected)

	s.Require().NoError(err)
	s.Equal(1, result.Succeeded)
	s.Equal(2, result.Failed)
	s.Equal("@bo", result.Errors[0].Candidate.RawValue)
	s.Equal("context canceled", result.Errors[0].Reason)
	s.Equal("@carla", result.Errors[1].Candidate.RawValue)
	s.assertCounts(result)
}

func (s *ExecutorSuite) TestEmitsAuditPerItem() {
	userID := id.UserID(uuid.New())
	ctx := requestcontext.WithUserID(context.Background(), userID)
	ctx = requestcontext.WithRequestID(ctx, "req-42")
	selected := tokens("@Ana", "@bo")

	s.store.EXPECT().CreateContact(gomock.Any(), s.tenantID, selected[0]).Return(id.NewContactID(), nil)
	s.store.EXPECT().CreateContact(gomock.Any(), s.tenantID, selected[1]).Return(id.ContactID{}, sentinel.ErrConflict)

	var mu sync.Mutex
	var events []audit.Event
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e audit.Event) error {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
			return nil
		}).Times(2)

	_, err := New(s.store, WithAuditPublisher(s.audit)).Execute(ctx, s.tenantID, selected)
	s.Require().NoError(err)

	s.Require().Len(events, 2)
	byAction := map[string]audit.Event{}
	for _, e := range events {
		byAction[e.Action] = e
	}
	imported := byAction[string(audit.EventContactImported)]
	s.Equal("@ana", imported.Subject)
	s.Equal(s.tenantID, imported.TenantID)
	s.Equal(userID, imported.UserID)
	s.Equal("req-42", imported.RequestID)
	s.Equal("contact already exists", byAction[string(audit.EventImportFailed)].Reason)
}

type slowStore struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *slowStore) CreateContact(context.Context, id.TenantID, models.CandidateToken) (id.ContactID, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return id.NewContactID(), nil
}

func TestExecute_BoundsConcurrency(t *testing.T) {
	store := &slowStore{}
	values := make([]string, 12)
	for i := range values {
		values[i] = fmt.Sprintf("@user%d", i)
	}

	result, err := New(store, WithConcurrency(2)).Execute(context.Background(), id.TenantID(uuid.New()), tokens(values...))

	require.NoError(t, err)
	assert.Equal(t, 12, result.Succeeded)
	assert.LessOrEqual(t, store.peak.Load(), int32(2))
}
