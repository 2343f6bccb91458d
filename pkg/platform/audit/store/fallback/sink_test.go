package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "leadscout/pkg/domain"
	audit "leadscout/pkg/platform/audit"
	"leadscout/pkg/platform/audit/store/memory"
	"leadscout/pkg/platform/circuit"
)

type flakySink struct {
	failing  bool
	appended int
}

func (f *flakySink) Append(context.Context, audit.Event) error {
	if f.failing {
		return errors.New("broker unreachable")
	}
	f.appended++
	return nil
}

func TestSinkRoutesToSecondaryWhileOpen(t *testing.T) {
	ctx := context.Background()
	tenantID := id.TenantID(uuid.New())
	primary := &flakySink{failing: true}
	secondary := memory.NewInMemoryStore()
	sink := New(primary, secondary, WithBreaker(circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))))

	event := audit.Event{TenantID: tenantID, Action: string(audit.EventContactImported)}

	require.NoError(t, sink.Append(ctx, event))
	assert.False(t, sink.Degraded())
	buffered, err := secondary.ListByTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, buffered, 1, "first failed event kept before the circuit opens")

	require.NoError(t, sink.Append(ctx, event))
	assert.True(t, sink.Degraded())
	require.NoError(t, sink.Append(ctx, event))

	buffered, err = secondary.ListByTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, buffered, 3)

	primary.failing = false
	require.NoError(t, sink.Append(ctx, event))
	assert.False(t, sink.Degraded())
	assert.Equal(t, 1, primary.appended)

	buffered, err = secondary.ListByTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, buffered, 3)
}

func TestSinkKeepsEveryEventDuringOutage(t *testing.T) {
	ctx := context.Background()
	tenantID := id.TenantID(uuid.New())
	secondary := memory.NewInMemoryStore()
	sink := New(&flakySink{failing: true}, secondary, WithBreaker(circuit.New("audit-kafka")))

	for range 10 {
		require.NoError(t, sink.Append(ctx, audit.Event{TenantID: tenantID, Action: string(audit.EventContactImported)}))
	}

	buffered, err := secondary.ListByTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, buffered, 10)
	assert.True(t, sink.Degraded())
}

type brokenSink struct{}

func (brokenSink) Append(context.Context, audit.Event) error {
	return errors.New("fallback full")
}

func TestSinkReportsWhenBothSinksFail(t *testing.T) {
	sink := New(&flakySink{failing: true}, brokenSink{})

	err := sink.Append(context.Background(), audit.Event{Action: string(audit.EventContactImported)})

	require.Error(t, err)
	assert.ErrorContains(t, err, "broker unreachable")
	assert.ErrorContains(t, err, "fallback full")
}

func TestSinkHealthyPrimary(t *testing.T) {
	primary := &flakySink{}
	secondary := memory.NewInMemoryStore()
	sink := New(primary, secondary)

	for range 3 {
		require.NoError(t, sink.Append(context.Background(), audit.Event{Action: string(audit.EventFeatureChanged)}))
	}
	assert.Equal(t, 3, primary.appended)
	events, err := secondary.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
