//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "leadscout/pkg/domain"
	audit "leadscout/pkg/platform/audit"
	"leadscout/pkg/testutil/containers"
)

func TestSink_ProducesTenantKeyedEvents(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic := "audit-" + uuid.NewString()[:8]
	sink, err := New(rp.Brokers, topic)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.EnsureTopic(ctx))
	require.NoError(t, sink.EnsureTopic(ctx), "existing topic is not an error")

	tenantID := id.TenantID(uuid.New())
	event := audit.Event{
		Category:  audit.CategoryCompliance,
		Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		TenantID:  tenantID,
		Subject:   "@joel.jota93",
		Action:    string(audit.EventContactImported),
	}
	require.NoError(t, sink.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.Len(t, records, 1)

	assert.Equal(t, tenantID.String(), string(records[0].Key))
	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, event, got)
}
