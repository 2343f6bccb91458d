// Package kafka forwards audit events to a Kafka topic. Records are keyed by
// tenant so a tenant's events stay ordered within a partition.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "leadscout/pkg/platform/audit"
)

const (
	defaultPartitions        int32 = 3
	defaultReplicationFactor int16 = 1
)

type Sink struct {
	client *kgo.Client
	topic  string
}

// New connects a producer for topic. It does not create the topic; call
// EnsureTopic during startup when the broker does not auto-create topics.
func New(brokers []string, topic string, opts ...kgo.Opt) (*Sink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if topic == "" {
		return nil, errors.New("kafka: audit topic is required")
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	return &Sink{client: client, topic: topic}, nil
}

// EnsureTopic creates the audit topic, treating an existing topic as success.
func (s *Sink) EnsureTopic(ctx context.Context) error {
	adm := kadm.NewClient(s.client)
	resp, err := adm.CreateTopics(ctx, defaultPartitions, defaultReplicationFactor, nil, s.topic)
	if err != nil {
		return fmt.Errorf("kafka: create topic %s: %w", s.topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("kafka: create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: encode audit event: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(event.TenantID.String()),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "category", Value: []byte(event.Category)},
			{Key: "action", Value: []byte(event.Action)},
		},
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce audit event: %w", err)
	}
	return nil
}

func (s *Sink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Sink) Close() {
	s.client.Close()
}
