// Package kafka appends audit events to a Kafka topic. The store is
// append-only; downstream consumers own retention and querying.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"handmadepixel/pkg/platform/audit"
)

type Store struct {
	client *kgo.Client
	topic  string
}

// New connects a producer to brokers. Callers own Close.
func New(brokers []string, topic string) (*Store, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka audit client: %w", err)
	}
	return &Store{client: client, topic: topic}, nil
}

// Append produces one JSON-encoded event, keyed by user id so per-user
// ordering is preserved within a partition.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.UserID.String()),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying client.
func (s *Store) Close() {
	s.client.Close()
}
