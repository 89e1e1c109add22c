// Package kafka ships audit events to a Kafka topic with franz-go. Records
// are keyed by rider uid (falling back to the actor) so a rider's history
// stays ordered within one partition.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "pharmafinder/pkg/platform/audit"
)

// DefaultDeliveryTimeout bounds a produced record when New's callers do not
// pass their own kgo.RecordDeliveryTimeout.
const DefaultDeliveryTimeout = 10 * time.Second

// Sink implements audit.Store by producing one record per event.
type Sink struct {
	client *kgo.Client
	topic  string
}

// New connects a producer for topic. Extra kgo options are appended last so
// callers can override defaults.
func New(brokers []string, topic string, opts ...kgo.Opt) (*Sink, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5 * time.Millisecond),
		// Without a delivery timeout franz-go retries a record forever while
		// the broker is unreachable.
		kgo.RecordDeliveryTimeout(DefaultDeliveryTimeout),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Sink{client: client, topic: topic}, nil
}

// EnsureTopic creates the audit topic, treating "already exists" as success.
func (s *Sink) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	adm := kadm.NewClient(s.client)
	resp, err := adm.CreateTopics(ctx, partitions, replicationFactor, nil, s.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", s.topic, err)
	}
	for name, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", name, r.Err)
		}
	}
	return nil
}

// Ping checks broker reachability.
func (s *Sink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Append produces event and waits for the ack. Cancelling ctx fails the record
// if it has not been written to a broker yet.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	rec, err := Record(s.topic, event)
	if err != nil {
		return err
	}
	if err := s.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

func (s *Sink) Close() {
	s.client.Close()
}

// Message is the JSON value written to the topic.
type Message struct {
	Category  string `json:"category"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actor_id,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Email     string `json:"email,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

// Record encodes an event as a Kafka record for topic.
func Record(topic string, event audit.Event) (*kgo.Record, error) {
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}
	value, err := json.Marshal(Message{
		Category:  string(category),
		Action:    event.Action,
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
		ActorID:   event.ActorID,
		Subject:   event.Subject,
		Email:     event.Email,
		Reason:    event.Reason,
		RequestID: event.RequestID,
		Platform:  event.Platform,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal audit event: %w", err)
	}
	key := event.Subject
	if key == "" {
		key = event.ActorID
	}
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "category", Value: []byte(category)},
			{Key: "action", Value: []byte(event.Action)},
		},
	}, nil
}
