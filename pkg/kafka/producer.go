// Package kafka publishes contact lifecycle events.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/Ramsey-B/clover/internal/platform/tracing"
)

// Producer handles Kafka event emission.
type Producer struct {
	writer       *kafka.Writer
	logger       ectologger.Logger
	contactTopic string
	groupTopic   string
}

// ProducerConfig holds Kafka producer configuration. GroupTopic falls back to
// Topic when empty, so group events share the contact topic by default.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	GroupTopic   string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer.
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	groupTopic := cfg.GroupTopic
	if groupTopic == "" {
		groupTopic = cfg.Topic
	}

	return &Producer{
		writer:       writer,
		logger:       logger,
		contactTopic: cfg.Topic,
		groupTopic:   groupTopic,
	}
}

// Close closes the producer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// ContactEvent represents a contact lifecycle event.
type ContactEvent struct {
	EventType   string          `json:"event_type"` // contact.created, contact.updated, contact.deleted
	ContactID   string          `json:"contact_id"`
	ContainerID string          `json:"container_id,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

// GroupEvent represents a group catalog event.
type GroupEvent struct {
	EventType   string    `json:"event_type"` // group.created, group.updated, group.deleted
	GroupID     string    `json:"group_id"`
	ContainerID string    `json:"container_id,omitempty"`
	Name        string    `json:"name,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// PublishContactEvent publishes a contact event to Kafka.
func (p *Producer) PublishContactEvent(ctx context.Context, event *ContactEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishContactEvent")
	defer span.End()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.contactTopic,
		Key:   []byte(event.ContactID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "container_id", Value: []byte(event.ContainerID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"event_type": event.EventType,
			"contact_id": event.ContactID,
		}).Error("Failed to publish contact event")
		return err
	}
	return nil
}

// PublishGroupEvent publishes a group event to Kafka.
func (p *Producer) PublishGroupEvent(ctx context.Context, event *GroupEvent) error {
	ctx, span := tracing.StartSpan(ctx, "kafka.Producer.PublishGroupEvent")
	defer span.End()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.groupTopic,
		Key:   []byte(event.GroupID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "container_id", Value: []byte(event.ContainerID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"event_type": event.EventType,
			"group_id":   event.GroupID,
		}).Error("Failed to publish group event")
		return err
	}
	return nil
}
