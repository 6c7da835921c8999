// Package events publishes cart change notifications.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/guttosm/cart-service/internal/metrics"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes cart events to a Kafka topic keyed by cart key, so
// events of one cart stay ordered within a partition.
type KafkaPublisher struct {
	writer       messageWriter
	topic        string
	writeTimeout time.Duration
}

// KafkaConfig configures a KafkaPublisher.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

// NewKafkaPublisher creates a publisher. Connections are opened lazily on
// the first write.
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher: no brokers configured")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, fmt.Errorf("kafka publisher: topic is required")
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 10 * time.Millisecond
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(writer, cfg.Topic, cfg.WriteTimeout), nil
}

func newKafkaPublisher(writer messageWriter, topic string, writeTimeout time.Duration) *KafkaPublisher {
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &KafkaPublisher{writer: writer, topic: topic, writeTimeout: writeTimeout}
}

// Notify publishes one event.
func (p *KafkaPublisher) Notify(ctx context.Context, event model.CartEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		metrics.RecordCartEvent(string(event.Type), "error")
		return fmt.Errorf("marshal cart event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.CartKey),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
		Time: event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.RecordCartEvent(string(event.Type), "error")
		return fmt.Errorf("publish cart event to %s: %w", p.topic, err)
	}

	metrics.RecordCartEvent(string(event.Type), "success")
	log.Debug().
		Str("event_id", event.EventID).
		Str("event_type", string(event.Type)).
		Str("cart_key", event.CartKey).
		Msg("Cart event published")
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// NoopNotifier drops events. It is used when no broker is configured.
type NoopNotifier struct{}

// Notify records the event in the debug log only.
func (NoopNotifier) Notify(_ context.Context, event model.CartEvent) error {
	metrics.RecordCartEvent(string(event.Type), "skipped")
	log.Debug().
		Str("event_type", string(event.Type)).
		Str("cart_key", event.CartKey).
		Msg("Cart event not published: events disabled")
	return nil
}

// Close is a no-op.
func (NoopNotifier) Close() error { return nil }
