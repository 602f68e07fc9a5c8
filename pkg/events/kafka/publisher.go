// Package kafka provides an events publisher that mirrors every memory
// operation event to a Kafka topic, keyed by memory key so per-key ordering
// survives partitioning. The mirror is best-effort: write failures are
// logged and never surfaced to the mutation path.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/mnemo-ai/mnemo/pkg/events"
)

// Config holds configuration for the Kafka publisher.
type Config struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string

	// Topic is the topic events are written to.
	Topic string
}

// Publisher implements events.Publisher on top of a kafka-go writer.
type Publisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewPublisher creates a Kafka-backed events publisher.
func NewPublisher(config Config, logger *zap.Logger) *Publisher {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(config.Brokers...),
		Topic:                  config.Topic,
		Balancer:               &kafkago.Hash{},
		AllowAutoTopicCreation: true,
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Publish writes the event as JSON. Broker failures are logged, not
// returned — the mirror must never fail a memory mutation.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.Key),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("kafka publish failed",
			zap.String("key", event.Key),
			zap.String("operation", string(event.Operation)),
			zap.Error(err),
		)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
