// Package kafka provides a Kafka implementation of the eventstream.Consumer interface.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/recruitkit/cvrag/pkg/eventstream"
)

// DefaultTopic is the default topic carrying object-finalized events.
const DefaultTopic = "storage-events"

// Consumer reads object-finalized events from a Kafka topic.
type Consumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

// Config holds configuration for the Kafka consumer.
type Config struct {
	// Brokers is the list of Kafka broker addresses.
	Brokers []string

	// Topic is the topic carrying object-finalized events.
	// Defaults to DefaultTopic if empty.
	Topic string

	// GroupID is the consumer group. Offsets are committed per group so
	// restarts resume where the group left off.
	GroupID string
}

// NewConsumer creates a Kafka-backed event consumer.
func NewConsumer(c Config, logger *zap.Logger) (*Consumer, error) {
	if len(c.Brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}

	topic := c.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.Brokers,
		Topic:   topic,
		GroupID: c.GroupID,
	})

	logger.Info("kafka event consumer initialized",
		zap.Strings("brokers", c.Brokers),
		zap.String("topic", topic),
		zap.String("group", c.GroupID),
	)

	return &Consumer{
		reader: reader,
		logger: logger,
	}, nil
}

// Run consumes events until ctx is cancelled. Offsets are committed only
// after the handler returns, so unprocessed events are redelivered after a
// crash (at-least-once). Handler failures are logged and committed — the
// pipeline's ingestion failures are terminal, not retried.
func (c *Consumer) Run(ctx context.Context, handler eventstream.Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		var event eventstream.ObjectFinalizedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("dropping malformed event",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		} else if err := handler(ctx, &event); err != nil {
			c.logger.Error("event handler failed",
				zap.String("event_id", event.EventID),
				zap.String("bucket", event.Bucket),
				zap.String("name", event.Name),
				zap.Error(err),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("committing offset: %w", err)
		}
	}
}

// Close releases consumer resources.
func (c *Consumer) Close() error {
	return c.reader.Close()
}

var _ eventstream.Consumer = (*Consumer)(nil)
