package kafka

import (
	"context"
	"errors"
	"log/slog"

	"PayPalReconciler/internal/messaging"
	"PayPalReconciler/pkg/correlation"

	"github.com/segmentio/kafka-go"
)

// Consumer implements messaging.Worker using Kafka.
type Consumer struct {
	reader *kafka.Reader
	logger *slog.Logger
}

func NewConsumer(l *slog.Logger, brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})

	return &Consumer{
		reader: reader,
		logger: l.With("topic", topic, "group_id", groupID),
	}
}

// Start blocks until ctx is cancelled or fetching fails. Messages whose
// handler fails are not committed and come back after a rebalance or restart.
func (c *Consumer) Start(ctx context.Context, handler messaging.MessageHandler) error {
	c.logger.InfoContext(ctx, "Consumer started")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.logger.Info("Consumer stopped (context cancelled)")
				return nil
			}
			c.logger.ErrorContext(ctx, "Failed to fetch message", slog.Any("error", err))
			return err
		}

		msgCtx := contextFromHeaders(ctx, msg.Headers)
		c.logger.DebugContext(msgCtx, "Message received",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key))

		if err := handler(msgCtx, msg.Key, msg.Value); err != nil {
			c.logger.ErrorContext(msgCtx, "Handler error, message not committed",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"key", string(msg.Key),
				slog.Any("error", err))
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.ErrorContext(msgCtx, "Failed to commit message",
				"partition", msg.Partition,
				"offset", msg.Offset,
				slog.Any("error", err))
			return err
		}
	}
}

func (c *Consumer) Close() error {
	c.logger.Info("Closing consumer")
	return c.reader.Close()
}

func contextFromHeaders(ctx context.Context, headers []kafka.Header) context.Context {
	for _, h := range headers {
		if h.Key == correlation.KafkaHeaderName && len(h.Value) > 0 {
			return correlation.WithID(ctx, string(h.Value))
		}
	}
	return correlation.EnsureID(ctx)
}
