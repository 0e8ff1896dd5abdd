package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"PayPalReconciler/internal/messaging"
	"PayPalReconciler/pkg/correlation"
	"PayPalReconciler/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publishers use.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements messaging.Publisher using Kafka.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

func NewPublisher(l *slog.Logger, brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return newPublisher(l, writer, topic)
}

func newPublisher(l *slog.Logger, writer messageWriter, topic string) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		logger: l.With("topic", topic),
	}
}

// Publish writes the envelope keyed by env.Key. The correlation id from ctx
// travels in a header.
func (p *Publisher) Publish(ctx context.Context, env messaging.Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(env.Key),
		Value: value,
	}
	if id := correlation.FromContext(ctx); id != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: correlation.KafkaHeaderName, Value: []byte(id)})
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		p.logger.ErrorContext(ctx, "Failed to publish message",
			"key", env.Key,
			slog.Any("error", err))
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}

	metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "success").Inc()
	p.logger.DebugContext(ctx, "Message published",
		"key", env.Key,
		"event_id", env.EventID,
		"type", env.Type)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
