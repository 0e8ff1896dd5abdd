package app

import (
	"context"
	"log/slog"

	"PayPalReconciler/config"
	"PayPalReconciler/internal/controller/message"
	"PayPalReconciler/internal/external/kafka"
	"PayPalReconciler/internal/messaging"
	"PayPalReconciler/internal/webhook"
)

// StartWorkers starts the Kafka consumer that dispatches buffered webhooks.
// It runs in a separate goroutine and stops when ctx is cancelled.
func StartWorkers(ctx context.Context, l *slog.Logger, cfg config.Config, dispatcher webhook.EventDispatcher) {
	dlqPublisher := kafka.NewDLQPublisher(l, cfg.KafkaBrokers, cfg.KafkaWebhooksDLQ)

	controller := message.NewWebhookMessageController(l, dispatcher)
	handler := messaging.WithMetrics(
		cfg.KafkaWebhooksTopic,
		cfg.KafkaConsumerGroup,
		messaging.WithDLQ(
			messaging.WithRetry(controller.HandleMessage, messaging.DefaultRetryConfig()),
			dlqPublisher,
		),
	)
	consumer := kafka.NewConsumer(l, cfg.KafkaBrokers, cfg.KafkaWebhooksTopic, cfg.KafkaConsumerGroup)
	runner := messaging.NewRunner([]messaging.Worker{consumer}, handler)

	go func() {
		defer func() { _ = dlqPublisher.Close() }()

		l.Info("Starting webhook consumer",
			slog.String("topic", cfg.KafkaWebhooksTopic),
			slog.String("group", cfg.KafkaConsumerGroup))
		if err := runner.Start(ctx); err != nil {
			l.Error("Webhook runner failed", slog.Any("error", err))
		}
	}()
}
