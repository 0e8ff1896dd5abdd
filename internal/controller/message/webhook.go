package message

import (
	"context"
	"log/slog"

	"PayPalReconciler/internal/messaging"
	"PayPalReconciler/internal/webhook"
	"PayPalReconciler/pkg/correlation"
)

// WebhookMessageController dispatches webhook events buffered in Kafka.
type WebhookMessageController struct {
	logger     *slog.Logger
	dispatcher webhook.EventDispatcher
}

func NewWebhookMessageController(l *slog.Logger, dispatcher webhook.EventDispatcher) *WebhookMessageController {
	return &WebhookMessageController{
		logger:     l,
		dispatcher: dispatcher,
	}
}

// HandleMessage processes a single webhook message. Errors that a redelivery
// cannot fix are marked non-retryable so they go straight to the DLQ.
func (c *WebhookMessageController) HandleMessage(ctx context.Context, key, value []byte) error {
	env, err := messaging.DecodeEnvelope(value)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to decode envelope",
			slog.String("key", string(key)), slog.Any("error", err))
		return messaging.NonRetryable(err)
	}

	ctx = correlation.WithEventID(ctx, env.EventID)
	c.logger.DebugContext(ctx, "Processing webhook message",
		slog.String("event_id", env.EventID),
		slog.String("key", env.Key),
		slog.String("type", env.Type))

	event, err := webhook.EventFromJSON(env.Payload)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to decode webhook payload",
			slog.String("event_id", env.EventID), slog.Any("error", err))
		return messaging.NonRetryable(err)
	}

	if err := c.dispatcher.Dispatch(ctx, event); err != nil {
		if webhook.IsPermanent(err) {
			c.logger.WarnContext(ctx, "Webhook message rejected",
				slog.String("event_id", env.EventID),
				slog.String("event_type", event.EventType()),
				slog.Any("error", err))
			return messaging.NonRetryable(err)
		}

		c.logger.ErrorContext(ctx, "Failed to process webhook message",
			slog.String("event_id", env.EventID),
			slog.String("event_type", event.EventType()),
			slog.Any("error", err))
		return err
	}

	c.logger.InfoContext(ctx, "Webhook message processed",
		slog.String("event_id", env.EventID),
		slog.String("event_type", event.EventType()))

	return nil
}
