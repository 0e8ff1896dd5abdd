package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"PayPalReconciler/internal/webhook"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	processor webhook.Processor
	async     bool
	logger    *slog.Logger
}

// NewWebhookHandler answers 202 instead of 200 when async is set, since the
// event has only been handed to the broker.
func NewWebhookHandler(processor webhook.Processor, async bool, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		processor: processor,
		async:     async,
		logger:    logger,
	}
}

// Receive handles POST /webhooks/paypal.
func (h *WebhookHandler) Receive(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cannot read request body"})
		return
	}

	event, err := webhook.EventFromJSON(body)
	if err != nil {
		h.logger.WarnContext(ctx, "Rejected malformed webhook", slog.Any("error", err))
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.processor.Process(ctx, event); err != nil {
		status := statusFor(err)
		attrs := []any{
			slog.String("event_type", event.EventType()),
			slog.String("event_id", event.ID()),
			slog.Int("status", status),
			slog.Any("error", err),
		}
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "Webhook processing failed", attrs...)
		} else {
			h.logger.WarnContext(ctx, "Webhook rejected", attrs...)
		}
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}

	if h.async {
		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, webhook.ErrMalformedEvent),
		errors.Is(err, webhook.ErrMandatoryDataMissing):
		return http.StatusBadRequest
	case errors.Is(err, webhook.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, webhook.ErrDeliveryInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
