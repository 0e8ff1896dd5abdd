package webhook

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

const (
	refundStatusCompleted  = "COMPLETED"
	providerStatusRefunded = "REFUNDED"
)

// PaymentCaptureRefundedHandler handles refund resources. The refunded
// capture id is the last segment of the "up" link. Partial refunds also move
// the order to refunded.
type PaymentCaptureRefundedHandler struct {
	HandlerBase
}

func NewPaymentCaptureRefundedHandler(deps Deps) Handler {
	return &PaymentCaptureRefundedHandler{
		HandlerBase: newHandlerBase(deps, EventPaymentCaptureRefunded, extractors{
			payPalOrderID: relatedOrderID,
			transactionID: func(r Resource) string { return r.LinkID("up") },
		}),
	}
}

func (h *PaymentCaptureRefundedHandler) Handle(ctx context.Context, event Event) error {
	if err := h.Validate(event); err != nil {
		return err
	}

	wc, err := h.GetOrder(ctx, event)
	if err != nil {
		return err
	}

	r := event.Resource()
	if status := h.StatusFromResource(r); status != refundStatusCompleted {
		h.Logger.InfoContext(ctx, "Refund not completed",
			"order_id", wc.Order.ID,
			"refund_id", r.String("id"),
			"status", status)
		return nil
	}

	changed, err := h.SetStatus(ctx, wc, providerStatusRefunded)
	if err != nil {
		return err
	}
	if changed {
		h.Logger.InfoContext(ctx, "Order refunded",
			"order_id", wc.Order.ID,
			"refund_id", r.String("id"),
			slog.String("amount", refundAmount(r)),
			"currency", r.String("amount", "currency_code"))
	}
	return nil
}

func refundAmount(r Resource) string {
	v, ok := r.Lookup("amount", "value")
	if !ok {
		return ""
	}
	raw, ok := v.(string)
	if !ok {
		return ""
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return ""
	}
	return amount.StringFixed(2)
}
