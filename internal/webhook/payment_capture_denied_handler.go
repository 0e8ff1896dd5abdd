package webhook

import (
	"context"

	"PayPalReconciler/internal/domain/gateway"
	"PayPalReconciler/internal/domain/order"
)

const providerStatusDenied = "DENIED"

// PaymentCaptureDeniedHandler marks the order failed, then asks PayPal
// whether the payer can still finish the order with another funding source.
type PaymentCaptureDeniedHandler struct {
	HandlerBase
}

func NewPaymentCaptureDeniedHandler(deps Deps) Handler {
	return &PaymentCaptureDeniedHandler{
		HandlerBase: newHandlerBase(deps, EventPaymentCaptureDenied, extractors{
			payPalOrderID: relatedOrderID,
			transactionID: func(r Resource) string { return r.String("id") },
		}),
	}
}

func (h *PaymentCaptureDeniedHandler) Handle(ctx context.Context, event Event) error {
	if err := h.Validate(event); err != nil {
		return err
	}

	wc, err := h.GetOrder(ctx, event)
	if err != nil {
		return err
	}

	if _, err = h.SetStatus(ctx, wc, providerStatusDenied); err != nil {
		return err
	}

	h.checkRemediation(ctx, wc)
	return nil
}

// checkRemediation never fails the event. When the order details cannot be
// read no verdict is made and remediation_skipped is recorded.
func (h *PaymentCaptureDeniedHandler) checkRemediation(ctx context.Context, wc *WebhookContext) {
	if wc.PayPalOrderID == "" {
		h.Logger.InfoContext(ctx, "Remediation skipped, PayPal order id unknown", "order_id", wc.Order.ID)
		h.RecordEvent(ctx, wc, order.OrderEventRemediationSkipped, map[string]any{
			"reason": "paypal order id unknown",
		})
		return
	}

	var details gateway.OrderResponse
	res := h.FollowUp(ctx, wc, "show_order_details", func(ctx context.Context) error {
		var err error
		details, err = h.PayPal.ShowOrderDetails(ctx, wc.PayPalOrderID)
		return err
	})
	if !res.OK() {
		h.RecordEvent(ctx, wc, order.OrderEventRemediationSkipped, map[string]any{
			"paypal_order_id": wc.PayPalOrderID,
			"error":           res.Err.Error(),
		})
		return
	}

	h.SyncPayPalOrderStatus(ctx, wc, details.Status)

	acceptsAnother := details.AcceptsAnotherPaymentMethod()
	h.Logger.InfoContext(ctx, "Remediation checked",
		"order_id", wc.Order.ID,
		"paypal_order_id", wc.PayPalOrderID,
		"remote_status", details.Status,
		"accepts_another_payment_method", acceptsAnother)
	h.RecordEvent(ctx, wc, order.OrderEventRemediationChecked, map[string]any{
		"paypal_order_id":                wc.PayPalOrderID,
		"remote_status":                  details.Status,
		"accepts_another_payment_method": acceptsAnother,
	})
}
