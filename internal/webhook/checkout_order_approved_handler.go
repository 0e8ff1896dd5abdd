package webhook

import (
	"context"

	"PayPalReconciler/internal/domain/gateway"
	"PayPalReconciler/internal/domain/order"
)

// CheckoutOrderApprovedHandler captures approved orders with intent CAPTURE.
// It never changes the local status; PAYMENT.CAPTURE.COMPLETED or
// CHECKOUT.ORDER.COMPLETED does that.
type CheckoutOrderApprovedHandler struct {
	HandlerBase
}

func NewCheckoutOrderApprovedHandler(deps Deps) Handler {
	return &CheckoutOrderApprovedHandler{
		HandlerBase: newHandlerBase(deps, EventCheckoutOrderApproved, extractors{
			transactionID: firstCaptureID,
		}),
	}
}

func (h *CheckoutOrderApprovedHandler) Handle(ctx context.Context, event Event) error {
	if err := h.Validate(event); err != nil {
		return err
	}

	wc, err := h.GetOrder(ctx, event)
	if err != nil {
		return err
	}

	r := event.Resource()
	h.SyncPayPalOrderStatus(ctx, wc, h.StatusFromResource(r))

	if !h.needsCapture(wc, r) {
		h.Logger.DebugContext(ctx, "Order does not need a capture",
			"order_id", wc.Order.ID,
			"paypal_order_id", wc.PayPalOrderID,
			"intent", r.String("intent"),
			"payment_status", wc.Order.PaymentStatus)
		return nil
	}

	h.capture(ctx, wc)
	return nil
}

func (h *CheckoutOrderApprovedHandler) needsCapture(wc *WebhookContext, r Resource) bool {
	if r.String("intent") != gateway.IntentCapture {
		return false
	}
	if isOrderCompleted(r) {
		return false
	}
	return wc.Order.PaymentStatus == order.PaymentStatusPending
}

func (h *CheckoutOrderApprovedHandler) capture(ctx context.Context, wc *WebhookContext) {
	req := gateway.CaptureRequest{
		PayPalOrderID: wc.PayPalOrderID,
		RequestID:     "capture-" + wc.PayPalOrderID,
	}
	if wc.PayPalOrder != nil {
		req.PaymentMethodID = wc.PayPalOrder.PaymentMethodID
	}

	var captured gateway.OrderResponse
	res := h.FollowUp(ctx, wc, "capture", func(ctx context.Context) error {
		resp, err := h.PayPal.CapturePaymentForOrder(ctx, req)
		if gateway.IsAlreadyCaptured(err) {
			h.Logger.InfoContext(ctx, "PayPal order already captured", "paypal_order_id", wc.PayPalOrderID)
			return nil
		}
		if err != nil {
			return err
		}
		captured = resp
		return nil
	})
	if !res.OK() {
		h.RecordEvent(ctx, wc, order.OrderEventCaptureFailed, map[string]any{
			"paypal_order_id": wc.PayPalOrderID,
			"error":           res.Err.Error(),
		})
		return
	}

	data := map[string]any{
		"paypal_order_id": wc.PayPalOrderID,
		"order_status":    captured.Status,
	}
	if c, ok := captured.FirstCapture(); ok {
		data["capture_id"] = c.ID
		data["capture_status"] = c.Status
		if c.ID != "" && wc.Order.TransactionID == "" {
			h.bindTransactionID(ctx, wc, c.ID)
		}
	}
	if total := captured.CapturedTotal(); total.IsPositive() {
		data["captured_total"] = total.String()
	}
	h.RecordEvent(ctx, wc, order.OrderEventCaptureRequested, data)
}

// isOrderCompleted reports whether an order resource is COMPLETED and its
// first capture, when present, is COMPLETED too.
func isOrderCompleted(r Resource) bool {
	if r.String("status") != gateway.OrderStatusCompleted {
		return false
	}
	if status, ok := firstCaptureStatus(r); ok {
		return status == gateway.CaptureStatusCompleted
	}
	return true
}
