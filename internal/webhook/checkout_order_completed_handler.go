package webhook

import (
	"context"

	"PayPalReconciler/internal/domain/gateway"
)

type CheckoutOrderCompletedHandler struct {
	HandlerBase
}

func NewCheckoutOrderCompletedHandler(deps Deps) Handler {
	return &CheckoutOrderCompletedHandler{
		HandlerBase: newHandlerBase(deps, EventCheckoutOrderCompleted, extractors{
			transactionID: firstCaptureID,
		}),
	}
}

func (h *CheckoutOrderCompletedHandler) Handle(ctx context.Context, event Event) error {
	if err := h.Validate(event); err != nil {
		return err
	}

	wc, err := h.GetOrder(ctx, event)
	if err != nil {
		return err
	}

	r := event.Resource()
	if !isOrderCompleted(r) {
		h.Logger.InfoContext(ctx, "Order not completed yet",
			"order_id", wc.Order.ID,
			"paypal_order_id", wc.PayPalOrderID,
			"status", h.StatusFromResource(r))
		h.SyncPayPalOrderStatus(ctx, wc, h.StatusFromResource(r))
		return nil
	}

	_, err = h.SetStatus(ctx, wc, gateway.OrderStatusCompleted)
	return err
}
