package webhook

import "context"

// PaymentCaptureCompletedHandler marks the order paid once a capture
// completes. The resource is a capture: resource.id is the transaction id.
type PaymentCaptureCompletedHandler struct {
	HandlerBase
}

func NewPaymentCaptureCompletedHandler(deps Deps) Handler {
	return &PaymentCaptureCompletedHandler{
		HandlerBase: newHandlerBase(deps, EventPaymentCaptureCompleted, extractors{
			payPalOrderID: relatedOrderID,
			transactionID: func(r Resource) string { return r.String("id") },
		}),
	}
}

func (h *PaymentCaptureCompletedHandler) Handle(ctx context.Context, event Event) error {
	if err := h.Validate(event); err != nil {
		return err
	}

	wc, err := h.GetOrder(ctx, event)
	if err != nil {
		return err
	}

	_, err = h.SetStatus(ctx, wc, h.StatusFromResource(event.Resource()))
	return err
}
