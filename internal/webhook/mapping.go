package webhook

import (
	"maps"
	"slices"
)

// Supported event types.
const (
	EventCheckoutOrderApproved   = "CHECKOUT.ORDER.APPROVED"
	EventCheckoutOrderCompleted  = "CHECKOUT.ORDER.COMPLETED"
	EventPaymentCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"
	EventPaymentCaptureDenied    = "PAYMENT.CAPTURE.DENIED"
	EventPaymentCaptureRefunded  = "PAYMENT.CAPTURE.REFUNDED"
)

// EventHandlerMapping routes event types to handler constructors. Supporting a
// new event type means adding an entry here.
var EventHandlerMapping = map[string]HandlerFactory{
	EventCheckoutOrderApproved:   NewCheckoutOrderApprovedHandler,
	EventCheckoutOrderCompleted:  NewCheckoutOrderCompletedHandler,
	EventPaymentCaptureCompleted: NewPaymentCaptureCompletedHandler,
	EventPaymentCaptureDenied:    NewPaymentCaptureDeniedHandler,
	EventPaymentCaptureRefunded:  NewPaymentCaptureRefundedHandler,
}

// Registry is a read-only copy of a mapping, safe for concurrent lookups.
type Registry struct {
	factories map[string]HandlerFactory
}

func NewRegistry(mapping map[string]HandlerFactory) *Registry {
	return &Registry{factories: maps.Clone(mapping)}
}

func DefaultRegistry() *Registry {
	return NewRegistry(EventHandlerMapping)
}

func (r *Registry) Lookup(eventType string) (HandlerFactory, bool) {
	f, ok := r.factories[eventType]
	return f, ok
}

func (r *Registry) EventTypes() []string {
	return slices.Sorted(maps.Keys(r.factories))
}
