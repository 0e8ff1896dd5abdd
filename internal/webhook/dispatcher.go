package webhook

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"PayPalReconciler/pkg/correlation"
	"PayPalReconciler/pkg/metrics"
)

// Dispatcher routes events to the handler registered for their type.
type Dispatcher struct {
	registry *Registry
	deps     Deps
}

func NewDispatcher(registry *Registry, deps Deps) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		deps:     deps.withDefaults(),
	}
}

// Dispatch returns *HandlerNotFoundError for unknown types and any fatal
// handler error. Recoverable handler errors are logged and dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) error {
	eventType := event.EventType()
	ctx = correlation.WithEventID(ctx, event.ID())

	factory, ok := d.registry.Lookup(eventType)
	if !ok {
		// Unknown types share one label to bound cardinality.
		metrics.WebhookEventsTotal.WithLabelValues("unknown", metrics.OutcomeUnsupported).Inc()
		return &HandlerNotFoundError{EventType: eventType}
	}

	d.deps.Logger.DebugContext(ctx, "Dispatching webhook event", "event_type", eventType)

	start := time.Now()
	err := factory(d.deps).Handle(ctx, event)
	metrics.WebhookDispatchDuration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())

	var recoverable *RecoverableError
	switch {
	case err == nil:
		metrics.WebhookEventsTotal.WithLabelValues(eventType, metrics.OutcomeProcessed).Inc()
		return nil
	case errors.As(err, &recoverable):
		metrics.WebhookEventsTotal.WithLabelValues(eventType, metrics.OutcomeRecovered).Inc()
		d.deps.Logger.WarnContext(ctx, "Recoverable webhook error ignored",
			"event_type", eventType,
			slog.Any("error", err))
		return nil
	default:
		metrics.WebhookEventsTotal.WithLabelValues(eventType, metrics.OutcomeFailed).Inc()
		return err
	}
}
