package webhook

import (
	"context"
	"fmt"

	"PayPalReconciler/internal/messaging"
)

// AsyncProcessor publishes events to the broker. The consumer side dispatches
// them with the same Dispatcher.
type AsyncProcessor struct {
	publisher messaging.Publisher
	registry  *Registry
}

func NewAsyncProcessor(publisher messaging.Publisher, registry *Registry) *AsyncProcessor {
	return &AsyncProcessor{
		publisher: publisher,
		registry:  registry,
	}
}

// Process rejects unknown event types before publishing so the provider sees
// the same error as in sync mode.
func (p *AsyncProcessor) Process(ctx context.Context, event Event) error {
	if _, ok := p.registry.Lookup(event.EventType()); !ok {
		return &HandlerNotFoundError{EventType: event.EventType()}
	}

	envelope, err := messaging.NewEnvelope(partitionKey(event), event.EventType(), event.Payload(),
		messaging.WithEventID(event.ID()))
	if err != nil {
		return fmt.Errorf("create envelope: %w", err)
	}

	return p.publisher.Publish(ctx, envelope)
}

// partitionKey keeps events of one PayPal order on one partition.
func partitionKey(event Event) string {
	r := event.Resource()
	if id := relatedOrderID(r); id != "" {
		return id
	}
	if id := r.String("id"); id != "" {
		return id
	}
	return event.ID()
}
