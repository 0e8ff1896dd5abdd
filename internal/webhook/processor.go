package webhook

import "context"

// Processor accepts a webhook event at the transport edge. Implementations
// either dispatch in-process or hand the event to a broker.
type Processor interface {
	Process(ctx context.Context, event Event) error
}

type EventDispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

// SyncProcessor dispatches in the request goroutine.
type SyncProcessor struct {
	dispatcher EventDispatcher
	guard      *DeliveryGuard
}

type SyncOption func(*SyncProcessor)

// WithDeliveryGuard skips redeliveries of events that were already processed.
func WithDeliveryGuard(guard *DeliveryGuard) SyncOption {
	return func(p *SyncProcessor) {
		p.guard = guard
	}
}

func NewSyncProcessor(dispatcher EventDispatcher, opts ...SyncOption) *SyncProcessor {
	p := &SyncProcessor{dispatcher: dispatcher}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *SyncProcessor) Process(ctx context.Context, event Event) error {
	if p.guard == nil {
		return p.dispatcher.Dispatch(ctx, event)
	}
	return p.guard.Run(ctx, event, p.dispatcher.Dispatch)
}
