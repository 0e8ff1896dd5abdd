package webhook

import (
	"context"
	"log/slog"

	"PayPalReconciler/internal/domain/gateway"
	"PayPalReconciler/internal/domain/order"
)

type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// HandlerFactory builds a fresh handler for one dispatch.
type HandlerFactory func(deps Deps) Handler

// Deps are the collaborators shared by all handlers.
type Deps struct {
	Orders order.OrderRepo
	PayPal gateway.PayPal
	Events order.EventSink
	Logger *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Events == nil {
		d.Events = order.NopEventSink{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return d
}
