package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"PayPalReconciler/internal/domain/order"
	"PayPalReconciler/pkg/metrics"
)

// WebhookContext is the local state resolved for one event.
type WebhookContext struct {
	Event         Event
	Order         *order.Order
	PayPalOrder   *order.PayPalOrder
	PayPalOrderID string
	TransactionID string
}

// extractors let each handler say where identifiers live in its resource.
// Nil fields fall back to the defaults.
type extractors struct {
	payPalOrderID func(Resource) string
	transactionID func(Resource) string
	status        func(Resource) string
}

// HandlerBase holds the primitives shared by every handler. Concrete handlers
// embed it and compose their own Handle from these steps.
type HandlerBase struct {
	Deps
	eventType string
	extract   extractors
}

func newHandlerBase(deps Deps, eventType string, ex extractors) HandlerBase {
	if ex.payPalOrderID == nil {
		ex.payPalOrderID = func(r Resource) string { return r.String("id") }
	}
	if ex.transactionID == nil {
		ex.transactionID = func(Resource) string { return "" }
	}
	if ex.status == nil {
		ex.status = func(r Resource) string { return r.String("status") }
	}

	deps = deps.withDefaults()
	deps.Logger = deps.Logger.With("event_type", eventType)

	return HandlerBase{Deps: deps, eventType: eventType, extract: ex}
}

func (b *HandlerBase) EventType() string {
	return b.eventType
}

func (b *HandlerBase) PayPalOrderIDFromResource(r Resource) string {
	return b.extract.payPalOrderID(r)
}

func (b *HandlerBase) TransactionIDFromResource(r Resource) string {
	return b.extract.transactionID(r)
}

func (b *HandlerBase) StatusFromResource(r Resource) string {
	return b.extract.status(r)
}

// Validate checks the payload before any repository access.
func (b *HandlerBase) Validate(event Event) error {
	if !event.HasResource() {
		return &MandatoryDataMissingError{EventType: b.eventType, Field: "resource"}
	}

	r := event.Resource()
	if r.String("id") == "" {
		return &MandatoryDataMissingError{EventType: b.eventType, Field: "resource.id"}
	}
	if b.TransactionIDFromResource(r) == "" && b.PayPalOrderIDFromResource(r) == "" {
		return &MandatoryDataMissingError{EventType: b.eventType, Field: "transaction or order id"}
	}
	return nil
}

// GetOrder resolves the local order. The transaction id is tried first; the
// PayPal order id is used when there is no transaction id or it matches
// nothing, but only for orders not yet bound to a different transaction id.
// A newly observed transaction id is bound to an order without one.
func (b *HandlerBase) GetOrder(ctx context.Context, event Event) (*WebhookContext, error) {
	r := event.Resource()
	wc := &WebhookContext{
		Event:         event,
		TransactionID: b.TransactionIDFromResource(r),
		PayPalOrderID: b.PayPalOrderIDFromResource(r),
	}

	var err error
	if wc.TransactionID != "" {
		wc.Order, err = b.Orders.FindOrderByTransactionID(ctx, wc.TransactionID)
		if err != nil {
			return nil, fmt.Errorf("find order by transaction id: %w", err)
		}
	}
	if wc.Order == nil && wc.PayPalOrderID != "" {
		wc.Order, err = b.Orders.FindOrderByPayPalOrderID(ctx, wc.PayPalOrderID)
		if err != nil {
			return nil, fmt.Errorf("find order by paypal order id: %w", err)
		}
		// An order already settled under another capture is not this event's order.
		if wc.Order != nil && wc.TransactionID != "" &&
			wc.Order.TransactionID != "" && wc.Order.TransactionID != wc.TransactionID {
			b.Logger.InfoContext(ctx, "Order is bound to another transaction id",
				"order_id", wc.Order.ID,
				"bound_transaction_id", wc.Order.TransactionID,
				"transaction_id", wc.TransactionID)
			wc.Order = nil
		}
	}
	if wc.Order == nil {
		return nil, &OrderNotFoundError{TransactionID: wc.TransactionID, PayPalOrderID: wc.PayPalOrderID}
	}

	wc.PayPalOrder, err = b.Orders.FindPayPalOrder(ctx, wc.Order.ID, wc.PayPalOrderID)
	if err != nil {
		return nil, fmt.Errorf("find paypal order: %w", err)
	}
	if wc.PayPalOrderID == "" && wc.PayPalOrder != nil {
		wc.PayPalOrderID = wc.PayPalOrder.PayPalOrderID
	}

	if wc.TransactionID != "" && wc.Order.TransactionID == "" {
		b.bindTransactionID(ctx, wc, wc.TransactionID)
	}

	return wc, nil
}

func (b *HandlerBase) bindTransactionID(ctx context.Context, wc *WebhookContext, transactionID string) {
	err := b.Orders.SetTransactionID(ctx, wc.Order.ID, transactionID)
	if err != nil {
		b.Logger.WarnContext(ctx, "Failed to bind transaction id to order",
			"order_id", wc.Order.ID,
			"transaction_id", transactionID,
			slog.Any("error", err))
		return
	}
	wc.Order.TransactionID = transactionID
}

// SetStatus persists the local status mapped from providerStatus, but only
// when it differs from the stored one. Transitions the state machine forbids
// are ignored. The PayPal order mirror is updated in the same transaction.
// It reports whether a write happened.
func (b *HandlerBase) SetStatus(ctx context.Context, wc *WebhookContext, providerStatus string) (bool, error) {
	next, ok := order.PaymentStatusFromProvider(providerStatus)
	if !ok {
		b.Logger.DebugContext(ctx, "Provider status has no local mapping",
			"order_id", wc.Order.ID,
			"provider_status", providerStatus)
		return false, nil
	}

	var (
		from    order.PaymentStatus
		changed bool
	)
	err := b.Orders.InTransaction(ctx, func(tx order.TxOrderRepo) error {
		current, err := tx.FindOrderByID(ctx, wc.Order.ID)
		if err != nil {
			return fmt.Errorf("reload order: %w", err)
		}
		if current == nil {
			return &OrderNotFoundError{TransactionID: wc.TransactionID, PayPalOrderID: wc.PayPalOrderID}
		}

		from = current.PaymentStatus
		if from == next {
			return nil
		}
		if !from.CanBeUpdatedTo(next) {
			b.Logger.InfoContext(ctx, "Conflicting status ignored",
				"order_id", current.ID,
				"current_status", from,
				"requested_status", next)
			return nil
		}

		// A lost compare-and-swap means a concurrent delivery already moved
		// the order; that is not an error.
		changed, err = tx.UpdatePaymentStatus(ctx, current.ID, from, next)
		if err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		if !changed || wc.PayPalOrder == nil || wc.PayPalOrder.Status == providerStatus {
			return nil
		}

		err = tx.UpdatePayPalOrderStatus(ctx, current.ID, wc.PayPalOrder.PayPalOrderID, providerStatus)
		if err != nil {
			return fmt.Errorf("update paypal order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("set payment status: %w", err)
	}

	if !changed {
		return false, nil
	}

	wc.Order.PaymentStatus = next
	if wc.PayPalOrder != nil {
		wc.PayPalOrder.Status = providerStatus
	}
	metrics.StatusTransitionsTotal.WithLabelValues(string(from), string(next)).Inc()
	b.Logger.InfoContext(ctx, "Payment status changed",
		"order_id", wc.Order.ID,
		"from", from,
		"to", next)
	b.RecordEvent(ctx, wc, order.OrderEventStatusChanged, map[string]any{
		"from":            from,
		"to":              next,
		"provider_status": providerStatus,
	})
	return true, nil
}

// SideEffectResult is the outcome of a secondary operation.
type SideEffectResult struct {
	Op  string
	Err error
}

func (r SideEffectResult) OK() bool {
	return r.Err == nil
}

// FollowUp runs a secondary operation whose failure must not fail the event.
// Failures are logged and counted, then returned as a result value.
func (b *HandlerBase) FollowUp(ctx context.Context, wc *WebhookContext, op string, fn func(ctx context.Context) error) SideEffectResult {
	err := fn(ctx)
	if err == nil {
		return SideEffectResult{Op: op}
	}

	metrics.SideEffectFailuresTotal.WithLabelValues(b.eventType, op).Inc()
	b.Logger.WarnContext(ctx, fmt.Sprintf("Error during %s for PayPal order_id '%s'", b.eventType, wc.PayPalOrderID),
		"operation", op,
		"order_id", wc.Order.ID,
		"paypal_order_id", wc.PayPalOrderID,
		slog.Any("error", err))
	return SideEffectResult{Op: op, Err: err}
}

// SyncPayPalOrderStatus stores the provider order status on the mirror.
// Failures are logged only.
func (b *HandlerBase) SyncPayPalOrderStatus(ctx context.Context, wc *WebhookContext, status string) {
	if wc.PayPalOrder == nil || status == "" || wc.PayPalOrder.Status == status {
		return
	}

	err := b.Orders.UpdatePayPalOrderStatus(ctx, wc.Order.ID, wc.PayPalOrder.PayPalOrderID, status)
	if err != nil {
		b.Logger.WarnContext(ctx, "Failed to update PayPal order mirror",
			"order_id", wc.Order.ID,
			"paypal_order_id", wc.PayPalOrder.PayPalOrderID,
			slog.Any("error", err))
		return
	}
	wc.PayPalOrder.Status = status
}

// RecordEvent appends an audit record. It never fails the dispatch.
func (b *HandlerBase) RecordEvent(ctx context.Context, wc *WebhookContext, kind order.OrderEventKind, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["event_type"] = b.eventType

	raw, err := json.Marshal(data)
	if err != nil {
		b.Logger.ErrorContext(ctx, "Failed to encode order event", "kind", kind, slog.Any("error", err))
		return
	}

	_, err = b.Events.CreateOrderEvent(ctx, order.NewOrderEvent{
		OrderID:         wc.Order.ID,
		Kind:            kind,
		ProviderEventID: wc.Event.ID(),
		Data:            raw,
		CreatedAt:       time.Now().UTC(),
	})
	switch {
	case errors.Is(err, order.ErrEventAlreadyStored):
		b.Logger.DebugContext(ctx, "Order event already stored", "order_id", wc.Order.ID, "kind", kind)
	case err != nil:
		b.Logger.WarnContext(ctx, "Failed to store order event",
			"order_id", wc.Order.ID,
			"kind", kind,
			slog.Any("error", err))
	}
}

// firstCaptureID reads purchase_units[0].payments.captures[0].id from an
// order resource, falling back to payments.captures[0].id.
func firstCaptureID(r Resource) string {
	if id := r.String("purchase_units", 0, "payments", "captures", 0, "id"); id != "" {
		return id
	}
	return r.String("payments", "captures", 0, "id")
}

func firstCaptureStatus(r Resource) (string, bool) {
	v, ok := r.Lookup("purchase_units", 0, "payments", "captures", 0, "status")
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, true
}

// relatedOrderID reads the PayPal order id from a capture or refund resource.
func relatedOrderID(r Resource) string {
	return r.String("supplementary_data", "related_ids", "order_id")
}
