// Package memory keeps orders and their audit events in process memory.
// It backs STORAGE_DRIVER=memory and handler tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"PayPalReconciler/internal/domain/order"
)

var _ order.OrderRepo = (*OrderRepo)(nil)

type OrderRepo struct {
	mu    sync.Mutex
	state state
	now   func() time.Time
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{
		state: state{
			orders:       map[string]order.Order{},
			byTxID:       map[string]string{},
			payPalOrders: map[string]order.PayPalOrder{},
		},
		now: time.Now,
	}
}

// Seed inserts or replaces an order together with its PayPal order mirrors.
func (r *OrderRepo) Seed(o order.Order, mirrors ...order.PayPalOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = order.PaymentStatusPending
	}

	if prev, ok := r.state.orders[o.ID]; ok && prev.TransactionID != "" {
		delete(r.state.byTxID, prev.TransactionID)
	}
	r.state.orders[o.ID] = o
	if o.TransactionID != "" {
		r.state.byTxID[o.TransactionID] = o.ID
	}

	for _, m := range mirrors {
		m.OrderID = o.ID
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = now
		}
		r.state.payPalOrders[m.PayPalOrderID] = m
	}
}

func (r *OrderRepo) InTransaction(ctx context.Context, fn func(repo order.TxOrderRepo) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.state.clone()
	if err := fn(&txView{state: &r.state, now: r.now}); err != nil {
		r.state = snapshot
		return err
	}
	return nil
}

func (r *OrderRepo) FindOrderByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().FindOrderByID(ctx, id)
}

func (r *OrderRepo) FindOrderByTransactionID(ctx context.Context, transactionID string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().FindOrderByTransactionID(ctx, transactionID)
}

func (r *OrderRepo) FindOrderByPayPalOrderID(ctx context.Context, payPalOrderID string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().FindOrderByPayPalOrderID(ctx, payPalOrderID)
}

func (r *OrderRepo) FindPayPalOrder(ctx context.Context, orderID, payPalOrderID string) (*order.PayPalOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().FindPayPalOrder(ctx, orderID, payPalOrderID)
}

func (r *OrderRepo) UpdatePaymentStatus(ctx context.Context, orderID string, expected, next order.PaymentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().UpdatePaymentStatus(ctx, orderID, expected, next)
}

func (r *OrderRepo) SetTransactionID(ctx context.Context, orderID, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().SetTransactionID(ctx, orderID, transactionID)
}

func (r *OrderRepo) UpdatePayPalOrderStatus(ctx context.Context, orderID, payPalOrderID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view().UpdatePayPalOrderStatus(ctx, orderID, payPalOrderID, status)
}

func (r *OrderRepo) view() *txView {
	return &txView{state: &r.state, now: r.now}
}

type state struct {
	orders       map[string]order.Order
	byTxID       map[string]string
	payPalOrders map[string]order.PayPalOrder // keyed by PayPal order id
}

func (s state) clone() state {
	return state{
		orders:       maps.Clone(s.orders),
		byTxID:       maps.Clone(s.byTxID),
		payPalOrders: maps.Clone(s.payPalOrders),
	}
}

// txView operates on state without locking; callers hold OrderRepo.mu.
type txView struct {
	state *state
	now   func() time.Time
}

func (v *txView) FindOrderByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := v.state.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (v *txView) FindOrderByTransactionID(ctx context.Context, transactionID string) (*order.Order, error) {
	id, ok := v.state.byTxID[transactionID]
	if !ok {
		return nil, nil
	}
	return v.FindOrderByID(ctx, id)
}

func (v *txView) FindOrderByPayPalOrderID(ctx context.Context, payPalOrderID string) (*order.Order, error) {
	m, ok := v.state.payPalOrders[payPalOrderID]
	if !ok {
		return nil, nil
	}
	return v.FindOrderByID(ctx, m.OrderID)
}

func (v *txView) FindPayPalOrder(_ context.Context, orderID, payPalOrderID string) (*order.PayPalOrder, error) {
	if payPalOrderID != "" {
		m, ok := v.state.payPalOrders[payPalOrderID]
		if !ok || m.OrderID != orderID {
			return nil, nil
		}
		return &m, nil
	}

	var latest *order.PayPalOrder
	for _, m := range v.state.payPalOrders {
		if m.OrderID != orderID {
			continue
		}
		if latest == nil || m.UpdatedAt.After(latest.UpdatedAt) {
			latest = &m
		}
	}
	return latest, nil
}

func (v *txView) UpdatePaymentStatus(_ context.Context, orderID string, expected, next order.PaymentStatus) (bool, error) {
	o, ok := v.state.orders[orderID]
	if !ok || o.PaymentStatus != expected {
		return false, nil
	}
	o.PaymentStatus = next
	o.UpdatedAt = v.now().UTC()
	v.state.orders[orderID] = o
	return true, nil
}

func (v *txView) SetTransactionID(_ context.Context, orderID, transactionID string) error {
	if owner, ok := v.state.byTxID[transactionID]; ok && owner != orderID {
		return order.ErrTransactionIDTaken
	}
	o, ok := v.state.orders[orderID]
	if !ok || o.TransactionID != "" {
		return nil
	}
	o.TransactionID = transactionID
	o.UpdatedAt = v.now().UTC()
	v.state.orders[orderID] = o
	v.state.byTxID[transactionID] = orderID
	return nil
}

func (v *txView) UpdatePayPalOrderStatus(_ context.Context, orderID, payPalOrderID, status string) error {
	m, ok := v.state.payPalOrders[payPalOrderID]
	if !ok || m.OrderID != orderID {
		return nil
	}
	m.Status = status
	m.UpdatedAt = v.now().UTC()
	v.state.payPalOrders[payPalOrderID] = m
	return nil
}
