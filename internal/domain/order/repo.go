package order

import "context"

//go:generate mockgen -source repo.go -destination mock_repo.go -package order

type OrderRepo interface {
	TxOrderRepo
	InTransaction(ctx context.Context, fn func(repo TxOrderRepo) error) error
}

// TxOrderRepo lookups return (nil, nil) when nothing matches.
type TxOrderRepo interface {
	FindOrderByID(ctx context.Context, id string) (*Order, error)
	FindOrderByTransactionID(ctx context.Context, transactionID string) (*Order, error)
	FindOrderByPayPalOrderID(ctx context.Context, payPalOrderID string) (*Order, error)
	FindPayPalOrder(ctx context.Context, orderID, payPalOrderID string) (*PayPalOrder, error)

	// UpdatePaymentStatus writes next only while the stored status equals
	// expected. It reports whether a row changed.
	UpdatePaymentStatus(ctx context.Context, orderID string, expected, next PaymentStatus) (bool, error)
	SetTransactionID(ctx context.Context, orderID, transactionID string) error
	UpdatePayPalOrderStatus(ctx context.Context, orderID, payPalOrderID, status string) error
}
