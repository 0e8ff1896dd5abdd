package order

import (
	"fmt"
	"slices"
	"time"
)

// Order is the local record a webhook is reconciled against.
type Order struct {
	ID            string        `json:"order_id"`
	TransactionID string        `json:"paypal_transaction_id,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

var AvailablePaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

func NewPaymentStatus(raw string) (PaymentStatus, error) {
	if slices.Contains(AvailablePaymentStatuses, PaymentStatus(raw)) {
		return PaymentStatus(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// CanBeUpdatedTo reports whether s -> next is a legal transition.
// Failed and refunded are terminal.
func (s PaymentStatus) CanBeUpdatedTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return slices.Contains([]PaymentStatus{PaymentStatusPaid, PaymentStatusFailed}, next)
	case PaymentStatusPaid:
		return slices.Contains([]PaymentStatus{PaymentStatusFailed, PaymentStatusRefunded}, next)
	default:
		return false
	}
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusFailed || s == PaymentStatusRefunded
}

// PaymentStatusFromProvider maps PayPal order, capture and refund status
// vocabulary onto local payment statuses.
func PaymentStatusFromProvider(providerStatus string) (PaymentStatus, bool) {
	switch providerStatus {
	case "COMPLETED":
		return PaymentStatusPaid, true
	case "DENIED", "DECLINED", "FAILED":
		return PaymentStatusFailed, true
	case "REFUNDED":
		return PaymentStatusRefunded, true
	case "PENDING":
		return PaymentStatusPending, true
	default:
		return "", false
	}
}

// PayPalOrder mirrors the provider-side order bound to a local order.
type PayPalOrder struct {
	OrderID         string    `json:"order_id"`
	PayPalOrderID   string    `json:"paypal_order_id"`
	PaymentMethodID string    `json:"payment_method_id"`
	Status          string    `json:"status"`
	UpdatedAt       time.Time `json:"updated_at"`
}
