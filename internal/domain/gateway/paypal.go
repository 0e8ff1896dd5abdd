package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source paypal.go -destination mock_paypal.go -package gateway

// PayPal is the subset of the PayPal Orders v2 API the reconciler calls.
type PayPal interface {
	CapturePaymentForOrder(ctx context.Context, req CaptureRequest) (OrderResponse, error)
	ShowOrderDetails(ctx context.Context, payPalOrderID string) (OrderResponse, error)
}

// Provider vocabulary.
const (
	IntentCapture   = "CAPTURE"
	IntentAuthorize = "AUTHORIZE"

	OrderStatusCreated             = "CREATED"
	OrderStatusSaved               = "SAVED"
	OrderStatusApproved            = "APPROVED"
	OrderStatusVoided              = "VOIDED"
	OrderStatusCompleted           = "COMPLETED"
	OrderStatusPayerActionRequired = "PAYER_ACTION_REQUIRED"

	CaptureStatusCompleted = "COMPLETED"
	CaptureStatusDeclined  = "DECLINED"
	CaptureStatusPending   = "PENDING"
)

type CaptureRequest struct {
	PayPalOrderID   string
	PaymentMethodID string
	// RequestID is sent as PayPal-Request-Id so retried captures are idempotent.
	RequestID string
}

type OrderResponse struct {
	ID            string         `json:"id"`
	Intent        string         `json:"intent,omitempty"`
	Status        string         `json:"status"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units,omitempty"`
}

type PurchaseUnit struct {
	ReferenceID string    `json:"reference_id,omitempty"`
	CustomID    string    `json:"custom_id,omitempty"`
	InvoiceID   string    `json:"invoice_id,omitempty"`
	Amount      *Money    `json:"amount,omitempty"`
	Payments    *Payments `json:"payments,omitempty"`
}

type Payments struct {
	Captures []Capture `json:"captures,omitempty"`
}

type Capture struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Amount       *Money `json:"amount,omitempty"`
	FinalCapture bool   `json:"final_capture,omitempty"`
}

type Money struct {
	CurrencyCode string          `json:"currency_code"`
	Value        decimal.Decimal `json:"value"`
}

// FirstCapture returns purchase_units[0].payments.captures[0].
func (r OrderResponse) FirstCapture() (Capture, bool) {
	if len(r.PurchaseUnits) == 0 || r.PurchaseUnits[0].Payments == nil {
		return Capture{}, false
	}
	captures := r.PurchaseUnits[0].Payments.Captures
	if len(captures) == 0 {
		return Capture{}, false
	}
	return captures[0], true
}

// CapturedTotal sums completed captures across purchase units.
func (r OrderResponse) CapturedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, pu := range r.PurchaseUnits {
		if pu.Payments == nil {
			continue
		}
		for _, c := range pu.Payments.Captures {
			if c.Status == CaptureStatusCompleted && c.Amount != nil {
				total = total.Add(c.Amount.Value)
			}
		}
	}
	return total
}

// AcceptsAnotherPaymentMethod reports whether the payer can still complete
// the order with a different funding source after a denied capture.
func (r OrderResponse) AcceptsAnotherPaymentMethod() bool {
	switch r.Status {
	case OrderStatusCreated, OrderStatusApproved, OrderStatusPayerActionRequired:
		return true
	default:
		return false
	}
}
