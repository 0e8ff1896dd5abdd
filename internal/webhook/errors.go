package webhook

import (
	"errors"
	"fmt"
)

var (
	ErrHandlerNotFound      = errors.New("webhook handler not found")
	ErrMandatoryDataMissing = errors.New("mandatory webhook data missing")
	ErrOrderNotFound        = errors.New("order not found for webhook")
	ErrMalformedEvent       = errors.New("malformed webhook event")
)

// HandlerNotFoundError is returned for event types without a registered handler.
type HandlerNotFoundError struct {
	EventType string
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("no handler registered for event type %q", e.EventType)
}

func (e *HandlerNotFoundError) Is(target error) bool {
	return target == ErrHandlerNotFound
}

type MandatoryDataMissingError struct {
	EventType string
	Field     string
}

func (e *MandatoryDataMissingError) Error() string {
	return fmt.Sprintf("mandatory data missing in %s webhook: %s", e.EventType, e.Field)
}

func (e *MandatoryDataMissingError) Is(target error) bool {
	return target == ErrMandatoryDataMissing
}

// OrderNotFoundError means neither the transaction id nor the PayPal order id
// matched a local order.
type OrderNotFoundError struct {
	TransactionID string
	PayPalOrderID string
}

func (e *OrderNotFoundError) Error() string {
	switch {
	case e.TransactionID != "" && e.PayPalOrderID != "":
		return fmt.Sprintf("no order found for PayPal transaction id %q or PayPal order id %q", e.TransactionID, e.PayPalOrderID)
	case e.TransactionID != "":
		return fmt.Sprintf("no order found for PayPal transaction id %q", e.TransactionID)
	default:
		return fmt.Sprintf("no order found for PayPal order id %q", e.PayPalOrderID)
	}
}

func (e *OrderNotFoundError) Is(target error) bool {
	return target == ErrOrderNotFound
}

// RecoverableError marks a handler failure the dispatcher logs and drops.
type RecoverableError struct {
	Op  string
	Err error
}

func (e *RecoverableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RecoverableError) Unwrap() error {
	return e.Err
}

func Recoverable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RecoverableError{Op: op, Err: err}
}

// IsPermanent reports whether redelivering the same event cannot succeed.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrHandlerNotFound) ||
		errors.Is(err, ErrMandatoryDataMissing) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrMalformedEvent)
}
