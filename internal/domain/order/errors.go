package order

import "errors"

var (
	ErrInvalidStatus      = errors.New("invalid payment status")
	ErrEventAlreadyStored = errors.New("event already stored")
	ErrInvalidCursor      = errors.New("invalid cursor")

	// ErrTransactionIDTaken is returned when a transaction id is already bound
	// to a different order.
	ErrTransactionIDTaken = errors.New("transaction id bound to another order")
)
