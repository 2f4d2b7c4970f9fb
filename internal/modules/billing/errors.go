package billing

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("invoice not found")
	// ErrInvalidStatusTransition means the booking's status does not
	// permit the operation (invoicing a reserved booking, charging a
	// completed one).
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	// ErrPaymentOverflow means the payment would push the settled sum
	// past the invoice grand total. The invoice is left untouched.
	ErrPaymentOverflow = errors.New("payment exceeds balance due")
)
