package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingIdentifier indicates that neither a user id nor a customer id
	// was supplied where at least one is required
	ErrMissingIdentifier = errors.New("either userId or customerId must be provided")

	// ErrGuardianMetadataMissing indicates that a payment carries no guardianId
	// in its metadata, so it cannot be released
	ErrGuardianMetadataMissing = errors.New("guardianId missing from payment metadata")
)

// PaymentStateError is returned when an operation requires the payment to be
// in a specific state and it is not (e.g. releasing a non-succeeded payment)
type PaymentStateError struct {
	PaymentID string
	Status    string
}

func (e *PaymentStateError) Error() string {
	return fmt.Sprintf("payment %s must be succeeded to release funds, current status is %q", e.PaymentID, e.Status)
}

// NewPaymentStateError creates a new PaymentStateError
func NewPaymentStateError(paymentID, status string) *PaymentStateError {
	return &PaymentStateError{PaymentID: paymentID, Status: status}
}
