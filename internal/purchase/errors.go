package purchase

import (
	"errors"
	"fmt"
)

type FailureReason string

const (
	ReasonAuth             FailureReason = "AUTH"
	ReasonOrderCreation    FailureReason = "ORDER_CREATION"
	ReasonAlreadyPurchased FailureReason = "ALREADY_PURCHASED"
	ReasonDiscountInvalid  FailureReason = "DISCOUNT_INVALID"
	ReasonPaymentSession   FailureReason = "PAYMENT_SESSION"
	ReasonCardDeclined     FailureReason = "CARD_DECLINED"
	ReasonVerification     FailureReason = "VERIFICATION"
)

// FlowError is the normalized form every failure takes before it reaches the
// outcome dispatcher. Raw transport errors never leave the orchestrator.
type FlowError struct {
	Reason FailureReason
	Err    error
}

func (e *FlowError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *FlowError) Unwrap() error { return e.Err }

// Fail wraps err with the given reason unless err already carries one; an
// upstream client that mapped a structured error code wins over the stage
// default.
func Fail(reason FailureReason, err error) *FlowError {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe
	}
	return &FlowError{Reason: reason, Err: err}
}

var (
	// ErrAttemptExpired marks a resume with an unknown or expired
	// continuation token: the silent cancel of an abandoned sign-in.
	ErrAttemptExpired = errors.New("purchase attempt expired or unknown")

	// ErrBadCredentials and ErrUserExists are the two distinguishable
	// identity-store login conditions; UserExists flips sign-up to sign-in.
	ErrBadCredentials = errors.New("invalid email or password")
	ErrUserExists     = errors.New("account already exists for this email")

	errConflictingPayment = errors.New("both a saved instrument and a card token were supplied")
	errUnknownInstrument  = errors.New("selected instrument is not on file for this buyer")
	errChargeNotCaptured  = errors.New("charge was not captured")
	errOrderNotConfirmed  = errors.New("payment captured but order not confirmed")
)
