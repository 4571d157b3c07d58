package stripegw

import (
	"github.com/stripe/stripe-go/v75"

	"storefront-app/internal/purchase"
)

// NormalizeIntentStatus maps Stripe's payment intent statuses onto the three
// session states the purchase flow branches on.
func NormalizeIntentStatus(s stripe.PaymentIntentStatus) purchase.SessionStatus {
	switch s {
	case stripe.PaymentIntentStatusSucceeded:
		return purchase.SessionSuccess
	case stripe.PaymentIntentStatusRequiresAction:
		return purchase.SessionAuthorizationRequired
	default:
		// requires_confirmation, requires_payment_method, processing,
		// requires_capture: the charge is still in flight.
		return purchase.SessionAwaitingCapture
	}
}

// Captured reports whether a confirmed intent ended with the funds secured.
func Captured(s stripe.PaymentIntentStatus) bool {
	return s == stripe.PaymentIntentStatusSucceeded ||
		s == stripe.PaymentIntentStatusRequiresCapture
}
