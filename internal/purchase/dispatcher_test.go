package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func successOutcome(pt ProductType, vr VerificationResult) *Outcome {
	return &Outcome{
		Success:      true,
		Intent:       PurchaseIntent{ProductType: pt},
		Verification: &vr,
	}
}

func TestDispatch_SuccessPresentations(t *testing.T) {
	tests := []struct {
		name     string
		outcome  *Outcome
		wantCode string
	}{
		{"plain pass purchase", successOutcome(ProductPass, VerificationResult{IsSuccessfulOrder: true}), "purchase_complete"},
		{"plain video purchase", successOutcome(ProductVideo, VerificationResult{IsSuccessfulOrder: true}), "purchase_complete"},
		{"plain course purchase", successOutcome(ProductCourse, VerificationResult{IsSuccessfulOrder: true}), "purchase_complete"},
		{"session booking", successOutcome(ProductSession, VerificationResult{IsSuccessfulOrder: true}), "session_booked"},
		{"subscription", successOutcome(ProductSubscription, VerificationResult{IsSuccessfulOrder: true}), "subscription_active"},
		{"credit redemption", successOutcome(ProductVideo, VerificationResult{IsSuccessfulOrder: true, UsedCredit: true}), "credit_redeemed"},
		{"purchase with bundled booking", successOutcome(ProductCourse, VerificationResult{IsSuccessfulOrder: true, BundledSessionBooking: true}), "purchase_with_booking"},
		{"credit wins over bundle", successOutcome(ProductCourse, VerificationResult{IsSuccessfulOrder: true, UsedCredit: true, BundledSessionBooking: true}), "credit_redeemed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Dispatch(tt.outcome)
			assert.Equal(t, NotifySuccess, n.Kind)
			assert.Equal(t, tt.wantCode, n.Code)
			assert.NotEmpty(t, n.Title)
			assert.NotEmpty(t, n.Message)
		})
	}
}

func TestDispatch_FailurePresentations(t *testing.T) {
	tests := []struct {
		reason   FailureReason
		wantCode string
	}{
		{ReasonAlreadyPurchased, "already_booked"},
		{ReasonDiscountInvalid, "discount_invalid"},
		{ReasonCardDeclined, "card_declined"},
		{ReasonVerification, "verification_failed"},
		{ReasonAuth, "auth_failed"},
		{ReasonOrderCreation, "purchase_failed"},
		{ReasonPaymentSession, "purchase_failed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			n := Dispatch(&Outcome{Reason: tt.reason, Intent: PurchaseIntent{ProductType: ProductPass}})
			assert.Equal(t, NotifyError, n.Kind)
			assert.Equal(t, tt.wantCode, n.Code)
			assert.NotEmpty(t, n.Title)
			assert.NotEmpty(t, n.Message)
		})
	}
}

// Dispatch must be total: even an outcome with an unknown reason or no
// verification payload still maps to exactly one presentation.
func TestDispatch_IsTotal(t *testing.T) {
	n := Dispatch(&Outcome{Reason: FailureReason("SOMETHING_NEW")})
	assert.Equal(t, NotifyError, n.Kind)
	assert.Equal(t, "purchase_failed", n.Code)

	n = Dispatch(&Outcome{Success: true, Intent: PurchaseIntent{ProductType: ProductPass}})
	assert.Equal(t, NotifySuccess, n.Kind)
	assert.Equal(t, "purchase_complete", n.Code)
}
