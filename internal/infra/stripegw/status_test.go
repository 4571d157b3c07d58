package stripegw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v75"

	"storefront-app/internal/purchase"
)

func TestNormalizeIntentStatus(t *testing.T) {
	tests := []struct {
		in   stripe.PaymentIntentStatus
		want purchase.SessionStatus
	}{
		{stripe.PaymentIntentStatusSucceeded, purchase.SessionSuccess},
		{stripe.PaymentIntentStatusRequiresAction, purchase.SessionAuthorizationRequired},
		{stripe.PaymentIntentStatusRequiresConfirmation, purchase.SessionAwaitingCapture},
		{stripe.PaymentIntentStatusRequiresPaymentMethod, purchase.SessionAwaitingCapture},
		{stripe.PaymentIntentStatusRequiresCapture, purchase.SessionAwaitingCapture},
		{stripe.PaymentIntentStatusProcessing, purchase.SessionAwaitingCapture},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeIntentStatus(tt.in), "status %s", tt.in)
	}
}

func TestCaptured(t *testing.T) {
	assert.True(t, Captured(stripe.PaymentIntentStatusSucceeded))
	assert.True(t, Captured(stripe.PaymentIntentStatusRequiresCapture))
	assert.False(t, Captured(stripe.PaymentIntentStatusRequiresAction))
	assert.False(t, Captured(stripe.PaymentIntentStatusProcessing))
}

func TestIntentIDFromToken(t *testing.T) {
	assert.Equal(t, "pi_123", intentIDFromToken("pi_123_secret_abc"))
	assert.Equal(t, "pi_123", intentIDFromToken("pi_123"))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(5000), minorUnits(50))
	assert.Equal(t, int64(1999), minorUnits(19.99))
	assert.Equal(t, int64(10), minorUnits(0.1))
}
