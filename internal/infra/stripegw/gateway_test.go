package stripegw

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
)

func TestStepUpIntent_RequiresActionIsRecovered(t *testing.T) {
	embedded := &stripe.PaymentIntent{
		ID:     "pi_123",
		Status: stripe.PaymentIntentStatusRequiresAction,
	}
	err := &stripe.Error{
		Code:          stripe.ErrorCodeAuthenticationRequired,
		PaymentIntent: embedded,
	}

	pi := stepUpIntent(err)

	require.NotNil(t, pi)
	assert.Equal(t, "pi_123", pi.ID)
}

func TestStepUpIntent_DeclineStaysAnError(t *testing.T) {
	declineStatuses := []stripe.PaymentIntentStatus{
		stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusCanceled,
		stripe.PaymentIntentStatusRequiresConfirmation,
	}

	for _, status := range declineStatuses {
		t.Run(string(status), func(t *testing.T) {
			err := &stripe.Error{
				Code:          stripe.ErrorCodeCardDeclined,
				PaymentIntent: &stripe.PaymentIntent{ID: "pi_456", Status: status},
			}

			assert.Nil(t, stepUpIntent(err))
		})
	}
}

func TestStepUpIntent_NonGatewayError(t *testing.T) {
	assert.Nil(t, stepUpIntent(errors.New("connection reset")))
	assert.Nil(t, stepUpIntent(fmt.Errorf("request failed: %w", errors.New("timeout"))))
	assert.Nil(t, stepUpIntent(&stripe.Error{Code: stripe.ErrorCodeCardDeclined}))
}
