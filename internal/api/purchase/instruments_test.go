package purchaseapi

import (
	"testing"

	"storefront-app/internal/purchase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardSaved(t *testing.T) {
	newCardSuccess := &purchase.Outcome{
		Success: true,
		Session: &purchase.PaymentSession{TransactionID: "pi_1"},
		Intent:  purchase.PurchaseIntent{CardToken: ""},
	}
	assert.True(t, cardSaved(newCardSuccess))

	savedCardSuccess := &purchase.Outcome{
		Success: true,
		Session: &purchase.PaymentSession{TransactionID: "pi_2"},
		Intent:  purchase.PurchaseIntent{InstrumentRef: "pm_abc"},
	}
	assert.False(t, cardSaved(savedCardSuccess), "an existing card is already on file")

	freePurchase := &purchase.Outcome{Success: true}
	assert.False(t, cardSaved(freePurchase), "no payment leg, no card")

	declined := &purchase.Outcome{
		Success: false,
		Session: &purchase.PaymentSession{TransactionID: "pi_3"},
		Reason:  purchase.ReasonCardDeclined,
	}
	assert.False(t, cardSaved(declined))
}

func TestSavedInstrumentRows(t *testing.T) {
	rows := savedInstrumentRows(7, []purchase.Instrument{
		{ExternalID: "pm_visa", Brand: "visa", Last4: "4242"},
		{ExternalID: "pm_mc", Brand: "mastercard", Last4: "4444"},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, uint(7), rows[0].UserID)
	assert.Equal(t, "pm_visa", rows[0].ExternalID)
	assert.Equal(t, "visa", rows[0].Brand)
	assert.Equal(t, "4242", rows[0].Last4)
	assert.Equal(t, "pm_mc", rows[1].ExternalID)

	assert.Empty(t, savedInstrumentRows(7, nil))
}
