package stripegw

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/paymentintent"
	"github.com/stripe/stripe-go/v75/paymentmethod"

	"storefront-app/config"
	"storefront-app/internal/purchase"
)

// Gateway implements purchase.PaymentGateway and purchase.InstrumentSource
// on top of Stripe payment intents. One payment intent backs one
// PaymentSession; a step-up confirmation re-uses it, so the transaction id
// verification keys on never changes within an attempt.
type Gateway struct {
	confirmTimeout time.Duration
}

func New(cfg config.Stripe) *Gateway {
	stripe.Key = cfg.SecretKey
	return &Gateway{
		confirmTimeout: time.Duration(cfg.ConfirmTimeoutSec) * time.Second,
	}
}

func (g *Gateway) CreateSession(ctx context.Context, req purchase.CreateSessionRequest) (*purchase.PaymentSession, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(minorUnits(req.Amount)),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		Metadata: map[string]string{
			"order_id":   req.OrderID,
			"order_type": string(req.OrderType),
		},
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	}
	if req.DirectCharge {
		// Saved instrument: charge it off-session in one shot. Stripe
		// answers requires_action when the bank demands a step-up.
		params.PaymentMethod = stripe.String(req.PaymentMethodID)
		params.Confirm = stripe.Bool(true)
		params.OffSession = stripe.Bool(true)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		// An off-session charge that hits a bank challenge surfaces as
		// an error carrying the intent in requires_action; step-up
		// handling needs that intent back. Any other embedded status
		// (requires_payment_method and friends) is a plain decline and
		// stays an error.
		if stepUp := stepUpIntent(err); stepUp != nil {
			pi = stepUp
		} else {
			return nil, err
		}
	}

	return sessionFromIntent(pi), nil
}

// stepUpIntent returns the payment intent embedded in a gateway error only
// when the bank demands a step-up round.
func stepUpIntent(err error) *stripe.PaymentIntent {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) &&
		stripeErr.PaymentIntent != nil &&
		stripeErr.PaymentIntent.Status == stripe.PaymentIntentStatusRequiresAction {
		return stripeErr.PaymentIntent
	}
	return nil
}

func (g *Gateway) ConfirmCharge(ctx context.Context, sessionToken string, in purchase.ChargeInput) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, g.confirmTimeout)
	defer cancel()

	params := &stripe.PaymentIntentConfirmParams{
		Params: stripe.Params{Context: ctx},
	}
	switch {
	case in.PaymentMethodID != "":
		params.PaymentMethod = stripe.String(in.PaymentMethodID)
	case in.CardToken != "":
		params.PaymentMethod = stripe.String(in.CardToken)
	default:
		return false, errors.New("stripegw: confirm without card token or payment method")
	}
	if in.SaveForFutureUse {
		params.SetupFutureUsage = stripe.String(string(stripe.PaymentIntentSetupFutureUsageOffSession))
	}

	pi, err := paymentintent.Confirm(intentIDFromToken(sessionToken), params)
	if err != nil {
		return false, err
	}
	return Captured(pi.Status), nil
}

// List implements purchase.InstrumentSource. Called fresh on every flow
// invocation; nothing is cached here.
func (g *Gateway) List(ctx context.Context, buyer *purchase.Buyer) ([]purchase.Instrument, error) {
	if buyer.GatewayCustomerID == "" {
		return nil, nil
	}

	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(buyer.GatewayCustomerID),
		Type:     stripe.String(string(stripe.PaymentMethodTypeCard)),
	}
	params.Context = ctx

	var out []purchase.Instrument
	iter := paymentmethod.List(params)
	for iter.Next() {
		pm := iter.PaymentMethod()
		inst := purchase.Instrument{ExternalID: pm.ID}
		if pm.Card != nil {
			inst.Brand = string(pm.Card.Brand)
			inst.Last4 = pm.Card.Last4
		}
		out = append(out, inst)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func sessionFromIntent(pi *stripe.PaymentIntent) *purchase.PaymentSession {
	session := &purchase.PaymentSession{
		GatewaySessionToken: pi.ClientSecret,
		TransactionID:       pi.ID,
		Status:              NormalizeIntentStatus(pi.Status),
	}
	if pi.PaymentMethod != nil {
		session.PaymentMethodID = pi.PaymentMethod.ID
	}
	return session
}

// intentIDFromToken recovers the payment intent id from a client secret of
// the form "pi_xxx_secret_yyy".
func intentIDFromToken(token string) string {
	if i := strings.Index(token, "_secret"); i > 0 {
		return token[:i]
	}
	return token
}

func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
