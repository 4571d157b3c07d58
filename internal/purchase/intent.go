package purchase

type ProductType string

const (
	ProductSession      ProductType = "SESSION"
	ProductPass         ProductType = "PASS"
	ProductVideo        ProductType = "VIDEO"
	ProductCourse       ProductType = "COURSE"
	ProductSubscription ProductType = "SUBSCRIPTION"
)

func (p ProductType) Valid() bool {
	switch p {
	case ProductSession, ProductPass, ProductVideo, ProductCourse, ProductSubscription:
		return true
	}
	return false
}

// PurchaseIntent is the immutable input to one purchase attempt. It is
// carried verbatim across the authentication suspension; price and currency
// are never re-fetched mid-flow.
type PurchaseIntent struct {
	ProductType ProductType `json:"product_type"`
	ProductID   string      `json:"product_id"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency"`
	CouponCode  string      `json:"coupon_code,omitempty"`

	// InstrumentRef selects a saved card (gateway payment method id).
	// CardToken is the one-time token for a freshly entered card. At most
	// one of the two may be set for an attempt.
	InstrumentRef string `json:"instrument_ref,omitempty"`
	CardToken     string `json:"card_token,omitempty"`
}

// Buyer is the authenticated identity the flow acts for.
type Buyer struct {
	ID                uint
	Email             string
	GatewayCustomerID string
}

// Instrument is a saved card as seen by the flow: the gateway reference plus
// display metadata. Fetched fresh per invocation, never cached across
// attempts.
type Instrument struct {
	ExternalID string
	Brand      string
	Last4      string
}

// Order is the server-side purchase record created before any payment.
type Order struct {
	OrderID         string
	OrderType       ProductType
	PaymentRequired bool
}

type SessionStatus string

const (
	SessionSuccess               SessionStatus = "SUCCESS"
	SessionAwaitingCapture       SessionStatus = "AWAITING_CAPTURE"
	SessionAuthorizationRequired SessionStatus = "AUTHORIZATION_REQUIRED"
)

// PaymentSession is the gateway handle for confirming one charge against one
// Order. A step-up round re-uses the same TransactionID.
type PaymentSession struct {
	GatewaySessionToken string
	TransactionID       string
	PaymentMethodID     string
	Status              SessionStatus
}

// VerificationResult reports whether the gateway capture corresponds to a
// finalized order, plus the flags the outcome dispatcher keys on.
type VerificationResult struct {
	IsSuccessfulOrder     bool
	UsedCredit            bool
	BundledSessionBooking bool
}
