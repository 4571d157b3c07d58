package purchase

import "context"

type Credentials struct {
	Email    string
	Password string
}

// IdentityStore is read once at AUTH_CHECK and not re-queried for the rest of
// the attempt.
type IdentityStore interface {
	// CurrentBuyer returns nil (no error) when buyerID does not identify
	// an authenticated buyer.
	CurrentBuyer(ctx context.Context, buyerID uint) (*Buyer, error)
	Login(ctx context.Context, creds Credentials) (*Buyer, error)
}

type CreateOrderRequest struct {
	ProductID  string
	Price      float64
	Currency   string
	CouponCode string
	BuyerID    uint
}

// OrderService creates the server-side order. Called exactly once per
// attempt; a failed attempt is never retried against a fresh order by the
// orchestrator.
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
}

type CreateSessionRequest struct {
	OrderID    string
	OrderType  ProductType
	Amount     float64
	Currency   string
	CustomerID string

	// PaymentMethodID plus DirectCharge selects the saved-instrument path.
	PaymentMethodID string
	DirectCharge    bool
}

type ChargeInput struct {
	// Exactly one of CardToken / PaymentMethodID is set.
	CardToken        string
	PaymentMethodID  string
	SaveForFutureUse bool
}

// PaymentGateway wraps the card gateway. ConfirmCharge is pure
// request/response: it never creates an order or a session, and the
// orchestrator calls it at most once per leg (the single step-up round
// being the only second leg).
type PaymentGateway interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*PaymentSession, error)
	ConfirmCharge(ctx context.Context, sessionToken string, in ChargeInput) (captured bool, err error)
}

type VerifyRequest struct {
	OrderID       string
	TransactionID string
	OrderType     ProductType
}

type Verifier interface {
	Verify(ctx context.Context, req VerifyRequest) (*VerificationResult, error)
}

// InstrumentSource lists the buyer's saved cards. Consulted fresh on every
// flow invocation so the attempt never acts on stale authorization state.
type InstrumentSource interface {
	List(ctx context.Context, buyer *Buyer) ([]Instrument, error)
}
