package purchase

import (
	"context"
	"log"
)

// State names the positions of one purchase attempt. An attempt moves
// strictly forward; STEP_UP is the only loop back into CONFIRMING and it
// happens at most once.
type State string

const (
	StateIdle            State = "IDLE"
	StateAuthCheck       State = "AUTH_CHECK"
	StateAuthenticating  State = "AUTHENTICATING"
	StateOrderCreating   State = "ORDER_CREATING"
	StateSessionCreating State = "SESSION_CREATING"
	StateConfirming      State = "CONFIRMING"
	StateStepUp          State = "STEP_UP"
	StateVerifying       State = "VERIFYING"
	StateVerified        State = "VERIFIED"
	StateTerminal        State = "TERMINAL"
)

// Outcome is the single terminal result of a completed attempt. Exactly one
// Outcome exists per attempt that got past the authentication gate.
type Outcome struct {
	Success  bool
	Reason   FailureReason // set on failure only
	Err      error         // cause, failure only
	FailedAt State         // state the failure happened in

	Intent       PurchaseIntent
	Buyer        *Buyer
	Order        *Order
	Session      *PaymentSession
	Verification *VerificationResult

	// NeedsReconciliation marks a verification failure: the gateway may
	// have captured the charge without the order being confirmed.
	NeedsReconciliation bool
}

// Suspension is returned instead of an Outcome when the buyer must
// authenticate first. The intent inside is the one the attempt will resume
// with, unchanged.
type Suspension struct {
	Token  string
	Intent PurchaseIntent
}

type Orchestrator struct {
	identity      IdentityStore
	orders        OrderService
	gateway       PaymentGateway
	verifier      Verifier
	instruments   InstrumentSource
	continuations *ContinuationStore
}

func NewOrchestrator(
	identity IdentityStore,
	orders OrderService,
	gateway PaymentGateway,
	verifier Verifier,
	instruments InstrumentSource,
	continuations *ContinuationStore,
) *Orchestrator {
	return &Orchestrator{
		identity:      identity,
		orders:        orders,
		gateway:       gateway,
		verifier:      verifier,
		instruments:   instruments,
		continuations: continuations,
	}
}

// Start runs AUTH_CHECK and either drives the attempt to its terminal state
// or suspends it for authentication. Exactly one of the two returns is
// non-nil.
func (o *Orchestrator) Start(ctx context.Context, buyerID uint, intent PurchaseIntent) (*Outcome, *Suspension) {
	buyer, err := o.identity.CurrentBuyer(ctx, buyerID)
	if err != nil {
		return o.terminal(intent, nil, failedAt(StateAuthCheck, Fail(ReasonAuth, err))), nil
	}
	if buyer == nil {
		token := o.continuations.Suspend(intent)
		log.Printf("purchase: suspended for auth, product=%s %s", intent.ProductType, intent.ProductID)
		return nil, &Suspension{Token: token, Intent: intent}
	}
	return o.terminal(intent, buyer, o.runAttempt(ctx, buyer, intent)), nil
}

// Resume continues a suspended attempt with the intent stored at Start,
// verbatim. ErrAttemptExpired means the sign-in was abandoned (or the token
// is bogus); no order was created and nothing is dispatched for it.
func (o *Orchestrator) Resume(ctx context.Context, buyerID uint, token string) (*Outcome, error) {
	intent, ok := o.continuations.Take(token)
	if !ok {
		return nil, ErrAttemptExpired
	}
	buyer, err := o.identity.CurrentBuyer(ctx, buyerID)
	if err != nil {
		return o.terminal(intent, nil, failedAt(StateAuthCheck, Fail(ReasonAuth, err))), nil
	}
	if buyer == nil {
		return nil, ErrAttemptExpired
	}
	return o.terminal(intent, buyer, o.runAttempt(ctx, buyer, intent)), nil
}

// attemptResult carries everything produced past ORDER_CREATING.
type attemptResult struct {
	err          *FlowError
	failedAt     State
	order        *Order
	session      *PaymentSession
	verification *VerificationResult
	reconcile    bool
}

func failedAt(state State, err *FlowError) attemptResult {
	return attemptResult{err: err, failedAt: state}
}

// runAttempt drives ORDER_CREATING through VERIFIED. Once CreateOrder has
// succeeded the attempt always reaches a terminal result: an order exists
// server-side and must be matched by a definite outcome.
func (o *Orchestrator) runAttempt(ctx context.Context, buyer *Buyer, intent PurchaseIntent) attemptResult {
	if intent.InstrumentRef != "" && intent.CardToken != "" {
		// Card input and saved-instrument selection are mutually
		// exclusive; reject before an order exists.
		return failedAt(StateIdle, Fail(ReasonPaymentSession, errConflictingPayment))
	}

	// The instrument list is fetched fresh per invocation, and before
	// ORDER_CREATING so a stale selection does not leave a dangling order.
	if intent.InstrumentRef != "" {
		known, err := o.instruments.List(ctx, buyer)
		if err != nil {
			return failedAt(StateIdle, Fail(ReasonPaymentSession, err))
		}
		if !hasInstrument(known, intent.InstrumentRef) {
			return failedAt(StateIdle, Fail(ReasonPaymentSession, errUnknownInstrument))
		}
	}

	order, err := o.orders.CreateOrder(ctx, CreateOrderRequest{
		ProductID:  intent.ProductID,
		Price:      intent.Price,
		Currency:   intent.Currency,
		CouponCode: intent.CouponCode,
		BuyerID:    buyer.ID,
	})
	if err != nil {
		// No retry: a second CreateOrder for the same intent would
		// break the at-most-one-order invariant.
		return failedAt(StateOrderCreating, Fail(ReasonOrderCreation, err))
	}

	if !order.PaymentRequired {
		// Free or fully discounted: no payment leg, synthetic success.
		return attemptResult{
			order:        order,
			verification: &VerificationResult{IsSuccessfulOrder: true},
		}
	}

	session, err := o.gateway.CreateSession(ctx, CreateSessionRequest{
		OrderID:         order.OrderID,
		OrderType:       order.OrderType,
		Amount:          intent.Price,
		Currency:        intent.Currency,
		CustomerID:      buyer.GatewayCustomerID,
		PaymentMethodID: intent.InstrumentRef,
		DirectCharge:    intent.InstrumentRef != "",
	})
	if err != nil {
		return attemptResult{err: Fail(ReasonPaymentSession, err), failedAt: StateSessionCreating, order: order}
	}

	if err := o.confirm(ctx, intent, session); err != nil {
		return attemptResult{err: err, failedAt: StateConfirming, order: order, session: session}
	}

	verification, verr := o.verifier.Verify(ctx, VerifyRequest{
		OrderID:       order.OrderID,
		TransactionID: session.TransactionID,
		OrderType:     order.OrderType,
	})
	if verr != nil {
		// The charge may be captured without a confirmed order; this
		// goes to manual reconciliation, never a silent retry.
		return attemptResult{err: Fail(ReasonVerification, verr), failedAt: StateVerifying, order: order, session: session, reconcile: true}
	}
	if !verification.IsSuccessfulOrder {
		return attemptResult{err: Fail(ReasonVerification, errOrderNotConfirmed), failedAt: StateVerifying, order: order, session: session, reconcile: true}
	}

	return attemptResult{order: order, session: session, verification: verification}
}

// confirm runs the CONFIRMING leg: new-card and saved-instrument sub-paths
// are mutually exclusive. The saved path's one step-up re-confirmation is
// the only second ConfirmCharge an attempt may issue, and it reuses the
// session created above.
func (o *Orchestrator) confirm(ctx context.Context, intent PurchaseIntent, session *PaymentSession) *FlowError {
	if intent.InstrumentRef == "" {
		captured, err := o.gateway.ConfirmCharge(ctx, session.GatewaySessionToken, ChargeInput{
			CardToken:        intent.CardToken,
			SaveForFutureUse: true,
		})
		if err != nil {
			return Fail(ReasonCardDeclined, err)
		}
		if !captured {
			return Fail(ReasonCardDeclined, errChargeNotCaptured)
		}
		return nil
	}

	switch session.Status {
	case SessionAuthorizationRequired:
		// STEP_UP: confirm again with the payment method id, same
		// session token, same transaction id.
		captured, err := o.gateway.ConfirmCharge(ctx, session.GatewaySessionToken, ChargeInput{
			PaymentMethodID: session.PaymentMethodID,
		})
		if err != nil {
			return Fail(ReasonCardDeclined, err)
		}
		if !captured {
			return Fail(ReasonCardDeclined, errChargeNotCaptured)
		}
		return nil
	default:
		// SUCCESS or AWAITING_CAPTURE: direct charge already went
		// through, nothing to confirm.
		return nil
	}
}

// terminal folds an attempt result into the single Outcome. The raw card
// token is cleared here regardless of how the attempt ended, so a stale
// token can never be resubmitted.
func (o *Orchestrator) terminal(intent PurchaseIntent, buyer *Buyer, res attemptResult) *Outcome {
	intent.CardToken = ""

	out := &Outcome{
		Intent:              intent,
		Buyer:               buyer,
		Order:               res.order,
		Session:             res.session,
		Verification:        res.verification,
		NeedsReconciliation: res.reconcile,
	}
	if res.err != nil {
		out.Reason = res.err.Reason
		out.Err = res.err
		out.FailedAt = res.failedAt
		log.Printf("purchase: attempt failed, reason=%s product=%s %s", res.err.Reason, intent.ProductType, intent.ProductID)
		return out
	}
	out.Success = true
	return out
}

func hasInstrument(list []Instrument, externalID string) bool {
	for _, in := range list {
		if in.ExternalID == externalID {
			return true
		}
	}
	return false
}
