package purchaseapi

import (
	"errors"
	"fmt"
	"net/http"

	"storefront-app/database"
	"storefront-app/internal/domain/billing"
	"storefront-app/internal/domain/users"
	"storefront-app/internal/purchase"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/customer"
)

var (
	orchestrator  *purchase.Orchestrator
	continuations *purchase.ContinuationStore
	instruments   purchase.InstrumentSource
	inflight      busyGuard
)

// Init wires the handlers to the flow built in main.
func Init(o *purchase.Orchestrator, c *purchase.ContinuationStore, src purchase.InstrumentSource) {
	orchestrator = o
	continuations = c
	instruments = src
	inflight.active = make(map[uint]bool)
}

type intentBody struct {
	ProductType   string  `json:"product_type" binding:"required"`
	ProductID     string  `json:"product_id" binding:"required"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency" binding:"required"`
	CouponCode    string  `json:"coupon_code"`
	InstrumentRef string  `json:"instrument_ref"`
	CardToken     string  `json:"card_token"`
}

// StartPurchase is the UI trigger. An unauthenticated buyer gets the attempt
// suspended and a continuation token back; an authenticated one gets the
// attempt driven to its terminal outcome.
func StartPurchase(c *gin.Context) {
	var body intentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent := purchase.PurchaseIntent{
		ProductType:   purchase.ProductType(body.ProductType),
		ProductID:     body.ProductID,
		Price:         body.Price,
		Currency:      body.Currency,
		CouponCode:    body.CouponCode,
		InstrumentRef: body.InstrumentRef,
		CardToken:     body.CardToken,
	}
	if !intent.ProductType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown product_type"})
		return
	}

	userID := c.GetUint("user_id")
	if userID != 0 {
		if !inflight.acquire(userID) {
			c.JSON(http.StatusConflict, gin.H{"error": "A purchase is already in progress"})
			return
		}
		defer inflight.release(userID)

		if err := ensureGatewayCustomer(userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare payment profile"})
			return
		}
	}

	outcome, suspension := orchestrator.Start(c.Request.Context(), userID, intent)
	if suspension != nil {
		c.JSON(http.StatusAccepted, gin.H{
			"status":             "auth_required",
			"continuation_token": suspension.Token,
		})
		return
	}

	respondOutcome(c, userID, outcome)
}

// ResumePurchase continues an attempt suspended for authentication, with the
// intent stored at suspension time.
func ResumePurchase(c *gin.Context) {
	var body struct {
		ContinuationToken string `json:"continuation_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !inflight.acquire(userID) {
		c.JSON(http.StatusConflict, gin.H{"error": "A purchase is already in progress"})
		return
	}
	defer inflight.release(userID)

	// Reject stale tokens before touching the gateway, so a bogus or
	// expired resume never provisions a payment profile.
	if !continuations.Has(body.ContinuationToken) {
		c.JSON(http.StatusGone, gin.H{"status": "expired"})
		return
	}

	if err := ensureGatewayCustomer(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare payment profile"})
		return
	}

	outcome, err := orchestrator.Resume(c.Request.Context(), userID, body.ContinuationToken)
	if errors.Is(err, purchase.ErrAttemptExpired) {
		// Abandoned sign-in: no order, no outcome, nothing to show.
		c.JSON(http.StatusGone, gin.H{"status": "expired"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resume purchase"})
		return
	}

	respondOutcome(c, userID, outcome)
}

// AbandonPurchase drops a suspended attempt explicitly instead of waiting
// for its TTL.
func AbandonPurchase(c *gin.Context) {
	var body struct {
		ContinuationToken string `json:"continuation_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	continuations.Abandon(body.ContinuationToken)
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func respondOutcome(c *gin.Context, userID uint, outcome *purchase.Outcome) {
	recordOutcome(userID, outcome)
	if cardSaved(outcome) {
		syncSavedInstruments(c.Request.Context(), userID)
	}
	notification := purchase.Dispatch(outcome)
	c.JSON(statusFor(outcome), gin.H{"notification": notification})
}

func statusFor(o *purchase.Outcome) int {
	if o.Success {
		return http.StatusOK
	}
	switch o.Reason {
	case purchase.ReasonAlreadyPurchased:
		return http.StatusConflict
	case purchase.ReasonDiscountInvalid:
		return http.StatusBadRequest
	case purchase.ReasonCardDeclined:
		return http.StatusPaymentRequired
	case purchase.ReasonAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusUnprocessableEntity
	}
}

// recordOutcome keeps one purchase row per attempt that created an order.
// Verification failures stay flagged for manual reconciliation.
func recordOutcome(userID uint, o *purchase.Outcome) {
	if o.Order == nil || userID == 0 {
		return
	}

	orderID := o.Order.OrderID
	rec := billing.PurchaseRecord{
		UserID:              userID,
		OrderID:             &orderID,
		ProductType:         string(o.Intent.ProductType),
		ProductID:           o.Intent.ProductID,
		Amount:              o.Intent.Price,
		Currency:            o.Intent.Currency,
		NeedsReconciliation: o.NeedsReconciliation,
	}
	if o.Session != nil {
		txn := o.Session.TransactionID
		rec.TransactionID = &txn
	}
	if o.Success {
		rec.Status = "succeeded"
	} else {
		rec.Status = "failed"
		reason := string(o.Reason)
		rec.FailureReason = &reason
	}

	if err := database.DB.Create(&rec).Error; err != nil {
		fmt.Println("Failed to record purchase attempt:", err)
	}
}

func ensureGatewayCustomer(userID uint) error {
	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return err
	}
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return nil
	}

	cus, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Metadata: map[string]string{
			"user_id": fmt.Sprint(user.ID),
		},
	})
	if err != nil {
		return err
	}

	return database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Update("stripe_customer_id", cus.ID).Error
}
