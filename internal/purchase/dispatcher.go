package purchase

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is the one user-visible effect of a completed attempt.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Code    string           `json:"code"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}

// Dispatch maps a terminal Outcome to exactly one Notification. It is total:
// every outcome maps to one presentation, never zero, never two.
func Dispatch(o *Outcome) Notification {
	if o.Success {
		return successNotification(o)
	}
	return failureNotification(o)
}

func successNotification(o *Outcome) Notification {
	// Credit redemption wins over the plain per-product presentation:
	// the buyer should see that a membership credit was consumed, not a
	// charge.
	if o.Verification != nil && o.Verification.UsedCredit {
		return Notification{
			Kind:    NotifySuccess,
			Code:    "credit_redeemed",
			Title:   "Purchase complete",
			Message: "A credit from your membership was used for this purchase.",
		}
	}
	if o.Verification != nil && o.Verification.BundledSessionBooking {
		return Notification{
			Kind:    NotifySuccess,
			Code:    "purchase_with_booking",
			Title:   "Purchase complete",
			Message: "Your purchase is confirmed and your session has been booked.",
		}
	}

	switch o.Intent.ProductType {
	case ProductSession:
		return Notification{
			Kind:    NotifySuccess,
			Code:    "session_booked",
			Title:   "Session booked",
			Message: "Your session is booked. The details are in your dashboard.",
		}
	case ProductSubscription:
		return Notification{
			Kind:    NotifySuccess,
			Code:    "subscription_active",
			Title:   "Membership active",
			Message: "Your membership is now active.",
		}
	default:
		// PASS, VIDEO, COURSE and anything added later share the plain
		// purchase presentation.
		return Notification{
			Kind:    NotifySuccess,
			Code:    "purchase_complete",
			Title:   "Purchase complete",
			Message: "Your purchase is confirmed and ready in your dashboard.",
		}
	}
}

func failureNotification(o *Outcome) Notification {
	switch o.Reason {
	case ReasonAlreadyPurchased:
		return Notification{
			Kind:    NotifyError,
			Code:    "already_booked",
			Title:   "Already booked",
			Message: "You already own this item, so no new order was placed.",
		}
	case ReasonDiscountInvalid:
		return Notification{
			Kind:    NotifyError,
			Code:    "discount_invalid",
			Title:   "Discount not applied",
			Message: "That discount code could not be applied to this order.",
		}
	case ReasonCardDeclined:
		return Notification{
			Kind:    NotifyError,
			Code:    "card_declined",
			Title:   "Payment failed",
			Message: "Your card was declined. No order was completed; please try again.",
		}
	case ReasonVerification:
		return Notification{
			Kind:    NotifyError,
			Code:    "verification_failed",
			Title:   "Payment needs review",
			Message: "Your payment went through but the order could not be confirmed. Our team will reconcile it shortly.",
		}
	case ReasonAuth:
		return Notification{
			Kind:    NotifyError,
			Code:    "auth_failed",
			Title:   "Sign-in required",
			Message: "We could not confirm who you are. Please sign in and try again.",
		}
	case ReasonPaymentSession, ReasonOrderCreation:
		fallthrough
	default:
		return Notification{
			Kind:    NotifyError,
			Code:    "purchase_failed",
			Title:   "Something went wrong",
			Message: "We could not complete your purchase. You have not been charged twice; please try again.",
		}
	}
}
