package billing

import (
	"time"

	"storefront-app/internal/domain/users"
)

// PurchaseRecord is one row per completed purchase attempt, success or
// failure. Verification failures are kept with NeedsReconciliation set so
// support can match a captured charge against an unconfirmed order.
type PurchaseRecord struct {
	ID            uint `gorm:"primaryKey"`
	UserID        uint `gorm:"index"`
	User          users.User
	OrderID       *string `gorm:"column:order_id;uniqueIndex:idx_purchases_order_id"`
	ProductType   string
	ProductID     string
	TransactionID *string `gorm:"column:transaction_id"`
	Amount        float64
	Currency      string
	Status        string // "succeeded" | "failed"
	FailureReason *string

	NeedsReconciliation bool `gorm:"column:needs_reconciliation"`

	CreatedAt time.Time
}
