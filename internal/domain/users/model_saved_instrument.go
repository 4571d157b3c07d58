package users

import "time"

// SavedInstrument is a tokenized card on file for a buyer. ExternalID is the
// gateway's payment method id; the rest is display metadata only.
type SavedInstrument struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"index"`
	ExternalID string `gorm:"column:external_id;not null;uniqueIndex:idx_instruments_external_id"`
	Brand      string
	Last4      string `gorm:"column:last4"`
	CreatedAt  time.Time
}
