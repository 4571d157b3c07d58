package purchaseapi

import (
	"context"
	"fmt"

	"storefront-app/database"
	"storefront-app/internal/domain/users"
	"storefront-app/internal/identity"
	"storefront-app/internal/purchase"

	"gorm.io/gorm/clause"
)

// cardSaved reports whether the attempt confirmed a fresh card through the
// gateway, which stores it against the buyer for future off-session use.
func cardSaved(o *purchase.Outcome) bool {
	return o.Success && o.Session != nil && o.Intent.InstrumentRef == ""
}

// syncSavedInstruments refreshes the buyer's cards-on-file rows from the
// gateway after a new card was saved. Failures only cost the local cache a
// refresh, so they are logged and swallowed.
func syncSavedInstruments(ctx context.Context, userID uint) {
	buyer, err := identity.NewStore(database.DB).CurrentBuyer(ctx, userID)
	if err != nil || buyer == nil {
		return
	}

	list, err := instruments.List(ctx, buyer)
	if err != nil {
		fmt.Println("Failed to refresh saved cards:", err)
		return
	}

	rows := savedInstrumentRows(userID, list)
	if len(rows) == 0 {
		return
	}
	err = database.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		fmt.Println("Failed to store saved cards:", err)
	}
}

func savedInstrumentRows(userID uint, list []purchase.Instrument) []users.SavedInstrument {
	rows := make([]users.SavedInstrument, 0, len(list))
	for _, in := range list {
		rows = append(rows, users.SavedInstrument{
			UserID:     userID,
			ExternalID: in.ExternalID,
			Brand:      in.Brand,
			Last4:      in.Last4,
		})
	}
	return rows
}
