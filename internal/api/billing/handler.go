package billingapi

import (
	"net/http"

	"storefront-app/database"
	"storefront-app/internal/domain/billing"
	"storefront-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetPurchaseHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var records []billing.PurchaseRecord
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load purchases"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// ListSavedInstruments returns the buyer's cards on file for the picker in
// the checkout form. The rows are synced from the gateway whenever a
// purchase saves a new card.
func ListSavedInstruments(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var cards []users.SavedInstrument
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load saved cards"})
		return
	}

	out := make([]gin.H, 0, len(cards))
	for _, card := range cards {
		out = append(out, gin.H{
			"external_id": card.ExternalID,
			"brand":       card.Brand,
			"last4":       card.Last4,
		})
	}
	c.JSON(http.StatusOK, out)
}
