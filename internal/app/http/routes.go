package routes

import (
	authapi "storefront-app/internal/api/auth"
	billingapi "storefront-app/internal/api/billing"
	purchaseapi "storefront-app/internal/api/purchase"
	"storefront-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Purchase trigger: reachable without a token so an anonymous buyer's
	// attempt can be suspended at the auth gate instead of rejected.
	trigger := r.Group("/")
	trigger.Use(middleware.OptionalAuthMiddleware())
	trigger.POST("/purchase", purchaseapi.StartPurchase)
	trigger.POST("/purchase/abandon", purchaseapi.AbandonPurchase)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", authapi.GetCurrentUser)
	auth.POST("/purchase/resume", purchaseapi.ResumePurchase)
	auth.GET("/purchases", billingapi.GetPurchaseHistory)
	auth.GET("/instruments", billingapi.ListSavedInstruments)
}
