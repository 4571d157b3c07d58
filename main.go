package main

import (
	"time"

	"storefront-app/config"
	"storefront-app/database"
	purchaseapi "storefront-app/internal/api/purchase"
	routes "storefront-app/internal/app/http"
	"storefront-app/internal/client"
	"storefront-app/internal/identity"
	"storefront-app/internal/infra/stripegw"
	"storefront-app/internal/purchase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	gateway := stripegw.New(config.C.Stripe)
	continuations := purchase.NewContinuationStore(30 * time.Minute)
	orchestrator := purchase.NewOrchestrator(
		identity.NewStore(database.DB),
		client.NewCommerceClient(&config.C.Commerce),
		gateway,
		client.NewVerifyClient(&config.C.Commerce),
		gateway,
		continuations,
	)
	purchaseapi.Init(orchestrator, continuations, gateway)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.C.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.C.Port)
}
