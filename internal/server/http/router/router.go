package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/glimmerco/lumiere/internal/server/http/handlers"
	"github.com/glimmerco/lumiere/internal/server/http/middleware"
)

// Options carry the router knobs beyond the facade itself.
type Options struct {
	UploadDir   string
	CORSOrigins []string
}

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, v *validatorv10.Validate, logger *slog.Logger, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(corsMiddleware(opts.CORSOrigins))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade, v)
	stripeHandler := handlers.NewStripeHandler(facade, v)
	catalogHandler := handlers.NewCatalogHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade, opts.UploadDir)

	engine.Static("/uploads", opts.UploadDir)

	api := engine.Group("/api")

	api.GET("/products", catalogHandler.List)
	api.GET("/products/:id", catalogHandler.Get)

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("/:id", orderHandler.Get)

	stripeGroup := api.Group("/stripe")
	stripeGroup.POST("/create-payment-intent", stripeHandler.CreateIntent)
	stripeGroup.GET("/config", stripeHandler.Config)
	stripeGroup.GET("/public-key", stripeHandler.PublicKey)
	stripeGroup.POST("/webhook", stripeHandler.Webhook)

	shopifyGroup := api.Group("/shopify")
	shopifyGroup.GET("/config", catalogHandler.ShopifyConfig)
	shopifyGroup.GET("/products", catalogHandler.ShopifyProducts)

	ebayGroup := api.Group("/ebay")
	ebayGroup.GET("/config", catalogHandler.EbayConfig)
	ebayGroup.GET("/products", catalogHandler.EbayProducts)

	admin := api.Group("/admin")
	admin.POST("/login", adminHandler.Login)
	admin.POST("/logout", adminHandler.Logout)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AdminRequired(facade))
	adminAuth.GET("/products", adminHandler.Products)
	adminAuth.POST("/products", adminHandler.CreateProduct)
	adminAuth.GET("/products/:id", adminHandler.Product)
	adminAuth.PUT("/products/:id", adminHandler.UpdateProduct)
	adminAuth.DELETE("/products/:id", adminHandler.DeleteProduct)
	adminAuth.POST("/products/:id/generate-description", adminHandler.GenerateDescription)
	adminAuth.POST("/products/csv-upload", adminHandler.ImportCSV)
	adminAuth.POST("/products/bulk-image-upload", adminHandler.BulkImageUpload)
	adminAuth.POST("/upload", adminHandler.Upload)
	adminAuth.GET("/orders", adminHandler.Orders)
	adminAuth.GET("/health", adminHandler.Health)
	adminAuth.GET("/stats", adminHandler.Stats)
	adminAuth.GET("/system/info", adminHandler.SystemInfo)
	adminAuth.GET("/config/:service", adminHandler.Integration)
	adminAuth.POST("/config/:service", adminHandler.UpdateIntegration)
	adminAuth.GET("/settings/chat", adminHandler.ChatSettings)
	adminAuth.POST("/settings/chat", adminHandler.UpdateChatSettings)
	adminAuth.POST("/shopify/sync", adminHandler.SyncShopify)
	adminAuth.POST("/shopify/push/:id", adminHandler.PushToShopify)

	return engine
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Admin-Token", "Stripe-Signature")
	return cors.New(cfg)
}
