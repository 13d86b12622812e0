// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veloxcommerce/catalog-backend/internal/config"
	"github.com/veloxcommerce/catalog-backend/internal/handlers"
	"github.com/veloxcommerce/catalog-backend/internal/middleware"
	"github.com/veloxcommerce/catalog-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	authService := services.NewAuthService(cfg.Auth)
	categoryService := services.NewCategoryService(db)
	pricingService := services.NewPricingService(db)
	productService := services.NewProductService(db)
	attributeService := services.NewAttributeService(db)
	mediaService := services.NewMediaService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	pricingHandler := handlers.NewPricingHandler(pricingService)
	productHandler := handlers.NewProductHandler(productService)
	attributeHandler := handlers.NewAttributeHandler(attributeService)
	mediaHandler := handlers.NewMediaHandler(mediaService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "catalog-backend",
		})
	})

	api := r.Group("/api")
	{
		// Authentication proxy routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.GET("/profile", authHandler.GetProfile)
		}

		// Category routes
		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/tree", categoryHandler.GetTree)
			categories.GET("/:id", categoryHandler.GetCategory)

			protected := categories.Group("")
			protected.Use(middleware.AuthRequired(authService))
			{
				protected.POST("", categoryHandler.CreateCategory)
				protected.PUT("/:id", categoryHandler.UpdateCategory)
				protected.PUT("/:id/move", categoryHandler.MoveCategory)
				protected.DELETE("/:id", categoryHandler.DeleteCategory)
			}
		}

		// Product routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/sku/:sku", productHandler.GetProductBySKU)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/attributes", attributeHandler.GetProductAttributes)
			products.GET("/:id/media", mediaHandler.GetProductMedia)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired(authService))
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.PUT("/:id/attributes/:attributeId", attributeHandler.SetProductAttribute)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.DELETE("/:id/hard",
					middleware.AdminRequired(), productHandler.HardDeleteProduct)
			}
		}

		// Attribute routes
		attributes := api.Group("/attributes")
		{
			attributes.GET("", attributeHandler.GetAttributes)
			attributes.GET("/:id", attributeHandler.GetAttribute)

			protected := attributes.Group("")
			protected.Use(middleware.AuthRequired(authService))
			{
				protected.POST("", attributeHandler.CreateAttribute)
				protected.PUT("/:id", attributeHandler.UpdateAttribute)
			}
		}

		// Media routes
		media := api.Group("/media")
		media.Use(middleware.AuthRequired(authService))
		{
			media.POST("", mediaHandler.CreateMedia)
			media.PUT("/:id", mediaHandler.UpdateMedia)
			media.PUT("/:id/primary", mediaHandler.SetPrimaryMedia)
			media.DELETE("/:id", mediaHandler.DeleteMedia)
		}

		// Pricing routes
		pricing := api.Group("/pricing")
		{
			pricing.GET("/product/:productId", pricingHandler.GetHistory)
			pricing.GET("/product/:productId/current", pricingHandler.GetCurrentPrice)

			protected := pricing.Group("")
			protected.Use(middleware.AuthRequired(authService))
			{
				protected.POST("", pricingHandler.UpsertPricing)
				protected.DELETE("/:id", pricingHandler.DeletePricing)
			}
		}
	}

	return r
}
