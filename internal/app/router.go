// internal/app/router.go
package app

import (
	analyticsHandler "aquafarm-service/internal/handlers/analytics"
	authHandler "aquafarm-service/internal/handlers/auth"
	catalogHandler "aquafarm-service/internal/handlers/catalog"
	pondHandler "aquafarm-service/internal/handlers/pond"
	recordsHandler "aquafarm-service/internal/handlers/records"
	stockHandler "aquafarm-service/internal/handlers/stock"
	subscriptionHandler "aquafarm-service/internal/handlers/subscription"
	"aquafarm-service/internal/middleware"
	"aquafarm-service/internal/notify"
	analyticsService "aquafarm-service/internal/service/analytics"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler         *authHandler.AuthHandler
	SubscriptionHandler *subscriptionHandler.SubscriptionHandler
	CatalogHandler      *catalogHandler.CatalogHandler
	StockHandler        *stockHandler.StockHandler
	PondHandler         *pondHandler.PondHandler
	RecordsHandler      *recordsHandler.RecordsHandler
	AnalyticsHandler    *analyticsHandler.AnalyticsHandler
	AnalyticsService    *analyticsService.Service
	Hub                 *notify.Hub
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.Hub.HandleConnection)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.GET("/me", h.AuthHandler.GetMe)
		authProtected.PUT("/profile", h.AuthHandler.UpdateProfile)
	}

	// ==================== Plan Catalog ====================
	plans := api.Group("/plans")
	{
		plans.GET("", analyticsHandler.TrackVisit(h.AnalyticsService, "plans"), h.CatalogHandler.GetCatalog)
	}

	// ==================== Subscription ====================
	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(h.AuthMiddleware.Auth())
	{
		subscriptions.POST("/quote", h.SubscriptionHandler.GetQuote)
		subscriptions.POST("/payments", h.SubscriptionHandler.SubmitPayment)
		subscriptions.GET("/payments", h.SubscriptionHandler.ListMyPayments)
	}

	// ==================== Ponds ====================
	ponds := api.Group("/ponds")
	ponds.Use(h.AuthMiddleware.Auth())
	{
		ponds.POST("", h.PondHandler.CreatePond)
		ponds.GET("", h.PondHandler.ListPonds)
		ponds.GET("/:id", h.PondHandler.GetPond)
		ponds.PUT("/:id", h.PondHandler.UpdatePond)
		ponds.DELETE("/:id", h.PondHandler.DeletePond)
	}

	// ==================== Feed & Inventory ====================
	feed := api.Group("/feed")
	feed.Use(h.AuthMiddleware.Auth())
	{
		feed.POST("/purchases", h.StockHandler.PurchaseFeed)
		feed.GET("/purchases", h.StockHandler.ListPurchases)
		feed.DELETE("/purchases/:id", h.StockHandler.DeletePurchase)
		feed.POST("/applications", h.StockHandler.ApplyFeed)
		feed.GET("/applications/:pond_id", h.StockHandler.ListApplications)
	}

	inventory := api.Group("/inventory")
	inventory.Use(h.AuthMiddleware.Auth())
	{
		inventory.GET("", h.StockHandler.ListInventory)
		inventory.GET("/low-stock", h.StockHandler.ListLowStock)
		inventory.PUT("/:id", h.StockHandler.UpdateItem)
		inventory.DELETE("/:id", h.StockHandler.DeleteItem)
	}

	// ==================== Farm Records ====================
	expenses := api.Group("/expenses")
	expenses.Use(h.AuthMiddleware.Auth())
	{
		expenses.POST("", h.RecordsHandler.CreateExpense)
		expenses.GET("", h.RecordsHandler.ListExpenses)
		expenses.GET("/totals", h.RecordsHandler.ExpenseTotals)
	}

	sales := api.Group("/sales")
	sales.Use(h.AuthMiddleware.Auth())
	{
		sales.POST("", h.RecordsHandler.CreateSale)
		sales.GET("", h.RecordsHandler.ListSales)
		sales.GET("/revenue", h.RecordsHandler.SalesRevenue)
	}

	water := api.Group("/water")
	water.Use(h.AuthMiddleware.Auth())
	{
		water.POST("/readings", h.RecordsHandler.RecordWaterReading)
		water.GET("/readings/:pond_id", h.RecordsHandler.ListWaterReadings)
		water.GET("/flagged", h.RecordsHandler.ListFlaggedReadings)
	}

	// ==================== Admin ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.AdminOnly())
	{
		admin.GET("/payments/pending", h.SubscriptionHandler.ListPendingPayments)
		admin.PUT("/payments/:id/approve", h.SubscriptionHandler.ApprovePayment)
		admin.PUT("/payments/:id/reject", h.SubscriptionHandler.RejectPayment)
		admin.DELETE("/payments/:id", h.SubscriptionHandler.DeletePayment)

		admin.GET("/users", h.SubscriptionHandler.ListUsers)
		admin.DELETE("/users/:id", h.SubscriptionHandler.DeleteUser)

		admin.POST("/plans", h.CatalogHandler.AddPlan)
		admin.PUT("/plans/:id", h.CatalogHandler.UpdatePlan)
		admin.DELETE("/plans/:id", h.CatalogHandler.RemovePlan)

		admin.GET("/coupons", h.CatalogHandler.ListCoupons)
		admin.POST("/coupons", h.CatalogHandler.AddCoupon)
		admin.DELETE("/coupons/:id", h.CatalogHandler.DeleteCoupon)

		admin.GET("/analytics/visits", h.AnalyticsHandler.GetVisits)
	}
}
