package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	identityapp "github.com/shopbooks/backend/internal/application/identity"
	"github.com/shopbooks/backend/internal/infrastructure/auth"
	"github.com/shopbooks/backend/internal/infrastructure/config"
	"github.com/shopbooks/backend/internal/infrastructure/logger"
	"github.com/shopbooks/backend/internal/interfaces/http/handler"
	"github.com/shopbooks/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every endpoint handler wired by the router
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	Tenant       *handler.TenantHandler
	Subscription *handler.SubscriptionHandler
	Account      *handler.AccountHandler
	Bank         *handler.BankHandler
	Journal      *handler.JournalHandler
	TrialBalance *handler.TrialBalanceHandler
	Audit        *handler.AuditHandler
	Vendor       *handler.VendorHandler
	Customer     *handler.CustomerHandler
	Category     *handler.CategoryHandler
	Product      *handler.ProductHandler
	Inventory    *handler.InventoryHandler
	Purchase     *handler.PurchaseHandler
	Sale         *handler.SaleHandler
	FixedAsset   *handler.FixedAssetHandler
	Report       *handler.ReportHandler
}

// New builds the gin engine with all middleware and routes
func New(
	cfg *config.Config,
	log *zap.Logger,
	jwtService *auth.JWTService,
	blacklist identityapp.TokenBlacklist,
	redisClient *redis.Client,
	h Handlers,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	bindingSetup.Do(registerBindings)

	engine := gin.New()
	_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(redisClient, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, log)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")

	// Public routes
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/tenants", h.Tenant.Provision)

	// Everything below requires a valid access token
	protected := api.Group("", middleware.JWTAuth(jwtService, blacklist, log))

	authGroup := protected.Group("/auth")
	{
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.POST("/change-password", h.Auth.ChangePassword)
		authGroup.POST("/register", middleware.RequireRole("owner", "manager"), h.Auth.Register)
	}

	tenantGroup := protected.Group("/tenant")
	{
		tenantGroup.GET("", h.Tenant.Get)
		tenantGroup.POST("/suspend", middleware.RequireRole("owner"), h.Tenant.Suspend)
		tenantGroup.POST("/reactivate", middleware.RequireRole("owner"), h.Tenant.Reactivate)
	}

	subscriptionGroup := protected.Group("/subscription")
	{
		subscriptionGroup.GET("", h.Subscription.Current)
		subscriptionGroup.POST("", middleware.RequireRole("owner"), h.Subscription.Start)
		subscriptionGroup.GET("/invoices", h.Subscription.ListInvoices)
		subscriptionGroup.POST("/invoices/:id/pay", middleware.RequireRole("owner"), h.Subscription.PayInvoice)
	}

	accounts := protected.Group("/accounts")
	{
		accounts.POST("", h.Account.Create)
		accounts.GET("", h.Account.List)
		accounts.GET("/:id", h.Account.Get)
		accounts.PUT("/:id", h.Account.Update)
		accounts.POST("/:id/deactivate", h.Account.Deactivate)
		accounts.DELETE("/:id", middleware.RequireRole("owner", "manager"), h.Account.Delete)
	}

	bank := protected.Group("/bank")
	{
		bank.POST("/credits", h.Bank.CreateCredit)
		bank.POST("/debits", h.Bank.CreateDebit)
		bank.GET("/transactions", h.Bank.List)
		bank.GET("/transactions/:id", h.Bank.Get)
	}

	journal := protected.Group("/journal-entries")
	{
		journal.POST("", h.Journal.Create)
		journal.GET("", h.Journal.List)
		journal.GET("/:id", h.Journal.Get)
		journal.PUT("/:id", h.Journal.Update)
		journal.DELETE("/:id", middleware.RequireRole("owner", "manager"), h.Journal.Delete)
	}

	protected.GET("/trial-balance", h.TrialBalance.Get)

	audit := protected.Group("/audit", middleware.RequireRole("owner", "manager"))
	{
		audit.POST("/bank", h.Audit.ReconcileBank)
		audit.POST("/stock", h.Audit.ReconcileStock)
	}

	vendors := protected.Group("/vendors")
	{
		vendors.POST("", h.Vendor.Create)
		vendors.GET("", h.Vendor.List)
		vendors.GET("/:id", h.Vendor.Get)
		vendors.PUT("/:id", h.Vendor.Update)
		vendors.POST("/:id/payments", h.Vendor.Pay)
		vendors.DELETE("/:id", middleware.RequireRole("owner", "manager"), h.Vendor.Delete)
	}

	customers := protected.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.POST("/:id/collections", h.Customer.Collect)
		customers.DELETE("/:id", middleware.RequireRole("owner", "manager"), h.Customer.Delete)
	}

	categories := protected.Group("/categories")
	{
		categories.POST("", h.Category.Create)
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	products := protected.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.POST("/:id/deactivate", h.Product.Deactivate)
		products.DELETE("/:id", middleware.RequireRole("owner", "manager"), h.Product.Delete)
	}

	stock := protected.Group("/stock")
	{
		stock.POST("/adjustments", h.Inventory.Adjust)
		stock.GET("/summaries", h.Inventory.ListSummaries)
		stock.GET("/summaries/:id", h.Inventory.GetSummary)
		stock.GET("/summaries/:id/entries", h.Inventory.ListEntries)
	}

	purchases := protected.Group("/purchases")
	{
		purchases.POST("", h.Purchase.Create)
		purchases.GET("", h.Purchase.List)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.PUT("/:id", h.Purchase.Update)
		purchases.DELETE("/:id", middleware.RequireRole("owner", "manager"), h.Purchase.Delete)
	}

	sales := protected.Group("/sales")
	{
		sales.POST("", h.Sale.Create)
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", h.Sale.Update)
		sales.POST("/:id/complete", h.Sale.Complete)
		sales.POST("/:id/cancel", h.Sale.Cancel)
		sales.POST("/:id/return", middleware.RequireRole("owner", "manager"), h.Sale.Return)
		sales.DELETE("/:id", middleware.RequireRole("owner", "manager"), h.Sale.Delete)
	}

	assets := protected.Group("/fixed-assets")
	{
		assets.POST("", h.FixedAsset.Create)
		assets.GET("", h.FixedAsset.List)
		assets.GET("/:id", h.FixedAsset.Get)
		assets.POST("/:id/depreciate", h.FixedAsset.Depreciate)
		assets.POST("/depreciate-all", h.FixedAsset.DepreciateAll)
		assets.POST("/:id/dispose", middleware.RequireRole("owner", "manager"), h.FixedAsset.Dispose)
		assets.POST("/:id/sell", middleware.RequireRole("owner", "manager"), h.FixedAsset.Sell)
	}

	reports := protected.Group("/reports")
	{
		reports.GET("/balance-sheet", h.Report.BalanceSheet)
		reports.GET("/profit-loss", h.Report.ProfitLoss)
		reports.GET("/cash-flow", h.Report.CashFlow)
		reports.GET("/bank-book", h.Report.BankBook)
	}

	return engine
}
