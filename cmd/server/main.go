package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	assetapp "github.com/shopbooks/backend/internal/application/asset"
	billingapp "github.com/shopbooks/backend/internal/application/billing"
	catalogapp "github.com/shopbooks/backend/internal/application/catalog"
	identityapp "github.com/shopbooks/backend/internal/application/identity"
	inventoryapp "github.com/shopbooks/backend/internal/application/inventory"
	ledgerapp "github.com/shopbooks/backend/internal/application/ledger"
	partnerapp "github.com/shopbooks/backend/internal/application/partner"
	reportapp "github.com/shopbooks/backend/internal/application/report"
	tradeapp "github.com/shopbooks/backend/internal/application/trade"
	"github.com/shopbooks/backend/internal/infrastructure/auth"
	"github.com/shopbooks/backend/internal/infrastructure/config"
	"github.com/shopbooks/backend/internal/infrastructure/logger"
	"github.com/shopbooks/backend/internal/infrastructure/persistence"
	"github.com/shopbooks/backend/internal/interfaces/http/handler"
	"github.com/shopbooks/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer logger.Sync(log)

	log.Info("Starting shopbooks backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewRedisTokenBlacklist(redisClient)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Repositories used outside of transactional scopes
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportReader := persistence.NewGormReportReader(db.DB)

	// Application services
	accountService := ledgerapp.NewAccountService(scope, log)
	bankService := ledgerapp.NewBankLedgerService(scope, log)
	journalService := ledgerapp.NewJournalService(scope, log)
	trialBalanceService := ledgerapp.NewTrialBalanceService(scope, log)
	auditService := ledgerapp.NewAuditService(scope, log)
	stockService := inventoryapp.NewStockService(scope, log)
	vendorService := partnerapp.NewVendorService(scope, log)
	customerService := partnerapp.NewCustomerService(scope, log)
	categoryService := catalogapp.NewCategoryService(scope, log)
	productService := catalogapp.NewProductService(scope, log)
	purchaseService := tradeapp.NewPurchaseService(scope, log)
	saleService := tradeapp.NewSaleService(scope, log)
	assetService := assetapp.NewFixedAssetService(scope, log)
	tenantService := billingapp.NewTenantService(tenantRepo, subscriptionRepo, userRepo, scope, log)
	subscriptionService := billingapp.NewSubscriptionService(tenantRepo, subscriptionRepo, invoiceRepo, log)
	authService := identityapp.NewAuthService(userRepo, tenantRepo, jwtService, blacklist, log)
	reportService := reportapp.NewReportService(scope, reportReader, log)
	exporter := reportapp.NewExcelExporter()

	handlers := router.Handlers{
		System:       handler.NewSystemHandler(db, redisClient),
		Auth:         handler.NewAuthHandler(authService),
		Tenant:       handler.NewTenantHandler(tenantService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Account:      handler.NewAccountHandler(accountService),
		Bank:         handler.NewBankHandler(bankService),
		Journal:      handler.NewJournalHandler(journalService),
		TrialBalance: handler.NewTrialBalanceHandler(trialBalanceService),
		Audit:        handler.NewAuditHandler(auditService),
		Vendor:       handler.NewVendorHandler(vendorService),
		Customer:     handler.NewCustomerHandler(customerService),
		Category:     handler.NewCategoryHandler(categoryService),
		Product:      handler.NewProductHandler(productService),
		Inventory:    handler.NewInventoryHandler(stockService),
		Purchase:     handler.NewPurchaseHandler(purchaseService),
		Sale:         handler.NewSaleHandler(saleService),
		FixedAsset:   handler.NewFixedAssetHandler(assetService),
		Report:       handler.NewReportHandler(reportService, exporter),
	}

	engine := router.New(cfg, log, jwtService, blacklist, redisClient, handlers)

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
