package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbilling "github.com/ledger/backend/internal/application/billing"
	appinventory "github.com/ledger/backend/internal/application/inventory"
	"github.com/ledger/backend/internal/infrastructure/auth"
	"github.com/ledger/backend/internal/infrastructure/cache"
	"github.com/ledger/backend/internal/infrastructure/config"
	"github.com/ledger/backend/internal/infrastructure/logger"
	"github.com/ledger/backend/internal/infrastructure/persistence"
	"github.com/ledger/backend/internal/infrastructure/scheduler"
	"github.com/ledger/backend/internal/infrastructure/upstream"
	"github.com/ledger/backend/internal/interfaces/http/handler"
	"github.com/ledger/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting billing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	assetRepo := persistence.NewGormAssetRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	syncRunRepo := persistence.NewGormSyncRunRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	overrideRepo := persistence.NewGormOverrideRepository(db.DB)
	itemOverrideRepo := persistence.NewGormItemOverrideRepository(db.DB)
	manualItemRepo := persistence.NewGormManualItemRepository(db.DB)
	lineItemRepo := persistence.NewGormLineItemRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)

	// Upstream API clients
	inventoryClient := upstream.NewInventoryClient(cfg.Upstream.Inventory, log)
	ticketClient := upstream.NewTicketClient(cfg.Upstream.Tickets, log)
	backupClient := upstream.NewBackupClient(cfg.Upstream.Backup, log)

	// Dashboard cache is optional; the dashboard computes from scratch
	// without it.
	var dashboardCache appbilling.DashboardCache
	if cfg.Dashboard.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
		dashboardCache = redisCache
		log.Info("Dashboard cache enabled", zap.Duration("ttl", cfg.Dashboard.CacheTTL))
	}

	// Application services
	invoiceService := appbilling.NewInvoiceService(
		companyRepo, assetRepo, contactRepo, ticketRepo,
		planRepo, overrideRepo, itemOverrideRepo, manualItemRepo, lineItemRepo,
		invoiceRepo, log,
	)
	planService := appbilling.NewPlanService(planRepo, overrideRepo, companyRepo)
	overrideService := appbilling.NewOverrideService(overrideRepo, itemOverrideRepo, planRepo)
	manualItemService := appbilling.NewManualItemService(manualItemRepo)
	lineItemService := appbilling.NewLineItemService(lineItemRepo)
	dashboardService := appbilling.NewDashboardService(
		companyRepo, invoiceService, dashboardCache, cfg.Dashboard.CacheTTL, log)
	syncService := appinventory.NewSyncService(
		inventoryClient, ticketClient, backupClient,
		companyRepo, assetRepo, contactRepo, ticketRepo, syncRunRepo, log,
	)

	tokenService := auth.NewTokenService(cfg.JWT)

	// Scheduled sync jobs
	syncScheduler := scheduler.NewSyncScheduler(cfg.Scheduler, syncService, log)
	if err := syncScheduler.Start(); err != nil {
		log.Fatal("Failed to start sync scheduler", zap.Error(err))
	}
	defer syncScheduler.Stop()

	engine := router.New(cfg.HTTP, tokenService, router.Handlers{
		System:    handler.NewSystemHandler(db.DB),
		Plans:     handler.NewPlanHandler(planService),
		Overrides: handler.NewOverrideHandler(overrideService),
		Manual:    handler.NewManualItemHandler(manualItemService),
		LineItems: handler.NewLineItemHandler(lineItemService),
		Invoices:  handler.NewInvoiceHandler(invoiceService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Sync:      handler.NewSyncHandler(syncService),
	}, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
