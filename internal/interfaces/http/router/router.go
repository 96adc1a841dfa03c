package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ledger/backend/internal/infrastructure/auth"
	"github.com/ledger/backend/internal/infrastructure/config"
	"github.com/ledger/backend/internal/infrastructure/logger"
	"github.com/ledger/backend/internal/interfaces/http/handler"
	"github.com/ledger/backend/internal/interfaces/http/middleware"
)

// Handlers collects everything the router mounts
type Handlers struct {
	System    *handler.SystemHandler
	Plans     *handler.PlanHandler
	Overrides *handler.OverrideHandler
	Manual    *handler.ManualItemHandler
	LineItems *handler.LineItemHandler
	Invoices  *handler.InvoiceHandler
	Dashboard *handler.DashboardHandler
	Sync      *handler.SyncHandler
}

// New builds the gin engine with all middleware and routes attached.
// Everything under /api/v1 requires a billing-capable token; sync
// triggers additionally require admin.
func New(cfg config.HTTPConfig, tokens *auth.TokenService, h Handlers, log *zap.Logger) *gin.Engine {
	handler.RegisterValidators()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: cfg.CORSAllowMethods,
		AllowHeaders: cfg.CORSAllowHeaders,
		MaxAge:       middleware.DefaultCORSConfig().MaxAge,
	}))

	if len(cfg.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.TrustedProxies)
	}

	engine.GET("/healthz", h.System.Healthz)
	engine.GET("/readyz", h.System.Readyz)

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(tokens), middleware.RequireBilling())

	plans := api.Group("/plans")
	{
		plans.POST("", h.Plans.Create)
		plans.GET("", h.Plans.List)
		plans.GET("/:id", h.Plans.Get)
		plans.PUT("/:id", h.Plans.Update)
		plans.DELETE("/:id", h.Plans.Delete)
	}

	clients := api.Group("/clients/:account")
	{
		clients.PUT("/override", h.Overrides.PutClient)
		clients.GET("/override", h.Overrides.GetClient)
		clients.DELETE("/override", h.Overrides.DeleteClient)

		clients.GET("/overrides", h.Overrides.ListItems)
		clients.PUT("/overrides/assets/:assetID", h.Overrides.PutAsset)
		clients.PUT("/overrides/users/:userID", h.Overrides.PutUser)

		clients.POST("/manual-assets", h.Manual.AddAsset)
		clients.GET("/manual-assets", h.Manual.ListAssets)
		clients.POST("/manual-users", h.Manual.AddUser)
		clients.GET("/manual-users", h.Manual.ListUsers)

		clients.POST("/line-items", h.LineItems.Create)
		clients.GET("/line-items", h.LineItems.List)

		clients.GET("/invoices/:year/:month", h.Invoices.Get)
		clients.POST("/invoices/:year/:month/compute", h.Invoices.Compute)
		clients.POST("/invoices/:year/:month/draft", h.Invoices.SaveDraft)
	}

	api.DELETE("/overrides/assets/:id", h.Overrides.DeleteAsset)
	api.DELETE("/overrides/users/:id", h.Overrides.DeleteUser)
	api.DELETE("/manual-assets/:id", h.Manual.DeleteAsset)
	api.DELETE("/manual-users/:id", h.Manual.DeleteUser)
	api.PUT("/line-items/:id", h.LineItems.Update)
	api.DELETE("/line-items/:id", h.LineItems.Delete)

	api.POST("/invoices/:id/finalize", h.Invoices.Finalize)
	api.GET("/dashboard/:year/:month", h.Dashboard.Overview)

	syncGroup := api.Group("/sync")
	{
		syncGroup.GET("/status", h.Sync.Status)
		syncGroup.POST("/:job", middleware.RequireAdmin(), h.Sync.Trigger)
	}

	return engine
}
