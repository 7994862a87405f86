package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/mobolade/chowpay/internal/metrics"
	pkgAuth "github.com/mobolade/chowpay/internal/pkg/auth"
	"github.com/mobolade/chowpay/internal/pkg/signature"
	"github.com/mobolade/chowpay/internal/server/http/handlers"
	"github.com/mobolade/chowpay/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(
	facade handlers.SettlementFacade,
	verifier *signature.Verifier,
	guard *pkgAuth.AdminKeyGuard,
	m *metrics.Metrics,
	pinger handlers.Pinger,
	logger *slog.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	webhookHandler := handlers.NewWebhookHandler(facade, m, logger)
	withdrawalHandler := handlers.NewWithdrawalHandler(facade, m)
	bankHandler := handlers.NewBankHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	healthHandler := handlers.NewHealthHandler(pinger)

	api := engine.Group("/api")
	api.POST("/webhooks/paystack", middleware.VerifyWebhook(verifier), webhookHandler.Handle)

	agents := api.Group("/agents")
	agents.POST("/:id/withdrawals", withdrawalHandler.Request)
	agents.GET("/:id/withdrawals", withdrawalHandler.List)
	agents.POST("/:id/bank", bankHandler.Verify)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(guard))
	admin.POST("/withdrawals/:id/complete", adminHandler.Complete)

	engine.GET("/healthz", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(m.Handler()))

	return engine
}
