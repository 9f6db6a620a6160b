package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/Shanthi551/telecom-data-plan/internal/config"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/handlers"
	"github.com/Shanthi551/telecom-data-plan/internal/server/http/middleware"
	"github.com/Shanthi551/telecom-data-plan/internal/session"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DashboardFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Authorization", middleware.RequestIDHeader, "Content-Disposition"}

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(cors.New(corsConfig))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	accountHandler := handlers.NewAccountHandler(facade)
	planHandler := handlers.NewPlanHandler(facade)
	purchaseHandler := handlers.NewPurchaseHandler(facade)
	reportHandler := handlers.NewReportHandler(facade)

	loginLimiter := middleware.NewClientLimiter(cfg.LoginRate, cfg.LoginBurst)

	api := engine.Group("/api")
	api.POST("/register", accountHandler.Register)
	api.POST("/login", middleware.RateLimit(loginLimiter), accountHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/logout", accountHandler.Logout)
	authed.GET("/session", accountHandler.Session)

	authed.GET("/plans", planHandler.List)
	authed.POST("/plans/recommend", planHandler.Recommend)
	authed.POST("/purchases", purchaseHandler.Create)
	authed.GET("/purchases", purchaseHandler.List)

	reports := authed.Group("/reports")
	reports.GET("/users", reportHandler.Users)
	reports.GET("/purchases", reportHandler.Purchases)
	reports.GET("/logins", reportHandler.Logins)
	reports.GET("/summary", reportHandler.Summary)
	reports.GET("/export", reportHandler.Export)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequirePage(session.PageRoles))
	admin.PATCH("/users/:id/role", reportHandler.UpdateRole)

	return engine
}
