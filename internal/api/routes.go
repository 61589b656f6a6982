package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/spinwheel/internal/api/handlers"
	"github.com/playmatatu/spinwheel/internal/config"
	"github.com/playmatatu/spinwheel/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Wheel endpoints
		wheel := v1.Group("/wheel")
		{
			wheel.POST("", handlers.CreateWheel(cfg))
			wheel.POST("/receipt/verify", handlers.VerifyReceipt(cfg))
			wheel.GET("/:token", handlers.GetWheel())
			wheel.DELETE("/:token", handlers.EndWheel())
			wheel.POST("/:token/spin", handlers.SpinWheel(cfg))
			wheel.GET("/:token/spins", handlers.GetSpinHistory())
			wheel.GET("/:token/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleWheelWebSocket())
		}

		// Admin endpoints
		admin := v1.Group("/admin", middleware.RequireAdminToken(cfg))
		{
			admin.GET("/prizes/:token", handlers.GetPrizes())
			admin.PUT("/prizes/:token", handlers.SetPrizes(db))
			admin.GET("/audit", handlers.GetAuditLogs(db))
		}
	}
}
