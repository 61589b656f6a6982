package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/playmatatu/spinwheel/internal/api"
	"github.com/playmatatu/spinwheel/internal/config"
	"github.com/playmatatu/spinwheel/internal/database"
	"github.com/playmatatu/spinwheel/internal/game"
	"github.com/playmatatu/spinwheel/internal/migrations"
	"github.com/playmatatu/spinwheel/internal/redis"
	"github.com/playmatatu/spinwheel/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database (optional)
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if db != nil {
		defer db.Close()

		// Run migrations on start if requested
		if cfg.MigrateOnStart {
			log.Println("[MIGRATE] Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}
	}

	// Initialize Redis (optional)
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// Initialize session manager
	game.InitializeManager(db, rdb, cfg)

	// Rebroadcast results published by other instances
	if rdb != nil {
		ws.SetRedisClient(rdb)
		ws.StartEventSubscriber(context.Background())
	}

	if cfg.AdminTokenHash == "" {
		log.Println("[ADMIN] ADMIN_TOKEN_HASH not set; admin routes are disabled")
	}

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, db, cfg)

	log.Printf("Starting spin wheel server on port %s (pegs=%d, diameter=%.0f)", cfg.Port, cfg.WheelPegs, cfg.WheelDiameter)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
