package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Wheel
	WheelDiameter        float64
	WheelPegs            int
	ViewportWidth        float64
	ViewportHeight       float64
	MaxRestSteps         int
	SessionExpiryMinutes int

	// Receipts
	ReceiptSecret     string
	ReceiptTTLMinutes int

	// Security
	AdminTokenHash string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnv("MIGRATE_ON_START", "false") == "true",

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Wheel
		WheelDiameter:        getEnvFloat("WHEEL_DIAMETER", 512),
		WheelPegs:            getEnvInt("WHEEL_PEGS", 12),
		ViewportWidth:        getEnvFloat("WHEEL_VIEWPORT_WIDTH", 720),
		ViewportHeight:       getEnvFloat("WHEEL_VIEWPORT_HEIGHT", 1280),
		MaxRestSteps:         getEnvInt("WHEEL_MAX_REST_STEPS", 36000),
		SessionExpiryMinutes: getEnvInt("SESSION_EXPIRY_MINUTES", 30),

		// Receipts
		ReceiptSecret:     getEnv("RECEIPT_SECRET", "change-me-in-production"),
		ReceiptTTLMinutes: getEnvInt("RECEIPT_TTL_MINUTES", 1440),

		// Security
		AdminTokenHash: getEnv("ADMIN_TOKEN_HASH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
