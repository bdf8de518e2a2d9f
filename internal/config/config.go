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
	DatabaseURL string

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Game Settings
	DailyWordLimit  int
	MaxAttempts     int
	SessionTTLHours int

	// Security
	JWTSecret      string
	TokenExpiryHrs int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/guessword?sslmode=disable"),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Game Settings
		DailyWordLimit:  getEnvInt("DAILY_WORD_LIMIT", 3),
		MaxAttempts:     getEnvInt("MAX_ATTEMPTS", 5),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),

		// Security
		JWTSecret:      getEnv("JWT_SECRET", "change-me-in-production"),
		TokenExpiryHrs: getEnvInt("TOKEN_EXPIRY_HOURS", 24),
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
