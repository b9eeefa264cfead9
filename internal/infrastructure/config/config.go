package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service
type Config struct {
	// App
	AppVersion string

	// HTTP (metrics/health only)
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL
	PostgresURI string

	// MongoDB (audit sink)
	MongoURI string
	MongoDB  string

	// Planner
	PlannerInterval    time.Duration
	SlotIntervalDays   int
	DispatchWindowDays int
	ReplanInterval     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresURI: getEnv("POSTGRES_DSN", "postgres://localhost:5432/fieldscan?sslmode=disable"),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "fieldscan"),

		PlannerInterval:    time.Duration(getEnvAsInt("PLANNER_INTERVAL", 300)) * time.Second,
		SlotIntervalDays:   getEnvAsInt("SLOT_INTERVAL_DAYS", 14),
		DispatchWindowDays: getEnvAsInt("DISPATCH_WINDOW_DAYS", 3),
		ReplanInterval:     time.Duration(getEnvAsInt("REPLAN_INTERVAL", 30)) * time.Second,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
