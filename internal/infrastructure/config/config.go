// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Engine constants
// (funding fee, premium cap, quorum) are compiled in, not configured here:
// replicas diverge if they apply transactions under different rules.
type Config struct {
	// App
	AppVersion string

	// Genesis identities
	OwnerAccount string
	FirstAirline string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB (ledger snapshots)
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (transaction journal)
	PostgresURI string

	// NATS (event publishing)
	NatsURL string

	// Payout gateway
	PayoutEndpoint string
	PayoutToken    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),

		OwnerAccount: getEnv("OWNER_ACCOUNT", "owner"),
		FirstAirline: getEnv("FIRST_AIRLINE", "airline-1"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "surety"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", "postgres://localhost:5432/surety"),

		NatsURL: getEnv("NATS_URL", "nats://localhost:4222"),

		PayoutEndpoint: getEnv("PAYOUT_ENDPOINT", ""),
		PayoutToken:    getEnv("PAYOUT_TOKEN", ""),
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
