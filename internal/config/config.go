// Package config loads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// RecordStoreModeLocal serves invoices from the service's own database.
	RecordStoreModeLocal = "local"
	// RecordStoreModeRemote proxies invoice reads and writes to an upstream
	// REST record store.
	RecordStoreModeRemote = "remote"
)

// Config holds every tunable the service reads at startup.
type Config struct {
	Environment string
	HTTPAddr    string

	DatabaseDSN          string
	DatabaseMaxOpenConns int

	RecordStoreMode    string
	RecordStoreBaseURL string
	RecordStoreTimeout time.Duration

	// BatchContinueOnError keeps applying the remaining invoices of a batch
	// after one update fails. When false the batch aborts on first failure.
	BatchContinueOnError bool

	// APIToken guards the inbound API. Empty disables auth for local
	// development.
	APIToken string

	CredentialTTL time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:          getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseDSN:          getEnv("DATABASE_DSN", ""),
		DatabaseMaxOpenConns: getEnvInt("DATABASE_MAX_OPEN_CONNS", 10),
		RecordStoreMode:      strings.ToLower(getEnv("RECORD_STORE_MODE", RecordStoreModeLocal)),
		RecordStoreBaseURL:   getEnv("RECORD_STORE_BASE_URL", ""),
		RecordStoreTimeout:   getEnvDuration("RECORD_STORE_TIMEOUT", 15*time.Second),
		BatchContinueOnError: getEnvBool("BATCH_CONTINUE_ON_ERROR", true),
		APIToken:             os.Getenv("API_TOKEN"),
		CredentialTTL:        getEnvDuration("CREDENTIAL_TTL", 12*time.Hour),
	}
	return cfg, nil
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
