package app

import (
	"errors"
	"io"
	"os"
	"strconv"
	"time"

	httpapi "github.com/aussiebroadwan/twitchauth/internal/idp/http"
	"github.com/aussiebroadwan/twitchauth/internal/idp/service"
	"github.com/aussiebroadwan/twitchauth/pkg/httpx"
)

// SeedClient is the client ensured at startup. Zero means generate one when
// the store is empty.
type SeedClient struct {
	ID     string
	Secret string
	Name   string
	Scopes []string
}

type Config struct {
	DatabaseDSN string        // sqlite DSN (default: idp.db)
	Pepper      string        // Optional: mixed into client secret hashes
	TokenTTL    time.Duration // Access token lifetime (default: 60 days)
	Seed        SeedClient

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	Limits httpapi.Limits

	// Stdout receives generated client credentials (default: os.Stdout).
	Stdout io.Writer
}

func LoadConfig() Config {
	return Config{
		DatabaseDSN: getEnvOrDefault("IDP_DB_DSN", "idp.db"),
		Pepper:      os.Getenv("IDP_PEPPER"),
		TokenTTL:    getEnvDurationOrDefault("IDP_TOKEN_TTL", service.DefaultAccessTTL),
		Seed: SeedClient{
			ID:     os.Getenv("IDP_CLIENT_ID"),
			Secret: os.Getenv("IDP_CLIENT_SECRET"),
			Name:   getEnvOrDefault("IDP_CLIENT_NAME", "dev-client"),
			Scopes: httpx.ParseSpaceDelimitedFields(os.Getenv("IDP_CLIENT_SCOPES")),
		},
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		Limits: httpapi.Limits{
			Token:    httpx.RateLimitFromEnv("TOKEN", httpx.TokenLimit),
			Validate: httpx.RateLimitFromEnv("VALIDATE", httpx.ValidateLimit),
			Health:   httpx.RateLimitFromEnv("HEALTH", httpx.HealthLimit),
		},
	}
}

// Validate rejects half configured seed clients.
func (c Config) Validate() error {
	if (c.Seed.ID == "") != (c.Seed.Secret == "") {
		return errors.New("IDP_CLIENT_ID and IDP_CLIENT_SECRET must be set together")
	}
	if c.TokenTTL <= 0 {
		return errors.New("IDP_TOKEN_TTL must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds, matching expires_in
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
