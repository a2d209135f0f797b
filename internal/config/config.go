// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Auth      AuthConfig
	Events    EventsConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// StorageConfig selects and locates the storage backend
type StorageConfig struct {
	Driver    string // "sqlite" or "json"
	DBPath    string
	StatePath string
}

// AuthConfig holds owner authentication settings.
// Auth is disabled when JWTSecret is empty.
type AuthConfig struct {
	JWTSecret     string
	OwnerPassword string
	TokenTTL      time.Duration
}

// Enabled reports whether the ledger API requires a bearer token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// EventsConfig holds message broker settings.
// Publishing is disabled when AMQPURL is empty.
type EventsConfig struct {
	AMQPURL string
	Queue   string
}

// RedisConfig holds Redis connection settings.
// Redis is optional; an empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig holds settings for the per-client request limiter.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "sqlite"),
			DBPath:    getEnv("DB_PATH", "./data/ledger.db"),
			StatePath: getEnv("STATE_PATH", "./data/ledger.json"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			OwnerPassword: getEnv("OWNER_PASSWORD", ""),
			TokenTTL:      getDuration("TOKEN_TTL", 24*time.Hour),
		},
		Events: EventsConfig{
			AMQPURL: getEnv("AMQP_URL", ""),
			Queue:   getEnv("AMQP_QUEUE", "session.settled"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBool("RATE_LIMIT_ENABLED", true),
			Limit:   getInt("RATE_LIMIT_REQUESTS", 120),
			Window:  getDuration("RATE_LIMIT_WINDOW", time.Minute),
			Prefix:  getEnv("RATE_LIMIT_PREFIX", "potledger:rl"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "sqlite", "json":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be sqlite or json, got %q", c.Storage.Driver)
	}
	if c.Auth.Enabled() && c.Auth.OwnerPassword == "" {
		return fmt.Errorf("OWNER_PASSWORD is required when JWT_SECRET is set")
	}
	if c.RateLimit.Limit < 1 {
		c.RateLimit.Limit = 1
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = time.Minute
	}
	// Windows are counted in whole milliseconds
	if c.RateLimit.Window < time.Millisecond {
		c.RateLimit.Window = time.Millisecond
	}
	return nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}
