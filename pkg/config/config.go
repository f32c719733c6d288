// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, store, identity provider and sharing

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Store contains key-value store configuration
	Store StoreConfig

	// Identity contains identity provider configuration
	Identity IdentityConfig

	// Share contains share code policy
	Share ShareConfig

	// Log contains logging configuration
	Log LogConfig

	// RateLimit contains per-client request limits
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `env:"PORT" envDefault:"8000"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// StoreConfig holds key-value store backend configuration
type StoreConfig struct {
	// Type specifies the store backend (memory/redis/sqlite)
	Type string `env:"STORE_TYPE" envDefault:"memory"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`

	// Password is the Redis authentication password
	Password string `env:"REDIS_PASSWORD"`

	// DB is the Redis database number
	DB int `env:"REDIS_DB" envDefault:"0"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `env:"SQLITE_PATH" envDefault:"shoplist.db"`
}

// IdentityConfig holds identity provider configuration
type IdentityConfig struct {
	// URL is the provider's base URL
	URL string `env:"SUPABASE_URL"`

	// ServiceRoleKey authorizes admin calls such as creating users
	ServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`

	Timeout time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"10s"`
}

// Configured reports whether the provider can be called
func (c IdentityConfig) Configured() bool {
	return c.URL != "" && c.ServiceRoleKey != ""
}

// ShareConfig holds share code policy
type ShareConfig struct {
	// TTL is how long a share stays redeemable
	TTL time.Duration `env:"SHARE_TTL" envDefault:"720h"`

	// CodeLength is the number of characters in a share code
	CodeLength int `env:"SHARE_CODE_LENGTH" envDefault:"6"`

	// SweepInterval enables the background sweep when positive
	SweepInterval time.Duration `env:"SHARE_SWEEP_INTERVAL" envDefault:"0s"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// File enables rotating file output in addition to stdout
	File string `env:"LOG_FILE"`

	MaxSizeMB  int `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAgeDays int `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	// Requests allowed per Window for one client
	Requests int           `env:"RATE_LIMIT" envDefault:"100"`
	Window   time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

// Load reads configuration from the given variables instead of the process environment
func Load(environ map[string]string) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	switch c.Store.Type {
	case "memory":
	case "redis":
		if c.Store.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis store")
		}
	case "sqlite":
		if c.Store.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite store")
		}
	default:
		return errors.New("store type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Share.TTL <= 0 {
		return errors.New("share ttl must be positive")
	}

	if c.Share.CodeLength < 4 || c.Share.CodeLength > 32 {
		return errors.New("share code length must be between 4 and 32")
	}

	if c.Share.SweepInterval < 0 {
		return errors.New("share sweep interval cannot be negative")
	}

	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return errors.New("rate limit must allow at least 1 request per positive window")
	}

	if !logLevels[c.Log.Level] {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	return nil
}
