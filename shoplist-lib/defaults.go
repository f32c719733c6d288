// ABOUTME: Default implementations for library dependencies
// ABOUTME: Provides factory functions for loggers and store configurations

package shoplist

import (
	"io"

	"shoplist-api/core/interfaces"
	"shoplist-api/infrastructure/logger/logrus"
	"shoplist-api/pkg/config"
)

// DefaultLogger creates a warn-level JSON logger on stdout
func DefaultLogger() interfaces.Logger {
	return logrus.New(logrus.Options{Level: "warn"})
}

// QuietLogger creates a logger that discards all output
func QuietLogger() interfaces.Logger {
	return logrus.New(logrus.Options{Level: "panic", Output: io.Discard})
}

// MemoryStore describes a process-local store; data is lost on Close
func MemoryStore() config.StoreConfig {
	return config.StoreConfig{Type: "memory"}
}

// SQLiteStore describes a store kept in the SQLite file at path
func SQLiteStore(path string) config.StoreConfig {
	if path == "" {
		path = "shoplist.db"
	}
	return config.StoreConfig{Type: "sqlite", SQLite: config.SQLiteConfig{Path: path}}
}

// RedisStore describes a store on the Redis server at address
func RedisStore(address, password string, db int) config.StoreConfig {
	return config.StoreConfig{
		Type:  "redis",
		Redis: config.RedisConfig{Address: address, Password: password, DB: db},
	}
}

// WithQuietMode configures the client to suppress all log output
func WithQuietMode() Option {
	return func(c *Config) error {
		c.Logger = QuietLogger()
		return nil
	}
}
