// ABOUTME: Configuration options for the Shoplist library client
// ABOUTME: Provides functional options pattern for flexible client configuration

package shoplist

import (
	"time"

	"shoplist-api/core/interfaces"
	"shoplist-api/pkg/config"
)

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithStore sets a ready-made store. The caller keeps ownership and closes it.
func WithStore(store interfaces.Store) Option {
	return func(c *Config) error {
		if store == nil {
			return NewError(ErrorTypeConfiguration, "store must not be nil")
		}
		c.Store = store
		return nil
	}
}

// WithStoreConfig opens the backend described by cfg when the client is created
func WithStoreConfig(cfg config.StoreConfig) Option {
	return func(c *Config) error {
		c.StoreConfig = cfg
		return nil
	}
}

// WithLogger sets a custom logger
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithShareTTL sets how long share codes stay redeemable
func WithShareTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		if ttl <= 0 {
			return NewError(ErrorTypeValidation, "share TTL must be positive").
				WithContext("ttl", ttl.String())
		}
		c.ShareTTL = ttl
		return nil
	}
}

// WithCodeLength sets the number of characters in generated share codes
func WithCodeLength(length int) Option {
	return func(c *Config) error {
		if length < 4 || length > 32 {
			return NewError(ErrorTypeValidation, "code length must be between 4 and 32").
				WithContext("length", length)
		}
		c.CodeLength = length
		return nil
	}
}

// WithClock replaces the wall clock, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(c *Config) error {
		c.Clock = now
		return nil
	}
}

// WithBackgroundSweep runs a sweeper that removes expired shares every interval.
// Zero disables it.
func WithBackgroundSweep(interval time.Duration) Option {
	return func(c *Config) error {
		if interval < 0 {
			return NewError(ErrorTypeValidation, "sweep interval must not be negative")
		}
		c.SweepInterval = interval
		return nil
	}
}

// defaultConfig returns the default client configuration
func defaultConfig() Config {
	return Config{
		StoreConfig: config.StoreConfig{Type: "memory"},
		Logger:      DefaultLogger(),
		Clock:       time.Now,
	}
}
