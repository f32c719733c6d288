// ABOUTME: Store factory selects the key-value backend named in configuration
// ABOUTME: Shared by the API server and the embeddable library

package store

import (
	"fmt"
	"io"

	"shoplist-api/core/interfaces"
	"shoplist-api/infrastructure/store/memory"
	"shoplist-api/infrastructure/store/redis"
	"shoplist-api/infrastructure/store/sqlite"
	"shoplist-api/pkg/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New opens the store described by cfg. The returned closer releases the
// backend's connections and is never nil.
func New(cfg config.StoreConfig, logger interfaces.Logger) (interfaces.Store, io.Closer, error) {
	switch cfg.Type {
	case "", "memory":
		return memory.NewMemoryStore(), nopCloser{}, nil

	case "redis":
		s, err := redis.NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return s, s, nil

	case "sqlite":
		s, err := sqlite.NewSQLiteStore(cfg.SQLite.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, s, nil

	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}
