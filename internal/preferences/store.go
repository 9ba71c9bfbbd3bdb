// Package preferences persists per-client UI preferences.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"weather-forecasting/config"
)

var ErrNotFound = errors.New("preference not found")

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// NewStore opens the backend named in cfg.Backend.
func NewStore(cfg config.PreferencesConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(cfg.RedisAddr)
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown preferences backend %q", cfg.Backend)
	}
}
