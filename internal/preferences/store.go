package preferences

import (
	"context"
	"fmt"

	"github.com/vzahanych/weather-dashboard/internal/config"
	"github.com/vzahanych/weather-dashboard/internal/units"
	"go.uber.org/zap"
)

// Key is the storage key of the unit preference.
const Key = "weather-app-units"

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Store persists the single unit preference. Load returns units.Default when
// nothing valid has been stored.
type Store interface {
	Load(ctx context.Context) (units.Units, error)
	Save(ctx context.Context, u units.Units) error
	Close() error
}

// New builds the store selected by cfg.Backend.
func New(cfg config.PreferencesConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("preferences: file backend requires a path")
		}
		return NewFileStore(cfg.Path, logger), nil
	case BackendRedis:
		return NewRedisStore(cfg.RedisAddr, cfg.KeyPrefix, logger), nil
	default:
		return nil, fmt.Errorf("preferences: unknown backend %q", cfg.Backend)
	}
}

// Initial reads the stored preference once at start-up. Failures and invalid
// values degrade to the default.
func Initial(ctx context.Context, store Store, logger *zap.Logger) units.Units {
	u, err := store.Load(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("Failed to load unit preference, using default", zap.Error(err))
		}
		return units.Default
	}
	return u
}

func decode(raw string, logger *zap.Logger) units.Units {
	u, err := units.Parse(raw)
	if err != nil {
		logger.Warn("Ignoring invalid stored unit preference", zap.String("value", raw))
		return units.Default
	}
	return u
}
