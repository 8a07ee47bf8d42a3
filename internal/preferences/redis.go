package preferences

import (
	"context"
	"errors"
	"fmt"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/vzahanych/weather-dashboard/internal/units"
	"go.uber.org/zap"
)

type RedisStore struct {
	client *redisv9.Client
	key    string
	logger *zap.Logger
}

func NewRedisStore(addr, prefix string, logger *zap.Logger) *RedisStore {
	return NewRedisStoreWithClient(redisv9.NewClient(&redisv9.Options{Addr: addr}), prefix, logger)
}

func NewRedisStoreWithClient(client *redisv9.Client, prefix string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, key: prefix + Key, logger: logger}
}

func (s *RedisStore) Load(ctx context.Context) (units.Units, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redisv9.Nil) {
		return units.Default, nil
	}
	if err != nil {
		return units.Default, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return decode(raw, s.logger), nil
}

func (s *RedisStore) Save(ctx context.Context, u units.Units) error {
	if !u.Valid() {
		return fmt.Errorf("preferences: invalid units %q", u)
	}
	if err := s.client.Set(ctx, s.key, u.String(), 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Ping reports whether the backing server is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
