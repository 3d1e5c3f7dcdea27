package store

import (
	"context"
	"fmt"

	"github.com/mmcdole/reel/internal/config"
)

// NewBackend builds the configured persistence backend
func NewBackend(ctx context.Context, cfg config.CacheConfig, account string) (Backend, error) {
	switch cfg.Backend {
	case config.BackendBolt, "":
		return NewBoltBackend(cfg.Dir, account, cfg.StorageKey)
	case config.BackendRedis:
		return NewRedisBackend(ctx, cfg.RedisAddr, cfg.StorageKey)
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}
