package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// RedisBackend persists the cache blob as a single redis string
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend connects to addr and verifies the connection
func NewRedisBackend(ctx context.Context, addr, storageKey string) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedisBackendFromClient(client, storageKey), nil
}

// NewRedisBackendFromClient wraps an existing client
func NewRedisBackendFromClient(client *redis.Client, storageKey string) *RedisBackend {
	if storageKey == "" {
		storageKey = DefaultStorageKey
	}
	return &RedisBackend{client: client, key: storageKey}
}

func (r *RedisBackend) Load() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (r *RedisBackend) Save(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	return r.client.Set(ctx, r.key, data, 0).Err()
}

func (r *RedisBackend) Remove() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	return r.client.Del(ctx, r.key).Err()
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}
