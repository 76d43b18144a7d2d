package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis-backed implementation of the key-value port, for deployments that
// want planner state in a shared store instead of a local database file.
type RedisKVStore struct {
	Client *redis.Client
}

func NewRedisKVStore(client *redis.Client) *RedisKVStore {
	return &RedisKVStore{Client: client}
}

func (r *RedisKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if r.Client == nil {
		return "", false, errors.New("kv store: redis client is nil")
	}

	value, err := r.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state blob key=%q: %w", key, err)
	}

	return value, true, nil
}

func (r *RedisKVStore) Set(ctx context.Context, key string, value string) error {
	if r.Client == nil {
		return errors.New("kv store: redis client is nil")
	}

	if err := r.Client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set state blob key=%q: %w", key, err)
	}

	return nil
}
