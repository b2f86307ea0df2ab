package repositories

import (
	"context"
	"errors"

	"esolve-collections/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

// redisKeyValueStore implements KeyValueStore on redis strings
type redisKeyValueStore struct {
	client *redis.Client
	prefix string
}

// NewRedisKeyValueStore creates a redis-backed key-value store.
// Every key is namespaced with prefix.
func NewRedisKeyValueStore(client *redis.Client, prefix string) KeyValueStore {
	return &redisKeyValueStore{client: client, prefix: prefix}
}

func (r *redisKeyValueStore) key(k string) string {
	return r.prefix + k
}

// Get gets a value by key
func (r *redisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrKeyNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a value without expiry; credential expiry is checked on read
func (r *redisKeyValueStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Delete removes the given keys
func (r *redisKeyValueStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return r.client.Del(ctx, full...).Err()
}
