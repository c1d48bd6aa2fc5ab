package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of a Redis client. All keys share a
// configurable namespace prefix so several deployments can share one Redis.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a RedisStore. An empty prefix defaults to "tg".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "tg"
	}
	return &RedisStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + ":" + key
}

// Get returns the value stored under key, or ErrNotFound when absent.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.redis.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, nil
}

// Set writes value under key with the given TTL, overwriting any prior entry.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Contains reports whether key has a live entry.
func (s *RedisStore) Contains(ctx context.Context, key string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}

// Remove deletes the entry under key. Removing an absent key is not an error.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
