package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MenuImage_API/internal/models"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces cache entries inside the redis keyspace
const keyPrefix = "image:"

// RedisStore implements Service using Redis. Entries are written without
// a TTL; removal happens only through Clear.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed image cache store
func NewRedisStore(redisURL string) (Service, error) {
	return newRedisStore(redisURL)
}

// newRedisStore creates the concrete implementation
func newRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
	}, nil
}

// Get returns the cached image URL for a keyword
func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", models.ErrKeywordNotCached
	}

	url, err := r.client.Get(ctx, keyPrefix+strings.ToLower(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", models.ErrKeywordNotCached
		}
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	return url, nil
}

// Put upserts the image URL for a keyword. SET with no expiration gives
// the same last-writer-wins semantics as the SQL upsert.
func (r *RedisStore) Put(ctx context.Context, key, url string) error {
	if key == "" || url == "" {
		return fmt.Errorf("keyword and url must be non-empty")
	}

	if err := r.client.Set(ctx, keyPrefix+strings.ToLower(key), url, 0).Err(); err != nil {
		return fmt.Errorf("redis put failed: %w", err)
	}

	return nil
}

// Clear deletes all cached entries under the image prefix
func (r *RedisStore) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis clear failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis clear scan failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}
