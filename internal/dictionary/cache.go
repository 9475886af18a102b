package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL is how long a lookup stays cached.
const DefaultCacheTTL = 24 * time.Hour

// Cache stores lookup results by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]Meaning, bool, error)
	Set(ctx context.Context, key string, meanings []Meaning) error
}

// RedisCache keeps lookups in Redis as JSON with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig configures NewRedisCache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get implements Cache. A missing key is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]Meaning, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var meanings []Meaning
	if err := json.Unmarshal(raw, &meanings); err != nil {
		return nil, false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return meanings, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, meanings []Meaning) error {
	raw, err := json.Marshal(meanings)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
