package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces all cache entries written by this service.
	keyPrefix = "catalog:"

	// Catalog responses are cached at the edge for one to twenty-four
	// hours; TTLs outside that band are clamped.
	MinTTL     = 1 * time.Hour
	MaxTTL     = 24 * time.Hour
	DefaultTTL = 1 * time.Hour
)

// Cache is a JSON-over-Redis cache for catalog responses.
type Cache struct {
	client *redis.Client
}

// Connect opens a Redis connection from a URI and verifies it with a ping.
func Connect(uri string) (*Cache, error) {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Cache{client: client}, nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Get retrieves a cached value into dest. A miss is reported as
// (false, nil), not as an error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, nil // Cache miss or cache unavailable
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value with the given TTL, clamped to the 1-24h band.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl < MinTTL {
		ttl = MinTTL
	}
	if ttl > MaxTTL {
		ttl = MaxTTL
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, jsonData, ttl).Err()
}
