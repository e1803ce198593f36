package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/gridaxis/pkg/observability"
)

// DefaultRedisPrefix namespaces gridaxis keys in a shared Redis.
const DefaultRedisPrefix = "gridaxis:"

// redisRetryDelay is the first backoff step for transient Redis failures.
const redisRetryDelay = 50 * time.Millisecond

// RedisCache stores entries in Redis. Expiry is delegated to Redis TTLs.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures NewRedisCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // defaults to DefaultRedisPrefix
}

// NewRedisCache returns a cache backed by the server at opts.Addr. The
// connection is established lazily; call Ping to fail fast.
func NewRedisCache(opts RedisOptions) *RedisCache {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &RedisCache{client: client, prefix: prefix}
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := RetryWithBackoff(ctx, redisRetryDelay, func() error {
		b, err := c.client.Get(ctx, c.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return redis.Nil
		}
		if err != nil {
			return Retryable(fmt.Errorf("%w: %v", ErrBackend, err))
		}
		data = b
		return nil
	})
	if errors.Is(err, redis.Nil) {
		observability.Cache().OnCacheMiss(ctx, "redis")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	observability.Cache().OnCacheHit(ctx, "redis")
	return data, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := RetryWithBackoff(ctx, redisRetryDelay, func() error {
		if err := c.client.Set(ctx, c.key(key), data, redisTTL(ttl)).Err(); err != nil {
			return Retryable(fmt.Errorf("%w: %v", ErrBackend, err))
		}
		return nil
	})
	if err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, "redis", len(data))
	return nil
}

// Delete implements Cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// redisTTL maps the Cache ttl convention onto go-redis, where 0 means no
// expiration.
func redisTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}

var _ Cache = (*RedisCache)(nil)
