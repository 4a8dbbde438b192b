// File: utils/cache.go
package utils

import (
	"context"
	"errors"
	"log"
	"time"

	"innkeep/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the Redis client backing the dashboard cache.
var CacheClient *redis.Client

// ErrCacheMiss is returned by RedisCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// InitCache initializes the Redis cache client. An empty REDIS_ADDR disables caching
// and leaves CacheClient nil.
func InitCache() {
	if config.AppConfig.RedisAddr == "" {
		return
	}
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Printf("Redis unavailable, dashboard cache disabled: %v", err)
		_ = CacheClient.Close()
		CacheClient = nil
	}
}

// GetCacheClient returns the cache client, which may be nil when Redis is disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// RedisCache is a small byte-oriented view over a Redis client.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}
