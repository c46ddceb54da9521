package redisprovider

import (
	"assetflow/providers"
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key so the cache can share a redis database.
const keyPrefix = "assetflow:"

type RedisDbProvider struct {
	client *redis.Client
}

func NewRedisProvider(addr string) providers.RedisProvider {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	return &RedisDbProvider{client: rdb}
}

func (r *RedisDbProvider) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, keyPrefix+key, value, expiration).Err()
}

// Get returns redis.Nil on a miss.
func (r *RedisDbProvider) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, keyPrefix+key).Result()
}

func (r *RedisDbProvider) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, keyPrefix+key)
	}
	return r.client.Del(ctx, prefixed...).Err()
}

func (r *RedisDbProvider) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping failed")
	}
	return nil
}

func (r *RedisDbProvider) Close() error {
	return r.client.Close()
}

// nopProvider is used when REDIS_ADDR is not configured; every read is a miss.
type nopProvider struct{}

func NewNopProvider() providers.RedisProvider {
	return nopProvider{}
}

func (nopProvider) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (nopProvider) Get(context.Context, string) (string, error)                   { return "", redis.Nil }
func (nopProvider) Delete(context.Context, ...string) error                       { return nil }
func (nopProvider) Ping(context.Context) error                                    { return nil }
func (nopProvider) Close() error                                                  { return nil }
