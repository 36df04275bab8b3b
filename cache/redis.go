package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores values in redis
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache connects to the redis server at addr
func NewRedisCache(addr, username, password string, db int) (*RedisCache, error) {
	if addr == "" {
		return nil, errors.New("redis cache: no address configured")
	}
	rdb := redis.NewClient(
		&redis.Options{
			Addr:     addr,
			Username: username,
			Password: password,
			DB:       db,
		},
	)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "redis cache: could not connect")
	}
	return &RedisCache{rdb: rdb}, nil
}

// Get implements the Cache interface
func (r *RedisCache) Get(ctx context.Context, key string, target any) (bool, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errors.Wrap(err, "redis cache: get failed")
	}
	if err = unmarshal(data, target); err != nil {
		return false, err
	}
	return true, nil
}

// Set implements the Cache interface
func (r *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := marshal(value)
	if err != nil {
		return err
	}
	return errors.Wrap(r.rdb.Set(ctx, key, data, ttl).Err(), "redis cache: set failed")
}

// Delete implements the Cache interface
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return errors.Wrap(r.rdb.Del(ctx, key).Err(), "redis cache: delete failed")
}

// Close implements the Cache interface
func (r *RedisCache) Close() error {
	return r.rdb.Close()
}
