// Package cache provides the response cache backends.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Backend names
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendBadger = "badger"
	BackendNone   = "none"
)

// Key prefixes
const (
	KeyArticle = "article"
)

// Key builds a cache key from the passed parts
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Cache stores msgpack-encoded values under string keys
type Cache interface {
	// Get decodes the value stored for key into target and reports whether a
	// value was found
	Get(ctx context.Context, key string, target any) (bool, error)
	// Set stores value for key; a ttl of zero means no expiration
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes the value for key; deleting a missing key is no error
	Delete(ctx context.Context, key string) error
	// Close releases the resources held by the cache
	Close() error
}

// Config configures the cache backend
type Config struct {
	Backend       string
	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	// BadgerDir is the badger directory; empty runs badger in memory
	BadgerDir string
	// MaxEntries limits the in-memory cache
	MaxEntries int
}

// New creates the Cache for the configured backend. An empty backend selects
// the in-memory cache.
func New(conf Config) (Cache, error) {
	switch conf.Backend {
	case "", BackendMemory:
		return NewMemoryCache(conf.MaxEntries), nil
	case BackendRedis:
		return NewRedisCache(conf.RedisAddr, conf.RedisUsername, conf.RedisPassword, conf.RedisDB)
	case BackendBadger:
		return NewBadgerCache(conf.BadgerDir)
	case BackendNone:
		return Noop{}, nil
	default:
		return nil, errors.Errorf("unsupported cache backend '%s'", conf.Backend)
	}
}

func marshal(value any) ([]byte, error) {
	data, err := msgpack.Marshal(value)
	return data, errors.Wrap(err, "cache: could not encode value")
}

func unmarshal(data []byte, target any) error {
	return errors.Wrap(msgpack.Unmarshal(data, target), "cache: could not decode value")
}

// Noop is a Cache that never stores anything
type Noop struct{}

// Get implements the Cache interface
func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set implements the Cache interface
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }

// Delete implements the Cache interface
func (Noop) Delete(context.Context, string) error { return nil }

// Close implements the Cache interface
func (Noop) Close() error { return nil }
