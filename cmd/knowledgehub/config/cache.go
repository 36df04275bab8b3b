package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/zachmann/go-utils/duration"

	"github.com/knowledgehub/knowledgehub/cache"
)

type cachingConf struct {
	Backend     string                  `yaml:"backend"`
	RedisAddr   string                  `yaml:"redis_addr"`
	Username    string                  `yaml:"username"`
	Password    string                  `yaml:"password"`
	RedisDB     int                     `yaml:"redis_db"`
	BadgerDir   string                  `yaml:"badger_dir"`
	MaxEntries  int                     `yaml:"max_entries"`
	Disabled    bool                    `yaml:"disabled"`
	MaxLifetime duration.DurationOption `yaml:"max_lifetime"`
}

func (c *cachingConf) validate() error {
	if c.Disabled {
		c.Backend = cache.BackendNone
	}
	switch c.Backend {
	case "", cache.BackendMemory, cache.BackendBadger, cache.BackendNone:
	case cache.BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("error in caching conf: redis_addr must be specified for the redis backend")
		}
	default:
		return errors.Errorf("error in caching conf: unknown backend '%s'", c.Backend)
	}
	if c.MaxLifetime.Duration() < 0 {
		return errors.New("error in caching conf: max_lifetime must not be negative")
	}
	return nil
}

// CacheConfig returns the cache.Config for this configuration
func (c cachingConf) CacheConfig() cache.Config {
	return cache.Config{
		Backend:       c.Backend,
		RedisAddr:     c.RedisAddr,
		RedisUsername: c.Username,
		RedisPassword: c.Password,
		RedisDB:       c.RedisDB,
		BadgerDir:     c.BadgerDir,
		MaxEntries:    c.MaxEntries,
	}
}

var defaultCachingConf = cachingConf{
	Backend:     cache.BackendMemory,
	MaxLifetime: duration.DurationOption(time.Minute),
}
