package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pingTimeout     = 5 * time.Second
	dialTimeout     = 5 * time.Second
	defaultPoolSize = 10
)

// Config carries the connection settings for the platform's Redis instance,
// which backs the product read cache and the readiness probe.
type Config struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// options translates the Config into client options, filling in the
// platform defaults for anything left unset.
func (c Config) options() *redis.Options {
	poolSize := c.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	return &redis.Options{
		Addr:        c.Addr,
		Password:    c.Password,
		DB:          c.DB,
		PoolSize:    poolSize,
		DialTimeout: dialTimeout,
	}
}

// Connect opens a client for the configured Redis instance and verifies it
// answers a ping before handing it out.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}

	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
