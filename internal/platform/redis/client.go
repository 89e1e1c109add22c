package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"pharmafinder/internal/platform/config"
)

// Client is the shared go-redis client plus the key prefix every store
// must write under.
type Client struct {
	*redis.Client
	prefix string
}

// New dials Redis from cfg. An empty URL means Redis is not configured and
// yields a nil client.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	return Wrap(ctx, redis.NewClient(opts), cfg.KeyPrefix)
}

// Wrap pings an existing client and attaches prefix. The client is closed
// when the ping fails.
func Wrap(ctx context.Context, client *redis.Client, prefix string) (*Client, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client, prefix: prefix}, nil
}

// Key namespaces name under the configured prefix.
func (c *Client) Key(name string) string {
	return c.prefix + name
}

// Health backs the /healthz redis check.
func (c *Client) Health(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}
