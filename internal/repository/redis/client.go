// Package redis backs the optional audit sink
// (internal/audit.RedisSink) and, if a room's process restarts (which
// never happens mid-game in this engine), could back a keyspace-notify
// redeal timeout the way the teacher's TimerListener does — the engine
// uses an in-process time.AfterFunc for that timeout by default
// (internal/room/phase_preparation.go) since no durable game state
// crosses a restart anyway.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis client used by the audit trail.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a Redis client from a connection URL.
func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Underlying returns the raw redis client, e.g. for
// audit.NewRedisSink.
func (c *Client) Underlying() *redis.Client {
	return c.rdb
}
