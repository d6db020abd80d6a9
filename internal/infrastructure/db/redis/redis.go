package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPingTimeout = 2 * time.Second
	// Cache calls sit on the note listing path. A slow Redis should fall
	// back to Mongo lookups, not hold the request.
	defaultOpTimeout = 250 * time.Millisecond
)

// Config describes the username cache backend.
type Config struct {
	Addr     string
	Password string
	DB       int
	// PingTimeout bounds dialing and the startup ping.
	PingTimeout time.Duration
	// OpTimeout bounds each read and write once connected.
	OpTimeout time.Duration
}

func (c Config) options() *redis.Options {
	ping := c.PingTimeout
	if ping <= 0 {
		ping = defaultPingTimeout
	}
	op := c.OpTimeout
	if op <= 0 {
		op = defaultOpTimeout
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  ping,
		ReadTimeout:  op,
		WriteTimeout: op,
	}
}

// Connect returns a client once the server answers a ping. Callers treat an
// error as "run without the cache".
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
