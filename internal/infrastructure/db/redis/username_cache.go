package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultUsernameTTL = 10 * time.Minute

// UsernameCache caches user ID → username lookups made while listing notes.
// Key format: username:<user_id>
type UsernameCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUsernameCache wraps client. A non-positive ttl falls back to defaultUsernameTTL.
func NewUsernameCache(client *redis.Client, ttl time.Duration) *UsernameCache {
	if ttl <= 0 {
		ttl = defaultUsernameTTL
	}
	return &UsernameCache{client: client, ttl: ttl}
}

func (c *UsernameCache) Get(ctx context.Context, userID string) (string, bool, error) {
	name, err := c.client.Get(ctx, key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("username cache get: %w", err)
	}
	return name, true, nil
}

func (c *UsernameCache) Set(ctx context.Context, userID, username string) error {
	return c.client.Set(ctx, key(userID), username, c.ttl).Err()
}

// SetIfAbsent only fills an empty key (SETNX), leaving names written by
// Set after a rename in place.
func (c *UsernameCache) SetIfAbsent(ctx context.Context, userID, username string) error {
	return c.client.SetNX(ctx, key(userID), username, c.ttl).Err()
}

func key(userID string) string {
	return "username:" + userID
}
