package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a small JSON read-through cache for the report queries.
// Every operation is best-effort: a cache problem never fails the request,
// the report is simply served from the database again.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps a redis connection; a nil client yields a disabled cache
// (every Fetch misses), which keeps the models testable without redis.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Fetch reads a cached report into dest and reports whether it was found
func (c *Cache) Fetch(key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		// redis.Nil is the regular miss, anything else is not worth failing for
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

// Store writes a report result under the given key with the configured TTL
func (c *Cache) Store(key string, val interface{}) {
	if c == nil || c.client == nil {
		return
	}

	b, err := json.Marshal(val)
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		fmt.Println(err)
	}
}
