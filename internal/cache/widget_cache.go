// Package cache holds the redis-backed cache for the public widget
// bootstrap config. The widget config endpoint is the hottest read path
// (every page embedding a widget hits it), and its payload only changes on
// profile edits, so a short TTL plus explicit invalidation is enough.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lovelycreation-pixel/chatbot-backend/internal/services"

	"github.com/go-redis/redis/v8"
)

// WidgetCache caches widget configs in redis. A nil *WidgetCache is valid
// and behaves as a cache that never hits, so the backend runs without
// redis.
type WidgetCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redis from REDIS_HOST/REDIS_PORT.
func New(ttl time.Duration) (*WidgetCache, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s:%s: %w", host, port, err)
	}

	return &WidgetCache{rdb: rdb, ttl: ttl}, nil
}

func key(clientID string) string {
	return "widget:config:" + clientID
}

// Get returns the cached config, or nil on miss (including when the cache
// itself is absent or unreachable).
func (c *WidgetCache) Get(ctx context.Context, clientID string) *services.WidgetConfig {
	if c == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, key(clientID)).Result()
	if err != nil {
		return nil
	}
	var cfg services.WidgetConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil
	}
	return &cfg
}

// Set stores the config under the cache TTL. Failures are ignored; the
// cache is best effort.
func (c *WidgetCache) Set(ctx context.Context, cfg *services.WidgetConfig) {
	if c == nil {
		return
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(cfg.ClientID), data, c.ttl)
}

// Invalidate drops the cached config after a profile edit.
func (c *WidgetCache) Invalidate(ctx context.Context, clientID string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, key(clientID))
}

// Close releases the redis connection.
func (c *WidgetCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
