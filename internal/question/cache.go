package question

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a best-effort read-through cache for normalized question sets.
// Keys combine bank table and difficulty; a cache failure never fails a
// fetch, it only falls back to the database.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects to Redis using a URL like redis://host:6379/0.
func NewCache(ctx context.Context, url string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}, nil
}

func (c *Cache) Close() error { return c.client.Close() }

func cacheKey(table, difficulty string) string {
	return "questions:" + table + ":" + difficulty
}

func (c *Cache) Get(ctx context.Context, table, difficulty string) ([]Question, bool) {
	raw, err := c.client.Get(ctx, cacheKey(table, difficulty)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("question cache read failed", "error", err)
		}
		return nil, false
	}
	var qs []Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, false
	}
	return qs, true
}

func (c *Cache) Put(ctx context.Context, table, difficulty string, qs []Question) {
	raw, err := json.Marshal(qs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(table, difficulty), raw, c.ttl).Err(); err != nil {
		slog.Warn("question cache write failed", "error", err)
	}
}
