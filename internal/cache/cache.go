// Package cache provides a Redis read-through cache for generated hint texts.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"daily-word-bot/internal/config"
	"daily-word-bot/internal/model"
)

const defaultPrefix = "dwb:"

// HintCache stores word hints keyed by (word of day, hint type). Word hints
// never change once generated, so entries only expire by TTL.
type HintCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New connects to the Redis server described by cfg.
func New(cfg config.RedisConfig) (*HintCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, cfg.KeyPrefix, cfg.HintTTL), nil
}

// NewWithClient wraps an existing client. A zero ttl keeps entries forever.
func NewWithClient(client *redis.Client, prefix string, ttl time.Duration) *HintCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &HintCache{client: client, prefix: prefix, ttl: ttl}
}

// Close closes the Redis connection.
func (c *HintCache) Close() error {
	return c.client.Close()
}

func (c *HintCache) key(wordOfDayID, hintTypeID int64) string {
	return fmt.Sprintf("%shint:%d:%d", c.prefix, wordOfDayID, hintTypeID)
}

// Get returns the cached word hint. ok is false on a miss.
func (c *HintCache) Get(ctx context.Context, wordOfDayID, hintTypeID int64) (*model.WordHint, bool, error) {
	data, err := c.client.Get(ctx, c.key(wordOfDayID, hintTypeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get word hint: %w", err)
	}

	var wh model.WordHint
	if err := json.Unmarshal(data, &wh); err != nil {
		return nil, false, fmt.Errorf("decode word hint: %w", err)
	}
	return &wh, true, nil
}

// Set stores wh under its (word of day, hint type) pair.
func (c *HintCache) Set(ctx context.Context, wh *model.WordHint) error {
	data, err := json.Marshal(wh)
	if err != nil {
		return fmt.Errorf("encode word hint: %w", err)
	}
	if err := c.client.Set(ctx, c.key(wh.WordOfDayID, wh.HintTypeID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set word hint: %w", err)
	}
	return nil
}
