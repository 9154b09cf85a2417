package analytics

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper decides whether a visitor starts a new session window
type Deduper interface {
	FirstVisit(ctx context.Context, visitorID string) (bool, error)
}

// RedisDeduper marks visitors with a key that expires after the window
type RedisDeduper struct {
	redis  *redis.Client
	window time.Duration
}

// NewRedisDeduper returns nil when rdb is nil, which records every visit
func NewRedisDeduper(rdb *redis.Client, window time.Duration) Deduper {
	if rdb == nil {
		return nil
	}
	return &RedisDeduper{redis: rdb, window: window}
}

func (d *RedisDeduper) FirstVisit(ctx context.Context, visitorID string) (bool, error) {
	return d.redis.SetNX(ctx, visitKey(visitorID), 1, d.window).Result()
}

func visitKey(visitorID string) string {
	return "visit:" + visitorID
}
