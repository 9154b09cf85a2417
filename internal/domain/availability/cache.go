package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "availability:"

// SnapshotCache keeps recent snapshots close to the API
type SnapshotCache interface {
	// Get returns the cached snapshot, or ok=false along with the version a
	// freshly loaded snapshot must be stored under.
	Get(ctx context.Context, roomID string, from, to time.Time) (snap Snapshot, version int64, ok bool)
	Set(ctx context.Context, roomID string, version int64, from, to time.Time, snap Snapshot)
	Invalidate(ctx context.Context, roomID string) error
}

// RedisCache stores snapshots under a per-room version number. Invalidate
// bumps the version, which orphans every cached range for the room at once;
// orphans expire on their own TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache returns a cache backed by rdb. A nil client disables caching.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func versionKey(roomID string) string {
	return cacheKeyPrefix + roomID + ":version"
}

func rangeKey(roomID string, version int64, from, to time.Time) string {
	return fmt.Sprintf("%s%s:v%d:%s:%s", cacheKeyPrefix, roomID, version, FormatDate(from), FormatDate(to))
}

func (c *RedisCache) version(ctx context.Context, roomID string) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(roomID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisCache) Get(ctx context.Context, roomID string, from, to time.Time) (Snapshot, int64, bool) {
	if c == nil || c.rdb == nil || c.ttl <= 0 {
		return nil, -1, false
	}
	v, err := c.version(ctx, roomID)
	if err != nil {
		return nil, -1, false
	}
	raw, err := c.rdb.Get(ctx, rangeKey(roomID, v, from, to)).Bytes()
	if err != nil {
		return nil, v, false
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, v, false
	}
	return snap, v, true
}

// Set stores snap under the version observed before it was loaded, so a
// reservation committed in between leaves the entry unreachable.
func (c *RedisCache) Set(ctx context.Context, roomID string, v int64, from, to time.Time, snap Snapshot) {
	if c == nil || c.rdb == nil || c.ttl <= 0 || v < 0 {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, rangeKey(roomID, v, from, to), raw, c.ttl)
}

func (c *RedisCache) Invalidate(ctx context.Context, roomID string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Incr(ctx, versionKey(roomID)).Err()
}
