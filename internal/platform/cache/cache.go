// Package cache provides a Redis-backed cache for the notification feed.
// The feed is recomputed from the full client collection on every request,
// so facilities with large registers benefit from a short-lived cache. When
// Redis is not configured the cache degrades to a no-op and every request
// computes the feed fresh.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewRedisClient connects to Redis using a redis:// URL. It returns nil when
// no URL is configured or the server is unreachable; callers treat a nil
// client as "cache disabled".
func NewRedisClient(ctx context.Context, redisURL string, logger zerolog.Logger) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid REDIS_URL, notification cache disabled")
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable, notification cache disabled")
		client.Close()
		return nil
	}

	return client
}

// Notifications caches the per-facility notification feed.
type Notifications struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewNotifications creates a notification feed cache. rdb may be nil, in
// which case all operations are no-ops.
func NewNotifications(rdb *redis.Client, ttl time.Duration) *Notifications {
	return &Notifications{rdb: rdb, ttl: ttl}
}

func (n *Notifications) key(facilityID uuid.UUID) string {
	return "notifications:" + facilityID.String()
}

// Get loads the cached feed for a facility into dest. It returns false on a
// cache miss, a disabled cache, or any Redis error; a stale or unreadable
// entry is never worse than recomputing.
func (n *Notifications) Get(ctx context.Context, facilityID uuid.UUID, dest interface{}) bool {
	if n == nil || n.rdb == nil {
		return false
	}
	data, err := n.rdb.Get(ctx, n.key(facilityID)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// Set stores the feed for a facility with the configured TTL. Errors are
// dropped: caching is best-effort.
func (n *Notifications) Set(ctx context.Context, facilityID uuid.UUID, v interface{}) {
	if n == nil || n.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	n.rdb.Set(ctx, n.key(facilityID), data, n.ttl)
}

// Invalidate removes the cached feed for a facility. Called after any
// mutation that can change due dates or client statuses.
func (n *Notifications) Invalidate(ctx context.Context, facilityID uuid.UUID) {
	if n == nil || n.rdb == nil {
		return
	}
	n.rdb.Del(ctx, n.key(facilityID))
}
