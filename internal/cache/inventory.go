package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"memeverse/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	// MemeBatchKey caches the normalized batch from the remote meme API.
	MemeBatchKey = "memes:batch"
	// LeaderboardKey caches the generated contributor rankings.
	LeaderboardKey = "leaderboard:contributors"
)

const (
	MemeBatchTTL   = 5 * time.Minute
	LeaderboardTTL = 10 * time.Minute
)

// Invalidate drops a cache key. A nil client makes this a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateMemeBatch drops the cached meme batch, forcing a re-fetch (and a
// re-randomization of engagement counters) on the next read.
func InvalidateMemeBatch(ctx context.Context) {
	Invalidate(ctx, MemeBatchKey)
}

// Aside implements the cache-aside pattern: fill dest from the cache when
// possible, otherwise run fill and store the result under key with ttl. Cache
// failures degrade to the fill path; they never surface to the caller.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fill func() error) error {
	if client != nil {
		payload, err := client.Get(ctx, key).Result()
		if err == nil {
			if unmarshalErr := json.Unmarshal([]byte(payload), dest); unmarshalErr == nil {
				observability.RecordCacheLookup(key, "hit")
				return nil
			}
			// Corrupt cache entry: drop it and fall through to fill.
			client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) {
			// Redis unhealthy; serve from the source.
		}
	}

	observability.RecordCacheLookup(key, "miss")
	if err := fill(); err != nil {
		return err
	}

	if client != nil {
		if encoded, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, encoded, ttl)
		}
	}
	return nil
}
