package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys. Public tracking is the hot read path, company settings
// barely change.
const (
	SettingsKey    = "settings:company"
	TrackingKeyFmt = "tracking:%s"
	JobOptionsKey  = "jobs:options"
	TrackingTTL    = 60 * time.Second
	SettingsTTL    = 24 * time.Hour
)

var client *redis.Client

// Init initializes the Redis connection. A failure leaves the client nil
// and every cache call becomes a no-op, so Redis stays optional.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// TrackingKey builds the cache key for a public tracking lookup.
func TrackingKey(code string) string {
	return fmt.Sprintf(TrackingKeyFmt, code)
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateJobCaches clears job-derived caches.
// Called when: CreateJob, UpdateJob, DeleteJob, AppendHistory
func InvalidateJobCaches(ctx context.Context) {
	InvalidatePattern(ctx, "tracking:*")
	InvalidateKeys(ctx, JobOptionsKey)
}

// InvalidateTrackingCache clears the cached public view of one job.
func InvalidateTrackingCache(ctx context.Context, code string) {
	InvalidateKeys(ctx, TrackingKey(code))
}

// InvalidateSettingsCache clears the company settings cache.
// Called when: SaveCompanySettings
func InvalidateSettingsCache(ctx context.Context) {
	InvalidateKeys(ctx, SettingsKey)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
