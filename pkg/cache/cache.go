// Package cache is a thin JSON-over-Redis cache.
//
// The client is optional: when Redis is unreachable, Get reports a miss and
// Set/Del no-op, so the application keeps serving straight from the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/handcraftedhaven/haven/config"
	"github.com/handcraftedhaven/haven/pkg/metrics"
)

// RDB is the shared Redis client; nil when the cache is unavailable.
var RDB *redis.Client

var ctx = context.Background()

// Connect initialises the Redis client and verifies it with a ping.
// On error the client is left nil so Get/Set/Del degrade to no-ops.
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(ctx).Err(); err != nil {
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get retrieves key and unmarshals it into dest. Returns true on a hit.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

// Set stores value under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RDB.Set(ctx, key, data, ttl).Err()
}

// Del removes one or more keys.
func Del(keys ...string) error {
	if RDB == nil || len(keys) == 0 {
		return nil
	}
	return RDB.Del(ctx, keys...).Err()
}

// DelPrefix removes every key matching prefix* (SCAN, not KEYS, so it is
// safe against large keyspaces). Used to invalidate product list pages.
func DelPrefix(prefix string) error {
	if RDB == nil {
		return nil
	}

	iter := RDB.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return Del(keys...)
}
