// Package redis implements the profile vector cache on Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure ProfileVectorCache implements the interface.
var _ driven.ProfileVectorCache = (*ProfileVectorCache)(nil)

// DefaultTTL bounds how long a cached profile vector survives without a
// profile edit. Invalidation on ProfileUpdated is the primary eviction
// path; the TTL is the backstop.
const DefaultTTL = 24 * time.Hour

// ProfileVectorCache caches profile embeddings as JSON-encoded float
// arrays under jobscout:profilevec:<user_id>.
type ProfileVectorCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient creates and verifies a redis client from a URL.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// New creates a profile vector cache. A non-positive ttl falls back to
// DefaultTTL.
func New(client *redis.Client, ttl time.Duration) *ProfileVectorCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProfileVectorCache{client: client, ttl: ttl}
}

// Get returns the cached vector, or ok=false on miss.
func (c *ProfileVectorCache) Get(ctx context.Context, userID string) ([]float32, bool, error) {
	payload, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var vec []float32
	if err := json.Unmarshal(payload, &vec); err != nil {
		// A corrupt entry is treated as a miss and replaced on the
		// next Set.
		return nil, false, nil
	}
	return vec, true, nil
}

// Set stores the vector under the user's key.
func (c *ProfileVectorCache) Set(ctx context.Context, userID string, vec []float32) error {
	payload, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(userID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached vector.
func (c *ProfileVectorCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *ProfileVectorCache) key(userID string) string {
	return "jobscout:profilevec:" + userID
}
