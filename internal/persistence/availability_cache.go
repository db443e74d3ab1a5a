package persistence

import (
	"context"
	"encoding/json"
	"time"
)

const availabilityKeyPrefix = "availability:manager:"

// AvailabilityCache keeps recently computed available-ticket payloads per
// manager. Availability is best-effort (see the allocator contract), so the
// cache is too: every operation degrades to a miss on Redis failure.
type AvailabilityCache struct {
	redis *Redis
	ttl   time.Duration
}

// NewAvailabilityCache wraps the Redis client. A nil redis or non-positive
// ttl yields a cache that always misses.
func NewAvailabilityCache(redis *Redis, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{redis: redis, ttl: ttl}
}

func (c *AvailabilityCache) enabled() bool {
	return c != nil && c.redis != nil && c.redis.Client != nil && c.ttl > 0
}

// Get returns the cached payload for a manager, if present.
func (c *AvailabilityCache) Get(ctx context.Context, managerID string) ([]string, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.redis.Client.Get(ctx, availabilityKeyPrefix+managerID).Bytes()
	if err != nil {
		return nil, false
	}
	var numbers []string
	if err := json.Unmarshal(raw, &numbers); err != nil {
		return nil, false
	}
	return numbers, true
}

// Set stores the payload for a manager.
func (c *AvailabilityCache) Set(ctx context.Context, managerID string, numbers []string) {
	if !c.enabled() {
		return
	}
	raw, err := json.Marshal(numbers)
	if err != nil {
		return
	}
	c.redis.Client.Set(ctx, availabilityKeyPrefix+managerID, raw, c.ttl)
}

// Invalidate drops the cached payload for a manager, e.g. after a sale.
func (c *AvailabilityCache) Invalidate(ctx context.Context, managerID string) {
	if !c.enabled() {
		return
	}
	c.redis.Client.Del(ctx, availabilityKeyPrefix+managerID)
}
