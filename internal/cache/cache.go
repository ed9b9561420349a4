package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps decoded number sequences keyed by hash. L2 is optional.
type Cache struct {
	l1Cache   *LRUCache[string, []uint32]
	l2Cache   *redis.Client
	l2TTL     time.Duration
	keyPrefix string
}

func NewMultiTierCache(l1Capacity int, redisClient *redis.Client, l2TTL time.Duration) *Cache {
	return &Cache{
		l1Cache:   NewLRUCache[string, []uint32](l1Capacity),
		l2Cache:   redisClient,
		l2TTL:     l2TTL,
		keyPrefix: "hashids:decoded:",
	}
}

func (c *Cache) Get(ctx context.Context, hash string) ([]uint32, bool) {
	if val, found := c.l1Cache.Get(hash); found {
		return slices.Clone(val), true
	}

	if c.l2Cache == nil {
		return nil, false
	}

	raw, err := c.l2Cache.Get(ctx, c.keyPrefix+hash).Result()
	if err != nil {
		return nil, false
	}

	var numbers []uint32
	if err := json.Unmarshal([]byte(raw), &numbers); err != nil {
		return nil, false
	}

	c.l1Cache.Set(hash, slices.Clone(numbers))
	return numbers, true
}

// Set stores a copy of numbers; Get also returns copies, so callers may modify them.
func (c *Cache) Set(ctx context.Context, hash string, numbers []uint32) error {
	c.l1Cache.Set(hash, slices.Clone(numbers))

	if c.l2Cache == nil {
		return nil
	}

	data, err := json.Marshal(numbers)
	if err != nil {
		return fmt.Errorf("failed to marshal numbers: %w", err)
	}
	return c.l2Cache.Set(ctx, c.keyPrefix+hash, data, c.l2TTL).Err()
}

func (c *Cache) Delete(ctx context.Context, hash string) error {
	c.l1Cache.Delete(hash)

	if c.l2Cache == nil {
		return nil
	}

	err := c.l2Cache.Del(ctx, c.keyPrefix+hash).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (c *Cache) Len() int {
	return c.l1Cache.Len()
}
