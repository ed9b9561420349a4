package idgen

import (
	"context"
	"fmt"
	"math"

	"github.com/redis/go-redis/v9"
)

// RedisSequence shares one counter between service replicas via INCR.
type RedisSequence struct {
	client *redis.Client
	key    string
	offset uint32
}

func NewRedisSequence(client *redis.Client, key string, start uint32) *RedisSequence {
	return &RedisSequence{
		client: client,
		key:    key,
		offset: start,
	}
}

func (s *RedisSequence) Next(ctx context.Context) (uint32, error) {
	n, err := s.client.Incr(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", s.key, err)
	}

	// INCR starts at 1.
	id := uint64(n-1) + uint64(s.offset)
	if id > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s reached %d", ErrExhausted, s.key, id)
	}
	return uint32(id), nil
}
