package idgen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
)

var ErrExhausted = errors.New("id sequence exhausted")

// Sequence hands out the integer ids that hash ids are built from.
type Sequence interface {
	Next(ctx context.Context) (uint32, error)
}

type Counter struct {
	mu   sync.Mutex
	next uint64
}

func NewCounter(start uint32) *Counter {
	return &Counter{next: uint64(start)}
}

func (c *Counter) Next(ctx context.Context) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.next > math.MaxUint32 {
		return 0, fmt.Errorf("%w: counter passed %d", ErrExhausted, uint32(math.MaxUint32))
	}

	id := uint32(c.next)
	c.next++
	return id, nil
}
