package cache

import (
	"context"
	"testing"
	"time"
)

func TestCache_L1Only(t *testing.T) {
	c := NewMultiTierCache(10, nil, time.Minute)
	ctx := context.Background()

	if _, found := c.Get(ctx, "laHquq"); found {
		t.Fatal("expected miss on empty cache")
	}

	if err := c.Set(ctx, "laHquq", []uint32{1, 2, 3}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	numbers, found := c.Get(ctx, "laHquq")
	if !found {
		t.Fatal("expected hit after Set")
	}
	if len(numbers) != 3 || numbers[0] != 1 {
		t.Errorf("unexpected numbers %v", numbers)
	}

	if err := c.Delete(ctx, "laHquq"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
}

func TestCache_ReturnsCopies(t *testing.T) {
	c := NewMultiTierCache(10, nil, time.Minute)
	ctx := context.Background()

	stored := []uint32{1, 2, 3}
	if err := c.Set(ctx, "laHquq", stored); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	stored[0] = 99

	first, _ := c.Get(ctx, "laHquq")
	first[1] = 42

	second, found := c.Get(ctx, "laHquq")
	if !found {
		t.Fatal("expected hit")
	}
	if second[0] != 1 || second[1] != 2 || second[2] != 3 {
		t.Errorf("cached value was mutated through a caller's slice: %v", second)
	}
}
