package redis

import (
	"context"
	"testing"
	"time"
)

func TestConfigOptionsDefaults(t *testing.T) {
	opts := Config{Addr: "localhost:6379"}.options()

	if opts.PoolSize != defaultPoolSize {
		t.Errorf("expected pool size %d, got %d", defaultPoolSize, opts.PoolSize)
	}
	if opts.MinIdleConns != 2 {
		t.Errorf("expected 2 idle conns, got %d", opts.MinIdleConns)
	}
}

func TestConfigOptionsSmallPool(t *testing.T) {
	opts := Config{Addr: "localhost:6379", PoolSize: 3}.options()

	if opts.PoolSize != 3 || opts.MinIdleConns != 1 {
		t.Errorf("unexpected pool settings: size=%d idle=%d", opts.PoolSize, opts.MinIdleConns)
	}
}

func TestNewRedisClientCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Nothing listens on port 1.
	_, err := NewRedisClient(ctx, Config{Addr: "127.0.0.1:1", ConnectRetries: 5})
	if err == nil {
		t.Fatal("expected connection error")
	}
}
