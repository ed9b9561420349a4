package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPoolSize       = 10
	defaultConnectRetries = 3
	retryDelay            = 500 * time.Millisecond
)

type RedisClient struct {
	client *redis.Client
	addr   string
}

type Config struct {
	Addr     string
	Password string
	DB       int

	// Zero values fall back to the defaults above.
	PoolSize       int
	ConnectRetries int
}

func (c Config) options() *redis.Options {
	poolSize := c.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     poolSize,
		MinIdleConns: max(1, poolSize/5),
	}
}

// NewRedisClient connects and pings, retrying a few times so services can start alongside Redis.
func NewRedisClient(ctx context.Context, cfg Config) (*RedisClient, error) {
	rdb := redis.NewClient(cfg.options())

	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			return &RedisClient{client: rdb, addr: cfg.Addr}, nil
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			rdb.Close()
			return nil, ctx.Err()
		case <-time.After(retryDelay * time.Duration(i+1)):
		}
	}

	rdb.Close()
	return nil, fmt.Errorf("failed to connect to Redis at %s after %d attempts: %w", cfg.Addr, attempts, err)
}

func (r *RedisClient) GetClient() *redis.Client {
	return r.client
}

func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", r.addr, err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
