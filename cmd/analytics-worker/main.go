package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Varun5711/hashlink/internal/config"
	"github.com/Varun5711/hashlink/internal/events"
	"github.com/Varun5711/hashlink/internal/logger"
	"github.com/Varun5711/hashlink/internal/redis"
)

func main() {
	log := logger.New("analytics-worker")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.NewRedisClient(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	consumer := events.NewClickConsumer(redisClient.GetClient(), events.ConsumerConfig{
		Stream:    cfg.Redis.StreamName,
		Group:     cfg.Analytics.ConsumerGroup,
		Consumer:  cfg.Analytics.ConsumerName,
		BatchSize: cfg.Analytics.BatchSize,
		Block:     cfg.Analytics.BlockTime,
		Backoff:   cfg.Analytics.Backoff,
	}, log)

	if err := consumer.EnsureGroup(ctx); err != nil {
		log.Fatal("%v", err)
	}

	if backlog, err := consumer.StreamLength(ctx); err == nil {
		log.Info("Stream %s holds %d entries", cfg.Redis.StreamName, backlog)
	}

	stats := events.NewClickStats(redisClient.GetClient())

	log.Info("Processing click events from %s as %s/%s", cfg.Redis.StreamName, cfg.Analytics.ConsumerGroup, cfg.Analytics.ConsumerName)
	if err := consumer.Run(ctx, stats.Record); err != nil {
		log.Fatal("Consumer stopped: %v", err)
	}
	log.Info("Shutting down")
}
