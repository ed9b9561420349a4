package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Varun5711/hashlink/internal/config"
	"github.com/Varun5711/hashlink/internal/database"
	"github.com/Varun5711/hashlink/internal/lock"
	"github.com/Varun5711/hashlink/internal/logger"
	"github.com/Varun5711/hashlink/internal/redis"
	"github.com/Varun5711/hashlink/internal/storage"
)

const lockKey = "locks:cleanup-worker"

func main() {
	log := logger.New("cleanup-worker")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}
	if cfg.Services.Storage != "postgres" {
		log.Fatal("cleanup-worker requires STORAGE_BACKEND=postgres, got %q", cfg.Services.Storage)
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

	dbManager, err := database.NewDBManager(ctx, database.Config{
		PrimaryDSN:      cfg.Database.PrimaryDSN,
		ReplicaDSNs:     cfg.Database.ReplicaDSNs,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbManager.Close()

	store := storage.NewPostgresStorage(dbManager)
	// Only one replica of the worker should sweep per interval.
	mutex := lock.NewDistributedLock(redisClient.GetClient(), lockKey, 10*time.Minute)

	log.Info("Cleanup worker started. Running every %s...", cfg.Services.CleanupEvery)

	runCleanup(ctx, mutex, store, log)

	ticker := time.NewTicker(cfg.Services.CleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Cleanup worker stopped")
			return
		case <-ticker.C:
			runCleanup(ctx, mutex, store, log)
		}
	}
}

func runCleanup(ctx context.Context, mutex *lock.DistributedLock, store storage.Storage, log *logger.Logger) {
	log.Info("Starting cleanup of expired links...")

	err := mutex.WithLock(ctx, func(ctx context.Context) error {
		deleted, err := store.DeleteExpired(ctx)
		if err != nil {
			return err
		}

		if deleted > 0 {
			log.Info("Deleted %d expired links", deleted)
		} else {
			log.Info("No expired links found")
		}
		return nil
	})

	switch {
	case errors.Is(err, lock.ErrLockNotAcquired):
		log.Info("Another worker holds the cleanup lock, skipping")
	case err != nil:
		log.Error("Failed to delete expired links: %v", err)
	default:
		log.Info("Cleanup completed successfully")
	}
}
