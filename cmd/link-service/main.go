package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Varun5711/hashlink/internal/cache"
	"github.com/Varun5711/hashlink/internal/config"
	"github.com/Varun5711/hashlink/internal/database"
	"github.com/Varun5711/hashlink/internal/events"
	"github.com/Varun5711/hashlink/internal/handlers"
	"github.com/Varun5711/hashlink/internal/hashids"
	"github.com/Varun5711/hashlink/internal/idgen"
	"github.com/Varun5711/hashlink/internal/logger"
	"github.com/Varun5711/hashlink/internal/middleware"
	"github.com/Varun5711/hashlink/internal/redis"
	"github.com/Varun5711/hashlink/internal/rpc"
	"github.com/Varun5711/hashlink/internal/service"
	"github.com/Varun5711/hashlink/internal/storage"
)

func main() {
	log := logger.New("link-service")
	log.SetStdLog()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	codec, err := hashids.NewWithConfig(hashids.Config{
		Salt:      cfg.Hashids.Salt,
		Alphabet:  cfg.Hashids.Alphabet,
		MinLength: cfg.Hashids.MinLength,
	})
	if err != nil {
		log.Fatal("Failed to build hashids codec: %v", err)
	}
	if cfg.Hashids.Salt == "" {
		log.Warn("HASHIDS_SALT not set, hashes are guessable (insecure for production)")
	}

	ctx := context.Background()
	checks := map[string]handlers.HealthCheck{}
	poolStats := map[string]handlers.HealthStats{}

	redisClient, err := redis.NewRedisClient(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		if cfg.Sequence.Backend == "redis" {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		log.Warn("Redis unavailable, running without L2 cache, rate limiting or click events: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		checks["redis"] = func(r *http.Request) error { return redisClient.Ping(r.Context()) }
	}

	var store storage.Storage
	switch cfg.Services.Storage {
	case "postgres":
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

		pg := storage.NewPostgresStorage(dbManager)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal("Failed to migrate database: %v", err)
		}
		store = pg
		checks["postgres"] = func(r *http.Request) error { return dbManager.Ping(r.Context()) }
		poolStats["postgres"] = dbManager.Stats
	default:
		log.Warn("Using in-memory storage, links are lost on restart")
		store = storage.NewMemoryStorage()
	}

	var seq idgen.Sequence
	if cfg.Sequence.Backend == "redis" {
		seq = idgen.NewRedisSequence(redisClient.GetClient(), cfg.Sequence.Key, cfg.Sequence.Start)
	} else {
		seq = idgen.NewCounter(cfg.Sequence.Start)
	}

	var (
		decodeCache *cache.Cache
		publisher   handlers.ClickPublisher
		stats       handlers.StatsReader
	)
	if redisClient != nil {
		decodeCache = cache.NewMultiTierCache(cfg.Cache.L1Capacity, redisClient.GetClient(), cfg.Cache.L2TTL)
		publisher = events.NewClickProducer(redisClient.GetClient(), cfg.Redis.StreamName, cfg.Redis.StreamMax)
		stats = events.NewClickStats(redisClient.GetClient())
	} else {
		decodeCache = cache.NewMultiTierCache(cfg.Cache.L1Capacity, nil, 0)
	}

	codecService := service.NewCodecService(codec, decodeCache, log)
	linkService := service.NewLinkService(store, seq, codec, log, cfg.Services.BaseURL, cfg.Services.DefaultLinkTTL)

	router := handlers.NewRouter(
		handlers.NewHTTPHandler(codecService, linkService, log).WithStats(stats),
		handlers.NewRedirectHandler(linkService, publisher, log),
		checks,
		poolStats,
	)

	var handler http.Handler = router
	handler = middleware.RequestLogger(log)(handler)
	if redisClient != nil {
		handler = middleware.NewRateLimiter(redisClient.GetClient(), cfg.RateLimit.Requests, cfg.RateLimit.Window).Middleware(handler)
	}
	handler = middleware.Recovery(log)(handler)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Services.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := rpc.NewServer(codecService, log)
	lis, err := net.Listen("tcp", ":"+cfg.Services.GRPCPort)
	if err != nil {
		log.Fatal("Failed to listen on :%s: %v", cfg.Services.GRPCPort, err)
	}

	go func() {
		log.Info("gRPC listening on :%s", cfg.Services.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal("gRPC server error: %v", err)
		}
	}()

	go func() {
		log.Info("HTTP listening on :%s", cfg.Services.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down link service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown: %v", err)
	}
	grpcServer.GracefulStop()

	log.Info("Link service stopped")
}
