package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Hashids   HashidsConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Services  ServicesConfig
	Sequence  SequenceConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Analytics AnalyticsConfig
}

type HashidsConfig struct {
	Salt      string
	Alphabet  string
	MinLength int
}

type DatabaseConfig struct {
	PrimaryDSN      string
	ReplicaDSNs     []string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	StreamName string
	StreamMax  int64
	PoolSize   int
}

type ServicesConfig struct {
	HTTPPort       string
	GRPCPort       string
	BaseURL        string
	DefaultLinkTTL time.Duration
	Storage        string
	CleanupEvery   time.Duration
}

type SequenceConfig struct {
	Backend string
	Key     string
	Start   uint32
}

type CacheConfig struct {
	L1Capacity int
	L2TTL      time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type AnalyticsConfig struct {
	ConsumerGroup string
	ConsumerName  string
	BatchSize     int
	BlockTime     time.Duration
	Backoff       time.Duration
}

func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not (K8s uses ConfigMaps/Secrets)
	_ = godotenv.Load()

	cfg := &Config{
		Hashids: HashidsConfig{
			Salt:      getEnv("HASHIDS_SALT", ""),
			Alphabet:  getEnv("HASHIDS_ALPHABET", ""),
			MinLength: getEnvAsInt("HASHIDS_MIN_LENGTH", 0),
		},
		Database: DatabaseConfig{
			PrimaryDSN:      getEnv("DB_PRIMARY_DSN", ""),
			ReplicaDSNs:     getEnvAsList("DB_REPLICA_DSNS"),
			MaxConns:        int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns:        int32(getEnvAsInt("DB_MIN_CONNS", 5)),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", time.Hour),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Addr:       getEnv("REDIS_ADDR", "localhost:6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			StreamName: getEnv("REDIS_STREAM_NAME", "clicks:stream"),
			StreamMax:  int64(getEnvAsInt("REDIS_STREAM_MAX_LEN", 100000)),
			PoolSize:   getEnvAsInt("REDIS_POOL_SIZE", 10),
		},
		Services: ServicesConfig{
			HTTPPort:       getEnv("HTTP_PORT", "8080"),
			GRPCPort:       getEnv("GRPC_PORT", "50051"),
			BaseURL:        strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
			DefaultLinkTTL: getEnvAsDuration("DEFAULT_LINK_TTL", 3*24*time.Hour),
			Storage:        getEnv("STORAGE_BACKEND", "memory"),
			CleanupEvery:   getEnvAsDuration("CLEANUP_INTERVAL", 24*time.Hour),
		},
		Sequence: SequenceConfig{
			Backend: getEnv("SEQUENCE_BACKEND", "memory"),
			Key:     getEnv("SEQUENCE_KEY", "links:seq"),
			Start:   uint32(getEnvAsInt("SEQUENCE_START", 1)),
		},
		Cache: CacheConfig{
			L1Capacity: getEnvAsInt("CACHE_L1_CAPACITY", 10000),
			L2TTL:      getEnvAsDuration("CACHE_L2_TTL", time.Hour),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Analytics: AnalyticsConfig{
			ConsumerGroup: getEnv("ANALYTICS_CONSUMER_GROUP", "analytics"),
			ConsumerName:  getEnv("ANALYTICS_CONSUMER_NAME", defaultConsumerName()),
			BatchSize:     getEnvAsInt("ANALYTICS_BATCH_SIZE", 100),
			BlockTime:     getEnvAsDuration("ANALYTICS_BLOCK_TIME", 5*time.Second),
			Backoff:       getEnvAsDuration("ANALYTICS_BACKOFF", time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Hashids.MinLength < 0 {
		return fmt.Errorf("HASHIDS_MIN_LENGTH must not be negative, got %d", c.Hashids.MinLength)
	}

	switch c.Services.Storage {
	case "memory":
	case "postgres":
		if c.Database.PrimaryDSN == "" {
			return fmt.Errorf("DB_PRIMARY_DSN is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Services.Storage)
	}

	if c.Analytics.BatchSize <= 0 {
		return fmt.Errorf("ANALYTICS_BATCH_SIZE must be positive, got %d", c.Analytics.BatchSize)
	}

	switch c.Sequence.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown SEQUENCE_BACKEND %q", c.Sequence.Backend)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func defaultConsumerName() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "analytics-1"
}
