package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HASHIDS_SALT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("SEQUENCE_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Hashids.MinLength != 0 {
		t.Errorf("expected min length 0, got %d", cfg.Hashids.MinLength)
	}
	if cfg.Services.Storage != "memory" {
		t.Errorf("expected memory storage, got %q", cfg.Services.Storage)
	}
	if cfg.Sequence.Start != 1 {
		t.Errorf("expected sequence start 1, got %d", cfg.Sequence.Start)
	}
	if cfg.Analytics.ConsumerGroup != "analytics" || cfg.Analytics.BatchSize != 100 {
		t.Errorf("unexpected analytics defaults: %+v", cfg.Analytics)
	}
	if cfg.Services.DefaultLinkTTL != 72*time.Hour {
		t.Errorf("expected 72h ttl, got %v", cfg.Services.DefaultLinkTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HASHIDS_SALT", "this is my salt")
	t.Setenv("HASHIDS_MIN_LENGTH", "8")
	t.Setenv("BASE_URL", "https://sho.rt/")
	t.Setenv("DB_REPLICA_DSNS", "postgres://a, ,postgres://b")
	t.Setenv("CACHE_L2_TTL", "5m")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SEQUENCE_BACKEND", "redis")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Hashids.Salt != "this is my salt" {
		t.Errorf("salt = %q", cfg.Hashids.Salt)
	}
	if cfg.Hashids.MinLength != 8 {
		t.Errorf("min length = %d", cfg.Hashids.MinLength)
	}
	if cfg.Services.BaseURL != "https://sho.rt" {
		t.Errorf("base url = %q", cfg.Services.BaseURL)
	}
	if len(cfg.Database.ReplicaDSNs) != 2 {
		t.Errorf("expected 2 replicas, got %v", cfg.Database.ReplicaDSNs)
	}
	if cfg.Cache.L2TTL != 5*time.Minute {
		t.Errorf("l2 ttl = %v", cfg.Cache.L2TTL)
	}
	if cfg.Sequence.Backend != "redis" {
		t.Errorf("sequence backend = %q", cfg.Sequence.Backend)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"negative min length", func(c *Config) { c.Hashids.MinLength = -1 }, true},
		{"postgres without dsn", func(c *Config) { c.Services.Storage = "postgres" }, true},
		{"postgres with dsn", func(c *Config) {
			c.Services.Storage = "postgres"
			c.Database.PrimaryDSN = "postgres://localhost/links"
		}, false},
		{"unknown storage", func(c *Config) { c.Services.Storage = "mongo" }, true},
		{"unknown sequence", func(c *Config) { c.Sequence.Backend = "etcd" }, true},
		{"zero analytics batch", func(c *Config) { c.Analytics.BatchSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Services:  ServicesConfig{Storage: "memory"},
				Sequence:  SequenceConfig{Backend: "memory"},
				Analytics: AnalyticsConfig{BatchSize: 100},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
