package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBManager routes writes to the primary and spreads reads over replicas.
type DBManager struct {
	primary      *pgxpool.Pool
	replicas     []*pgxpool.Pool
	replicaIndex atomic.Uint32
}

type Config struct {
	PrimaryDSN  string
	ReplicaDSNs []string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

func NewDBManager(ctx context.Context, cfg Config) (*DBManager, error) {
	primary, err := connect(ctx, cfg.PrimaryDSN, cfg)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}

	m := &DBManager{primary: primary}
	for i, dsn := range cfg.ReplicaDSNs {
		if dsn == "" {
			continue
		}
		replica, err := connect(ctx, dsn, cfg)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("replica %d: %w", i, err)
		}
		m.replicas = append(m.replicas, replica)
	}

	return m, nil
}

func connect(ctx context.Context, dsn string, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	return pool, nil
}

func (m *DBManager) Write() *pgxpool.Pool {
	return m.primary
}

func (m *DBManager) Read() *pgxpool.Pool {
	if len(m.replicas) == 0 {
		return m.primary
	}

	idx := m.replicaIndex.Add(1) % uint32(len(m.replicas))
	return m.replicas[idx]
}

func (m *DBManager) Ping(ctx context.Context) error {
	return m.primary.Ping(ctx)
}

func (m *DBManager) Close() {
	if m.primary != nil {
		m.primary.Close()
	}
	for _, pool := range m.replicas {
		if pool != nil {
			pool.Close()
		}
	}
}

func (m *DBManager) Stats() map[string]interface{} {
	stats := make(map[string]interface{})

	if m.primary != nil {
		stats["primary"] = poolStats(m.primary)
	}

	replicaStats := make([]map[string]interface{}, len(m.replicas))
	for i, replica := range m.replicas {
		replicaStats[i] = poolStats(replica)
	}
	stats["replicas"] = replicaStats

	return stats
}

func poolStats(pool *pgxpool.Pool) map[string]interface{} {
	s := pool.Stat()
	return map[string]interface{}{
		"total_conns":    s.TotalConns(),
		"idle_conns":     s.IdleConns(),
		"acquired_conns": s.AcquiredConns(),
	}
}
