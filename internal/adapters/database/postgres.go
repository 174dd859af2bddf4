// Package database implements the project-data repository over PostgreSQL.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds database configuration.
type Config struct {
	Host             string
	Port             int
	User             string
	Password         string
	Database         string
	SSLMode          string
	ConnectionString string
	MaxConns         int32
	ConnectTimeout   time.Duration
}

// Validate checks the configuration before a connection attempt.
func (c Config) Validate() error {
	if c.ConnectionString != "" {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.User == "" {
		return fmt.Errorf("user is required")
	}
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	return nil
}

// ConnString returns the pgx connection string.
func (c Config) ConnString() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslMode)
}

// Connect opens and pings a connection pool.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	connectCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the tables the repository reads if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS project_baselines (
			project_id UUID PRIMARY KEY,
			budget_at_completion DOUBLE PRECISION NOT NULL,
			planned_duration_days DOUBLE PRECISION NOT NULL,
			approved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS project_status (
			project_id UUID PRIMARY KEY,
			actual_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
			elapsed_days DOUBLE PRECISION NOT NULL DEFAULT 0,
			percent_complete DOUBLE PRECISION NOT NULL DEFAULT 0,
			reported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS project_risk_records (
			id UUID PRIMARY KEY,
			project_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(32) NOT NULL,
			impact_type VARCHAR(32) NOT NULL,
			probability DOUBLE PRECISION NOT NULL DEFAULT 0,
			low_impact DOUBLE PRECISION,
			likely_impact DOUBLE PRECISION,
			high_impact DOUBLE PRECISION,
			mean_impact DOUBLE PRECISION,
			std_impact DOUBLE PRECISION,
			mitigation_strategies TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_risk_records_project
			ON project_risk_records (project_id, created_at)`,
	}
	for _, q := range queries {
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
