package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"risk-dashboard/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "risk-dashboard"
	connectTimeout  = 10 * time.Second
	pingTimeout     = 5 * time.Second
)

// NewConnectionPool opens a small read-only pool. The database is only read
// once, to import the seed portfolio, so the pool is closed right after.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is empty in configuration")
	}

	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}

	logCtx := logger.With("host", poolConfig.ConnConfig.Host, "db", poolConfig.ConnConfig.Database)
	logCtx.Info("Connecting to PostgreSQL seed database...")
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logCtx.Error("Failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database on connect: %w", err)
	}

	logCtx.Info("Connected to PostgreSQL seed database.")
	return pool, nil
}

func configurePool(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	poolConfig.MaxConns = 2
	poolConfig.MinConns = 0
	poolConfig.MaxConnIdleTime = 30 * time.Second
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	poolConfig.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"

	return poolConfig, nil
}
