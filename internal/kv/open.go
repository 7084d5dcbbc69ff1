package kv

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cleared-dev/moneytrack/internal/config"
)

// Open builds the Backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "headless":
		return Headless{}, nil
	case "file":
		dir := cfg.Path
		if dir == "" {
			dir = "data"
		}
		return NewFile(dir)
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = filepath.Join("data", "moneytrack.db")
		}
		return OpenSQLite(ctx, path)
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis driver requires redis_addr")
		}
		return NewRedis(cfg.RedisAddr, cfg.RedisPass), nil
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires dsn")
		}
		return OpenPostgres(ctx, cfg.DSN)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

// OpenSubstrate opens the configured backend and wraps it in a Substrate.
func OpenSubstrate(ctx context.Context, cfg config.StorageConfig) (*Substrate, error) {
	policy, err := ParseReadPolicy(cfg.ReadPolicy)
	if err != nil {
		return nil, err
	}
	backend, err := Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Driver, err)
	}
	return NewSubstrate(backend, policy), nil
}
