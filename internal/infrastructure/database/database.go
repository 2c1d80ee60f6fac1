// Package database opens the repository.Store selected by configuration.
package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/internal/config"
	pgInfra "github.com/fastygo/pomodoro/internal/infrastructure/postgres"
	sqliteInfra "github.com/fastygo/pomodoro/internal/infrastructure/sqlite"
	"github.com/fastygo/pomodoro/repository"
	pgRepo "github.com/fastygo/pomodoro/repository/postgres"
	sqliteRepo "github.com/fastygo/pomodoro/repository/sqlite"
)

// Open applies migrations when enabled and returns a ready store. The
// caller owns the store and must Close it.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver, err := cfg.Database.Driver()
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverPostgres:
		if cfg.Migrations.Enabled {
			if err := pgInfra.RunMigrations(cfg.Database.URL, logger); err != nil {
				return nil, fmt.Errorf("postgres migrations: %w", err)
			}
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection: %w", err)
		}
		return pgRepo.NewStore(pool), nil

	default:
		db, err := sqliteInfra.Open(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		if cfg.Migrations.Enabled {
			if err := sqliteInfra.RunMigrations(cfg.Database.SQLitePath(), logger); err != nil {
				db.Close()
				return nil, fmt.Errorf("sqlite migrations: %w", err)
			}
		}
		return sqliteRepo.NewStore(db), nil
	}
}
