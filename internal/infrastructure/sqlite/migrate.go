package sqlite

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/internal/migrations"
)

// RunMigrations applies the embedded SQLite schema to the file at path.
// It uses its own handle because closing the migrator closes the database.
func RunMigrations(path string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	sqlDB, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	driver, err := sqlite.WithInstance(sqlDB, &sqlite.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.SQLite, migrations.SQLiteDir)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	logger.Info("database migrations applied", zap.String("driver", "sqlite"), zap.String("path", path))
	return nil
}
