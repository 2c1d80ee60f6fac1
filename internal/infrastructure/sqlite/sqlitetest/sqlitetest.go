// Package sqlitetest provides a migrated, file-backed store for tests.
package sqlitetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fastygo/pomodoro/internal/config"
	sqliteInfra "github.com/fastygo/pomodoro/internal/infrastructure/sqlite"
	"github.com/fastygo/pomodoro/repository"
	sqliteRepo "github.com/fastygo/pomodoro/repository/sqlite"
)

// NewStore migrates a fresh database in t's temp dir and closes it when the
// test ends.
func NewStore(t testing.TB) repository.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pomodoro.db")
	if err := sqliteInfra.RunMigrations(path, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := sqliteInfra.Open(context.Background(), config.DatabaseConfig{Path: path, MaxOpenConns: 4}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	store := sqliteRepo.NewStore(db)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}
