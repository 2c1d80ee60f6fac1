package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/fastygo/pomodoro/domain"
	"github.com/fastygo/pomodoro/internal/config"
	pgInfra "github.com/fastygo/pomodoro/internal/infrastructure/postgres"
	"github.com/fastygo/pomodoro/repository"
	"github.com/fastygo/pomodoro/repository/postgres"
)

// Runs only against a disposable database named by POMODORO_TEST_POSTGRES_URL.
func newStore(t *testing.T) repository.Store {
	t.Helper()
	dsn := os.Getenv("POMODORO_TEST_POSTGRES_URL")
	if dsn == "" {
		t.Skip("POMODORO_TEST_POSTGRES_URL not set")
	}
	if err := pgInfra.RunMigrations(dsn, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	pool, err := pgInfra.NewPool(context.Background(), config.DatabaseConfig{URL: dsn}, nil)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	store := postgres.NewStore(pool)
	t.Cleanup(func() {
		pool.Exec(context.Background(), `TRUNCATE completed_tasks, todos, users RESTART IDENTITY`)
		store.Close()
	})
	return store
}

func TestCompleteFlow(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx repository.Tx) error {
		if err := tx.Users().CreateIfMissing(ctx, "alice"); err != nil {
			return err
		}
		if err := tx.Users().CreateIfMissing(ctx, "alice"); err != nil {
			return err
		}
		alice, err := tx.Users().GetByUsername(ctx, "alice")
		if err != nil {
			return err
		}

		todo := &domain.Todo{UserID: alice.ID, TaskName: "Write report"}
		if _, err := tx.Todos().Create(ctx, todo); err != nil {
			return err
		}
		if _, err := tx.CompletedTasks().Create(ctx, &domain.CompletedTask{UserID: alice.ID, TaskName: todo.TaskName, CompletedAt: "2025-01-08"}); err != nil {
			return err
		}
		if err := tx.Todos().Delete(ctx, todo.ID); err != nil {
			return err
		}

		counts, err := tx.CompletedTasks().CountSince(ctx, alice.ID, "2025-01-02")
		if err != nil {
			return err
		}
		if len(counts) != 1 || counts[0] != (domain.DailyCount{Date: "2025-01-08", Count: 1}) {
			t.Errorf("counts = %+v", counts)
		}
		recent, err := tx.CompletedTasks().Recent(ctx, alice.ID, 5)
		if err != nil {
			return err
		}
		if len(recent) != 1 || recent[0].CompletedAt != "2025-01-08" {
			t.Errorf("recent = %+v", recent)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
}

func TestForeignKeyMapsToNotFound(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx repository.Tx) error {
		_, err := tx.Todos().Create(ctx, &domain.Todo{UserID: 424242, TaskName: "orphan"})
		return err
	})
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatal("foreign key violation reported as missing todo")
	}
}
