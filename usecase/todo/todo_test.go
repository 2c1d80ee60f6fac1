package todo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fastygo/pomodoro/domain"
	"github.com/fastygo/pomodoro/internal/infrastructure/sqlite/sqlitetest"
	"github.com/fastygo/pomodoro/pkg/clock"
	"github.com/fastygo/pomodoro/repository"
	todoUC "github.com/fastygo/pomodoro/usecase/todo"
	userUC "github.com/fastygo/pomodoro/usecase/user"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	store repository.Store
	clock *clock.FakeClock
	users *userUC.UseCase
	todos *todoUC.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := sqlitetest.NewStore(t)
	clk := clock.Fake(time.Date(2025, time.January, 8, 23, 30, 0, 0, time.UTC))
	return &fixture{
		store: store,
		clock: clk,
		users: userUC.New(store, nil, nil),
		todos: todoUC.New(store, nil, clk, time.UTC, nil),
	}
}

func (f *fixture) user(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := f.users.GetOrCreate(context.Background(), name)
	if err != nil {
		t.Fatalf("GetOrCreate(%s): %v", name, err)
	}
	return u
}

func (f *fixture) history(t *testing.T, userID int64) []domain.CompletedTask {
	t.Helper()
	var tasks []domain.CompletedTask
	err := f.store.WithTx(context.Background(), func(tx repository.Tx) error {
		var err error
		tasks, err = tx.CompletedTasks().Recent(context.Background(), userID, 0)
		return err
	})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	return tasks
}

func TestAddAndComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	id, err := f.todos.Add(ctx, alice.ID, domain.Todo{TaskName: "Write report", DueDate: strPtr("2025-01-10")})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	done, err := f.todos.Complete(ctx, id)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.CompletedAt != "2025-01-08" || done.TaskName != "Write report" {
		t.Fatalf("unexpected completion: %+v", done)
	}

	active, err := f.todos.List(ctx, alice.ID, domain.SortByDueDate)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active todos, got %+v", active)
	}

	history := f.history(t, alice.ID)
	if len(history) != 1 || history[0].TaskName != "Write report" || history[0].CompletedAt != "2025-01-08" {
		t.Fatalf("unexpected history: %+v", history)
	}

	if _, err := f.todos.Complete(ctx, id); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("second Complete = %v, want ErrTodoNotFound", err)
	}
	if got := f.history(t, alice.ID); len(got) != 1 {
		t.Fatalf("second Complete wrote history: %+v", got)
	}
}

func TestCompleteUsesConfiguredLocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	// 23:30 UTC on Jan 8 is already Jan 9 in Tokyo.
	tokyo := time.FixedZone("JST", 9*60*60)
	uc := todoUC.New(f.store, nil, f.clock, tokyo, nil)

	id, err := uc.Add(ctx, alice.ID, domain.Todo{TaskName: "late night"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	done, err := uc.Complete(ctx, id)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.CompletedAt != "2025-01-09" {
		t.Fatalf("completed_at = %s, want 2025-01-09", done.CompletedAt)
	}
}

func TestConcurrentCompleteRecordsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	id, err := f.todos.Add(ctx, alice.ID, domain.Todo{TaskName: "race"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	const workers = 4
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.todos.Complete(ctx, id)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrTodoNotFound):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("%d completions succeeded, want 1", succeeded)
	}
	if got := f.history(t, alice.ID); len(got) != 1 {
		t.Fatalf("history rows = %d, want 1", len(got))
	}
}

func TestListIsolationAndOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	for _, todo := range []domain.Todo{
		{TaskName: "no date"},
		{TaskName: "later", DueDate: strPtr("2025-02-01")},
		{TaskName: "blank date", DueDate: strPtr("  ")},
		{TaskName: "sooner", DueDate: strPtr("2025-01-15")},
	} {
		if _, err := f.todos.Add(ctx, alice.ID, todo); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if _, err := f.todos.Add(ctx, bob.ID, domain.Todo{TaskName: "bob's"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	todos, err := f.todos.List(ctx, alice.ID, domain.SortByDueDate)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"sooner", "later", "no date", "blank date"}
	if len(todos) != len(want) {
		t.Fatalf("got %d todos, want %d", len(todos), len(want))
	}
	for i, todo := range todos {
		if todo.UserID != alice.ID {
			t.Fatalf("foreign todo in listing: %+v", todo)
		}
		if todo.TaskName != want[i] {
			t.Fatalf("position %d = %q, want %q", i, todo.TaskName, want[i])
		}
	}
	if todos[3].DueDate != nil {
		t.Fatalf("blank due date stored as %q", *todos[3].DueDate)
	}

	if _, err := f.todos.List(ctx, 999, domain.SortByDueDate); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("List(999) = %v, want ErrUserNotFound", err)
	}
}

func TestAddValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	if _, err := f.todos.Add(ctx, alice.ID, domain.Todo{TaskName: "  "}); !errors.Is(err, domain.ErrTaskNameRequired) {
		t.Fatalf("Add(blank) = %v, want ErrTaskNameRequired", err)
	}
	if _, err := f.todos.Add(ctx, 999, domain.Todo{TaskName: "orphan"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("Add(unknown user) = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	id, err := f.todos.Add(ctx, alice.ID, domain.Todo{TaskName: "draft", Color: strPtr("#00ff00")})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	updated, err := f.todos.Update(ctx, domain.Todo{ID: id, TaskName: "final", DueDate: strPtr("2025-03-01"), Color: strPtr("#0000ff")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.UserID != alice.ID {
		t.Fatalf("Update lost owner: %+v", updated)
	}

	got, err := f.todos.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TaskName != "final" || *got.DueDate != "2025-03-01" || *got.Color != "#0000ff" {
		t.Fatalf("unexpected todo: %+v", got)
	}

	if _, err := f.todos.Update(ctx, domain.Todo{ID: id, TaskName: ""}); !errors.Is(err, domain.ErrTaskNameRequired) {
		t.Fatalf("Update(blank) = %v", err)
	}
	if _, err := f.todos.Update(ctx, domain.Todo{ID: 999, TaskName: "x"}); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("Update(999) = %v", err)
	}

	if err := f.todos.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.todos.Delete(ctx, id); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("second Delete = %v", err)
	}
	if got := f.history(t, alice.ID); len(got) != 0 {
		t.Fatalf("Delete wrote history: %+v", got)
	}
}
