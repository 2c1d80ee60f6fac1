package todo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/domain"
	"github.com/fastygo/pomodoro/pkg/clock"
	"github.com/fastygo/pomodoro/repository"
)

type UseCase struct {
	store    repository.Store
	cache    repository.StatsCache
	clock    clock.Clock
	location *time.Location
	logger   *zap.Logger
}

// New builds the todo use case. Completion dates are taken from clk in loc.
// cache may be nil.
func New(store repository.Store, cache repository.StatsCache, clk clock.Clock, loc *time.Location, logger *zap.Logger) *UseCase {
	if clk == nil {
		clk = clock.Real()
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		store:    store,
		cache:    cache,
		clock:    clk,
		location: loc,
		logger:   logger,
	}
}

// List returns the user's active todos in the requested order.
func (uc *UseCase) List(ctx context.Context, userID int64, sort domain.TodoSort) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			return err
		}
		var err error
		todos, err = tx.Todos().ListByUser(ctx, userID, sort)
		return err
	})
	if err != nil {
		return nil, domain.Persistence("list todos", err)
	}
	return todos, nil
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	var todo *domain.Todo
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		todo, err = tx.Todos().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, domain.Persistence("get todo", err)
	}
	return todo, nil
}

// Add creates a todo for userID and returns its id.
func (uc *UseCase) Add(ctx context.Context, userID int64, todo domain.Todo) (int64, error) {
	todo.UserID = userID
	if err := todo.Normalize(); err != nil {
		return 0, err
	}

	var id int64
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			return err
		}
		var err error
		id, err = tx.Todos().Create(ctx, &todo)
		return err
	})
	if err != nil {
		return 0, domain.Persistence("add todo", err)
	}
	return id, nil
}

// Update replaces the name, due date and colour of an existing todo.
func (uc *UseCase) Update(ctx context.Context, todo domain.Todo) (*domain.Todo, error) {
	if err := todo.Normalize(); err != nil {
		return nil, err
	}
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Todos().Update(ctx, &todo)
	})
	if err != nil {
		return nil, domain.Persistence("update todo", err)
	}
	return &todo, nil
}

// Delete drops a todo without recording it in the history.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.Todos().Delete(ctx, id)
	})
	if err != nil {
		return domain.Persistence("delete todo", err)
	}
	return nil
}

// Complete moves a todo into the completion history dated today. The
// history insert and the todo delete share one transaction; if another
// request completed the todo first the delete matches no row, the
// transaction rolls back and ErrTodoNotFound is returned.
func (uc *UseCase) Complete(ctx context.Context, id int64) (*domain.CompletedTask, error) {
	today := domain.CalendarDate(uc.clock.Now().In(uc.location))

	var completed *domain.CompletedTask
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		todo, err := tx.Todos().GetByID(ctx, id)
		if err != nil {
			return err
		}
		record := &domain.CompletedTask{
			UserID:      todo.UserID,
			TaskName:    todo.TaskName,
			CompletedAt: today,
		}
		if _, err := tx.CompletedTasks().Create(ctx, record); err != nil {
			return err
		}
		if err := tx.Todos().Delete(ctx, todo.ID); err != nil {
			return err
		}
		completed = record
		return nil
	})
	if err != nil {
		return nil, domain.Persistence("complete todo", err)
	}

	uc.logger.Debug("todo completed",
		zap.Int64("todo_id", id),
		zap.Int64("user_id", completed.UserID),
		zap.String("completed_at", completed.CompletedAt))

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, completed.UserID); err != nil {
			uc.logger.Warn("stats cache invalidation failed", zap.Int64("user_id", completed.UserID), zap.Error(err))
		}
	}
	return completed, nil
}
