package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/domain"
	"github.com/fastygo/pomodoro/repository"
)

type UseCase struct {
	store  repository.Store
	cache  repository.StatsCache
	logger *zap.Logger
}

// New builds the user use case. cache may be nil.
func New(store repository.Store, cache repository.StatsCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// GetOrCreate returns the user with the given name, registering it with
// default timer settings on first use. Concurrent first logins resolve to
// the same row through the unique constraint on username.
func (uc *UseCase) GetOrCreate(ctx context.Context, username string) (*domain.User, error) {
	name, err := domain.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	err = uc.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := tx.Users().CreateIfMissing(ctx, name); err != nil {
			return err
		}
		user, err = tx.Users().GetByUsername(ctx, name)
		return err
	})
	if err != nil {
		return nil, domain.Persistence("get or create user", err)
	}
	return user, nil
}

func (uc *UseCase) Get(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		user, err = tx.Users().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, domain.Persistence("get user", err)
	}
	return user, nil
}

func (uc *UseCase) List(ctx context.Context) ([]domain.UserSummary, error) {
	var users []domain.UserSummary
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		users, err = tx.Users().List(ctx)
		return err
	})
	if err != nil {
		return nil, domain.Persistence("list users", err)
	}
	return users, nil
}

// UpdateSettings applies a partial timer update; omitted fields keep their
// stored values.
func (uc *UseCase) UpdateSettings(ctx context.Context, id int64, settings domain.Settings) (*domain.User, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	var user *domain.User
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		user, err = tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		settings.Apply(user)
		return tx.Users().UpdateSettings(ctx, user)
	})
	if err != nil {
		return nil, domain.Persistence("update settings", err)
	}
	return user, nil
}

// Delete removes the user together with every todo and completed task it
// owns. All three deletions commit together or not at all.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	var todos, completed int64
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.Users().GetByID(ctx, id); err != nil {
			return err
		}
		var err error
		if completed, err = tx.CompletedTasks().DeleteByUser(ctx, id); err != nil {
			return err
		}
		if todos, err = tx.Todos().DeleteByUser(ctx, id); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return domain.Persistence("delete user", err)
	}

	uc.logger.Info("user deleted",
		zap.Int64("user_id", id),
		zap.Int64("todos", todos),
		zap.Int64("completed_tasks", completed))

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, id); err != nil {
			uc.logger.Warn("stats cache invalidation failed", zap.Int64("user_id", id), zap.Error(err))
		}
	}
	return nil
}
