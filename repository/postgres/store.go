package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/pomodoro/repository"
)

type store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Postgres-backed repository.Store.
func NewStore(pool *pgxpool.Pool) repository.Store {
	return &store{pool: pool}
}

func (s *store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	pgTx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return classify(err)
	}
	// no-op once committed
	defer pgTx.Rollback(ctx)

	if err := fn(&tx{q: pgTx}); err != nil {
		return err
	}
	return classify(pgTx.Commit(ctx))
}

func (s *store) Ping(ctx context.Context) error {
	return classify(s.pool.Ping(ctx))
}

func (s *store) Close() error {
	s.pool.Close()
	return nil
}

type tx struct {
	q querier
}

func (t *tx) Users() repository.UserRepository {
	return &userRepository{q: t.q}
}

func (t *tx) Todos() repository.TodoRepository {
	return &todoRepository{q: t.q}
}

func (t *tx) CompletedTasks() repository.CompletedTaskRepository {
	return &completedTaskRepository{q: t.q}
}
