package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/pomodoro/repository"
)

type store struct {
	db *sql.DB
}

// NewStore returns a SQLite-backed repository.Store over an open handle.
func NewStore(db *sql.DB) repository.Store {
	return &store{db: db}
}

func (s *store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(err)
	}
	// no-op once committed
	defer sqlTx.Rollback()

	if err := fn(&tx{q: sqlTx}); err != nil {
		return err
	}
	return classify(sqlTx.Commit())
}

func (s *store) Ping(ctx context.Context) error {
	return classify(s.db.PingContext(ctx))
}

func (s *store) Close() error {
	return s.db.Close()
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
