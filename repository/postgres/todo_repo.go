package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fastygo/pomodoro/domain"
	"github.com/fastygo/pomodoro/repository"
)

type todoRepository struct {
	q querier
}

func (r *todoRepository) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	const query = `
	SELECT id, user_id, task_name, due_date, color
	FROM todos
	WHERE id = $1
	`
	return scanTodo(r.q.QueryRow(ctx, query, id))
}

func (r *todoRepository) ListByUser(ctx context.Context, userID int64, sort domain.TodoSort) ([]domain.Todo, error) {
	query := `
	SELECT id, user_id, task_name, due_date, color
	FROM todos
	WHERE user_id = $1
	` + repository.TodoOrderBy(sort)

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, classify(rows.Err())
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	if todo == nil {
		return 0, domain.ErrInvalidPayload
	}
	const query = `
	INSERT INTO todos (user_id, task_name, due_date, color)
	VALUES ($1, $2, $3, $4)
	RETURNING id
	`
	if err := r.q.QueryRow(ctx, query, todo.UserID, todo.TaskName, todo.DueDate, todo.Color).Scan(&todo.ID); err != nil {
		return 0, classify(err)
	}
	return todo.ID, nil
}

func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	if todo == nil {
		return domain.ErrInvalidPayload
	}
	const query = `
	UPDATE todos
	SET task_name = $2,
		due_date = $3,
		color = $4
	WHERE id = $1
	RETURNING user_id
	`
	if err := r.q.QueryRow(ctx, query, todo.ID, todo.TaskName, todo.DueDate, todo.Color).Scan(&todo.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTodoNotFound
		}
		return classify(err)
	}
	return nil
}

func (r *todoRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *todoRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM todos WHERE user_id = $1`, userID)
	if err != nil {
		return 0, classify(err)
	}
	return tag.RowsAffected(), nil
}

func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var todo domain.Todo
	if err := row.Scan(&todo.ID, &todo.UserID, &todo.TaskName, &todo.DueDate, &todo.Color); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, classify(err)
	}
	return &todo, nil
}
