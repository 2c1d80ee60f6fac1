package sqlite

import (
	"context"
	"database/sql"
	"errors"

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
	WHERE id = ?
	`
	return scanTodo(r.q.QueryRowContext(ctx, query, id))
}

func (r *todoRepository) ListByUser(ctx context.Context, userID int64, sort domain.TodoSort) ([]domain.Todo, error) {
	query := `
	SELECT id, user_id, task_name, due_date, color
	FROM todos
	WHERE user_id = ?
	` + repository.TodoOrderBy(sort)

	rows, err := r.q.QueryContext(ctx, query, userID)
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
	VALUES (?, ?, ?, ?)
	`
	res, err := r.q.ExecContext(ctx, query, todo.UserID, todo.TaskName, todo.DueDate, todo.Color)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify(err)
	}
	todo.ID = id
	return id, nil
}

func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	if todo == nil {
		return domain.ErrInvalidPayload
	}
	const query = `
	UPDATE todos
	SET task_name = ?,
		due_date = ?,
		color = ?
	WHERE id = ?
	RETURNING user_id
	`
	if err := r.q.QueryRowContext(ctx, query, todo.TaskName, todo.DueDate, todo.Color, todo.ID).Scan(&todo.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrTodoNotFound
		}
		return classify(err)
	}
	return nil
}

func (r *todoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return classify(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *todoRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM todos WHERE user_id = ?`, userID)
	if err != nil {
		return 0, classify(err)
	}
	return rowsAffected(res)
}

func scanTodo(row scanner) (*domain.Todo, error) {
	var (
		todo    domain.Todo
		dueDate sql.NullString
		color   sql.NullString
	)
	if err := row.Scan(&todo.ID, &todo.UserID, &todo.TaskName, &dueDate, &color); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, classify(err)
	}
	todo.DueDate = nullable(dueDate)
	todo.Color = nullable(color)
	return &todo, nil
}
