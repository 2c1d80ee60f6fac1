package sqlite

import (
	"context"

	"github.com/fastygo/pomodoro/domain"
)

type completedTaskRepository struct {
	q querier
}

func (r *completedTaskRepository) Create(ctx context.Context, task *domain.CompletedTask) (int64, error) {
	if task == nil {
		return 0, domain.ErrInvalidPayload
	}
	const query = `
	INSERT INTO completed_tasks (user_id, task_name, completed_at)
	VALUES (?, ?, ?)
	`
	res, err := r.q.ExecContext(ctx, query, task.UserID, task.TaskName, task.CompletedAt)
	if err != nil {
		return 0, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, classify(err)
	}
	task.ID = id
	return id, nil
}

func (r *completedTaskRepository) CountSince(ctx context.Context, userID int64, since string) ([]domain.DailyCount, error) {
	// dates are stored as YYYY-MM-DD, so text comparison is chronological
	const query = `
	SELECT completed_at, COUNT(*)
	FROM completed_tasks
	WHERE user_id = ? AND completed_at >= ?
	GROUP BY completed_at
	ORDER BY completed_at ASC
	`
	rows, err := r.q.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var counts []domain.DailyCount
	for rows.Next() {
		var c domain.DailyCount
		if err := rows.Scan(&c.Date, &c.Count); err != nil {
			return nil, classify(err)
		}
		counts = append(counts, c)
	}
	return counts, classify(rows.Err())
}

func (r *completedTaskRepository) Recent(ctx context.Context, userID int64, limit int) ([]domain.CompletedTask, error) {
	if limit <= 0 {
		limit = -1
	}
	const query = `
	SELECT id, user_id, task_name, completed_at
	FROM completed_tasks
	WHERE user_id = ?
	ORDER BY completed_at DESC, id DESC
	LIMIT ?
	`
	rows, err := r.q.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	tasks := make([]domain.CompletedTask, 0)
	for rows.Next() {
		var task domain.CompletedTask
		if err := rows.Scan(&task.ID, &task.UserID, &task.TaskName, &task.CompletedAt); err != nil {
			return nil, classify(err)
		}
		tasks = append(tasks, task)
	}
	return tasks, classify(rows.Err())
}

func (r *completedTaskRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM completed_tasks WHERE user_id = ?`, userID)
	if err != nil {
		return 0, classify(err)
	}
	return rowsAffected(res)
}
