package postgres

import (
	"context"
	"time"

	"github.com/fastygo/pomodoro/domain"
)

type completedTaskRepository struct {
	q querier
}

func (r *completedTaskRepository) Create(ctx context.Context, task *domain.CompletedTask) (int64, error) {
	if task == nil {
		return 0, domain.ErrInvalidPayload
	}
	completedAt, err := parseDate(task.CompletedAt)
	if err != nil {
		return 0, err
	}

	const query = `
	INSERT INTO completed_tasks (user_id, task_name, completed_at)
	VALUES ($1, $2, $3)
	RETURNING id
	`
	if err := r.q.QueryRow(ctx, query, task.UserID, task.TaskName, completedAt).Scan(&task.ID); err != nil {
		return 0, classify(err)
	}
	return task.ID, nil
}

func (r *completedTaskRepository) CountSince(ctx context.Context, userID int64, since string) ([]domain.DailyCount, error) {
	from, err := parseDate(since)
	if err != nil {
		return nil, err
	}

	const query = `
	SELECT completed_at, COUNT(*)
	FROM completed_tasks
	WHERE user_id = $1 AND completed_at >= $2
	GROUP BY completed_at
	ORDER BY completed_at ASC
	`
	rows, err := r.q.Query(ctx, query, userID, from)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var counts []domain.DailyCount
	for rows.Next() {
		var (
			day   time.Time
			count int64
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, classify(err)
		}
		counts = append(counts, domain.DailyCount{Date: formatDate(day), Count: int(count)})
	}
	return counts, classify(rows.Err())
}

func (r *completedTaskRepository) Recent(ctx context.Context, userID int64, limit int) ([]domain.CompletedTask, error) {
	// LIMIT NULL is unbounded
	var bound any
	if limit > 0 {
		bound = limit
	}

	const query = `
	SELECT id, user_id, task_name, completed_at
	FROM completed_tasks
	WHERE user_id = $1
	ORDER BY completed_at DESC, id DESC
	LIMIT $2
	`
	rows, err := r.q.Query(ctx, query, userID, bound)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	tasks := make([]domain.CompletedTask, 0)
	for rows.Next() {
		var (
			task domain.CompletedTask
			day  time.Time
		)
		if err := rows.Scan(&task.ID, &task.UserID, &task.TaskName, &day); err != nil {
			return nil, classify(err)
		}
		task.CompletedAt = formatDate(day)
		tasks = append(tasks, task)
	}
	return tasks, classify(rows.Err())
}

func (r *completedTaskRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM completed_tasks WHERE user_id = $1`, userID)
	if err != nil {
		return 0, classify(err)
	}
	return tag.RowsAffected(), nil
}
