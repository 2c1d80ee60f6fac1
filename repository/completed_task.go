package repository

import (
	"context"

	"github.com/fastygo/pomodoro/domain"
)

type CompletedTaskRepository interface {
	Create(ctx context.Context, task *domain.CompletedTask) (int64, error)
	// CountSince returns per-date completion counts for dates >= since.
	CountSince(ctx context.Context, userID int64, since string) ([]domain.DailyCount, error)
	// Recent lists history newest first; limit <= 0 returns every row.
	Recent(ctx context.Context, userID int64, limit int) ([]domain.CompletedTask, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
