package repository

import (
	"context"

	"github.com/fastygo/pomodoro/domain"
)

// StatsCache stores computed statistics per user and calendar day.
// A miss is reported as (nil, nil).
//
// Every Invalidate advances the user's generation. Callers read Generation
// before querying storage and pass it to Set, which drops the write if the
// user was invalidated in between, so stats computed before a completion
// never outlive it.
type StatsCache interface {
	Get(ctx context.Context, userID int64, day string) (*domain.Stats, error)
	Generation(ctx context.Context, userID int64) (int64, error)
	Set(ctx context.Context, userID int64, day string, gen int64, stats *domain.Stats) error
	Invalidate(ctx context.Context, userID int64) error
}
