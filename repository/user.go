package repository

import (
	"context"

	"github.com/fastygo/pomodoro/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// CreateIfMissing inserts a user with default timer settings unless the
	// username already exists. It never fails on a duplicate name.
	CreateIfMissing(ctx context.Context, username string) error
	List(ctx context.Context) ([]domain.UserSummary, error)
	UpdateSettings(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}
