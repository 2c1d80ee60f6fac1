package repository

import (
	"context"

	"github.com/fastygo/pomodoro/domain"
)

type TodoRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)
	ListByUser(ctx context.Context, userID int64, sort domain.TodoSort) ([]domain.Todo, error)
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
