package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/fastygo/pomodoro/domain"
)

type userRepository struct {
	q querier
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
		SELECT id, username, pomodoro_time, break_time
		FROM users
		WHERE id = $1
	`
	return scanUser(r.q.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
		SELECT id, username, pomodoro_time, break_time
		FROM users
		WHERE username = $1
	`
	return scanUser(r.q.QueryRow(ctx, query, username))
}

func (r *userRepository) CreateIfMissing(ctx context.Context, username string) error {
	const query = `
	INSERT INTO users (username, pomodoro_time, break_time)
	VALUES ($1, $2, $3)
	ON CONFLICT (username) DO NOTHING
	`
	_, err := r.q.Exec(ctx, query, username, domain.DefaultPomodoroTime, domain.DefaultBreakTime)
	return classify(err)
}

func (r *userRepository) List(ctx context.Context) ([]domain.UserSummary, error) {
	const query = `SELECT id, username FROM users ORDER BY id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	users := make([]domain.UserSummary, 0)
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, classify(err)
		}
		users = append(users, u)
	}
	return users, classify(rows.Err())
}

func (r *userRepository) UpdateSettings(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	const query = `
	UPDATE users
	SET pomodoro_time = $2,
		break_time = $3
	WHERE id = $1
	`
	tag, err := r.q.Exec(ctx, query, user.ID, user.PomodoroTime, user.BreakTime)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.PomodoroTime, &user.BreakTime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify(err)
	}
	return &user, nil
}
