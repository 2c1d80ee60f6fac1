package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fastygo/pomodoro/domain"
)

type userRepository struct {
	q querier
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
		SELECT id, username, pomodoro_time, break_time
		FROM users
		WHERE id = ?
	`
	return scanUser(r.q.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
		SELECT id, username, pomodoro_time, break_time
		FROM users
		WHERE username = ?
	`
	return scanUser(r.q.QueryRowContext(ctx, query, username))
}

func (r *userRepository) CreateIfMissing(ctx context.Context, username string) error {
	const query = `
	INSERT INTO users (username, pomodoro_time, break_time)
	VALUES (?, ?, ?)
	ON CONFLICT (username) DO NOTHING
	`
	_, err := r.q.ExecContext(ctx, query, username, domain.DefaultPomodoroTime, domain.DefaultBreakTime)
	return classify(err)
}

func (r *userRepository) List(ctx context.Context) ([]domain.UserSummary, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, username FROM users ORDER BY id ASC`)
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
	SET pomodoro_time = ?,
		break_time = ?
	WHERE id = ?
	`
	res, err := r.q.ExecContext(ctx, query, user.PomodoroTime, user.BreakTime, user.ID)
	if err != nil {
		return classify(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return classify(err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row scanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.PomodoroTime, &user.BreakTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify(err)
	}
	return &user, nil
}
