package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastygo/pomodoro/domain"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	numericOutOfRange   = "22003"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// classify maps driver failures onto domain error codes. Unrecognised
// errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return domain.WrapError(domain.ErrCodeConflict, "constraint violation", err)
		case foreignKeyViolation:
			return domain.WrapError(domain.ErrCodeNotFound, "referenced user not found", err)
		case numericOutOfRange:
			return domain.WrapError(domain.ErrCodeInvalid, "value out of range", err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) ||
		pgconn.Timeout(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return domain.WrapError(domain.ErrCodeUnavailable, domain.ErrUnavailable.Message, err)
	}
	return err
}

func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, domain.WrapError(domain.ErrCodeInvalid, "invalid date", err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(domain.DateLayout)
}
