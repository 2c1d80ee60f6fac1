package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/fastygo/pomodoro/domain"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// classify maps driver failures onto domain error codes. Unrecognised
// errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return domain.WrapError(domain.ErrCodeConflict, "constraint violation", err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return domain.WrapError(domain.ErrCodeNotFound, "referenced user not found", err)
		}
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			if strings.Contains(sqliteErr.Error(), "FOREIGN KEY") {
				return domain.WrapError(domain.ErrCodeNotFound, "referenced user not found", err)
			}
			return domain.WrapError(domain.ErrCodeConflict, "constraint violation", err)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN:
			return domain.WrapError(domain.ErrCodeUnavailable, domain.ErrUnavailable.Message, err)
		}
		return err
	}

	if errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return domain.WrapError(domain.ErrCodeUnavailable, domain.ErrUnavailable.Message, err)
	}
	return err
}

func nullable(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}
