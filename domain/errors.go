package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrCodeInvalid     ErrorCode = "INVALID"
	ErrCodeConflict    ErrorCode = "CONFLICT"
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"
	ErrCodeInternal    ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is a domain error with the same code and message,
// so wrapped sentinels still match with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds an INVALID error for a missing or malformed field.
func Validation(message string) *Error {
	return NewError(ErrCodeInvalid, message)
}

// Common domain errors.
var (
	ErrUserNotFound     = NewError(ErrCodeNotFound, "user not found")
	ErrTodoNotFound     = NewError(ErrCodeNotFound, "todo not found")
	ErrUsernameRequired = Validation("username is required")
	ErrTaskNameRequired = Validation("task name is required")
	ErrInvalidPayload   = Validation("invalid payload")
	ErrInvalidTimer     = Validation("timer settings must be positive integers")
	ErrUnavailable      = NewError(ErrCodeUnavailable, "storage unavailable")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// Persistence wraps an unclassified storage fault as an INTERNAL error.
// Errors that already carry a domain code are returned unchanged.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var dErr *Error
	if errors.As(err, &dErr) {
		return err
	}
	return WrapError(ErrCodeInternal, op, err)
}
