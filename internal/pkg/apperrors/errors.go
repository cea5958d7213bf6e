// Package apperrors holds the infrastructure error kinds shared by the
// storage and broker adapters. Customer-level errors live in the customer
// package.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrDatabase    = errors.New("database error")
	ErrUnavailable = errors.New("dependency unavailable")
)

const (
	CodeDatabase = "DB_ERROR"
	CodeBroker   = "BROKER_ERROR"
)

// AppError tags a failure with a stable code. The cause chain always
// includes the matching sentinel, so callers can use errors.Is.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func wrap(code string, kind, cause error, message string) error {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   fmt.Errorf("%w: %w", kind, cause),
	}
}

func WrapDatabaseError(cause error, message string) error {
	return wrap(CodeDatabase, ErrDatabase, cause, message)
}

func WrapBrokerError(cause error, message string) error {
	return wrap(CodeBroker, ErrUnavailable, cause, message)
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
