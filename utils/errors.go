package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a failure for the response envelope.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindForbidden  Kind = "forbidden"
	KindExpired    Kind = "expired"
	KindInternal   Kind = "internal"
)

// AppError is returned by handlers and services and rendered by ErrorHandler.
type AppError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationError(format string, args ...any) *AppError {
	return &AppError{Kind: KindValidation, Status: fiber.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a duplicate record. Some resources answer 400, others 409.
func ConflictError(status int, message string) *AppError {
	return &AppError{Kind: KindConflict, Status: status, Message: message}
}

func NotFoundError(format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Status: fiber.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

func AuthError(message string) *AppError {
	return &AppError{Kind: KindAuth, Status: fiber.StatusUnauthorized, Message: message}
}

func ForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Status: fiber.StatusForbidden, Message: message}
}

// ExpiredError is 400 for an expired OTP and 401 for an expired token.
func ExpiredError(status int, message string) *AppError {
	return &AppError{Kind: KindExpired, Status: status, Message: message}
}

// InternalError hides err from the client; the handler logs it.
func InternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Status: fiber.StatusInternalServerError, Message: "Internal server error.", Err: err}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
