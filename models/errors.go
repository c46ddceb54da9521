package models

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	AuthenticationErr ErrorKind = "authentication"
	AuthorizationErr  ErrorKind = "authorization"
	ValidationErr     ErrorKind = "validation"
	PreconditionErr   ErrorKind = "precondition"
	NotFoundErr       ErrorKind = "not_found"
	ConflictErr       ErrorKind = "conflict"
	InternalErr       ErrorKind = "internal"
)

// AppError carries a taxonomy kind and a message safe to show to the caller.
type AppError struct {
	Kind    ErrorKind
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

func newAppError(kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewAuthenticationError(format string, args ...interface{}) error {
	return newAppError(AuthenticationErr, format, args...)
}

func NewAuthorizationError(format string, args ...interface{}) error {
	return newAppError(AuthorizationErr, format, args...)
}

func NewValidationError(format string, args ...interface{}) error {
	return newAppError(ValidationErr, format, args...)
}

func NewPreconditionError(format string, args ...interface{}) error {
	return newAppError(PreconditionErr, format, args...)
}

func NewNotFoundError(format string, args ...interface{}) error {
	return newAppError(NotFoundErr, format, args...)
}

func NewConflictError(format string, args ...interface{}) error {
	return newAppError(ConflictErr, format, args...)
}

// NewInternalError wraps a storage or collaborator failure.
func NewInternalError(err error, msg string) error {
	return &AppError{Kind: InternalErr, Message: msg, Err: err}
}

// KindOf reports the taxonomy kind of err. Errors outside the taxonomy are internal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return InternalErr
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// PublicMessage returns the caller-facing message for err.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
