// Package apperror defines the domain error taxonomy shared by every
// service: validation, duplicate-entity, not-found, authorization, and
// storage failures. Each carries the human-readable message that callers
// surface directly to the user, so the HTTP layer never invents wording.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorage      = errors.New("storage failure")
)

type AppError struct {
	Err     error  // sentinel for errors.Is checks
	Message string // human-readable, shown to the user verbatim
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// NotFoundMessage builds a not-found error with caller-supplied wording,
// for the cases where the exact user-facing sentence matters (e.g. "No
// account found with this email. Please register first.").
func NotFoundMessage(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthorized returns an AppError for mutating calls made without an
// active session. HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Storage returns an AppError for persistence failures (I/O errors,
// malformed stored JSON that couldn't be defaulted away).
func Storage(message string) *AppError {
	return &AppError{
		Err:     ErrStorage,
		Message: message,
	}
}
