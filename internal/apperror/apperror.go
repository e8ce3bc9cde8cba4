package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyPostedToday = errors.New("already posted today")
	ErrPseudonymTaken     = errors.New("pseudonym taken")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
)

// AppError carries a sentinel kind plus a human-readable message. Handlers
// match the kind with errors.Is to pick an HTTP status.
type AppError struct {
	Err     error  // sentinel kind
	Message string // human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// AlreadyPostedToday is returned when the daily-post gate denies a second
// post on the same local calendar day. Not retryable until the day rolls
// over.
func AlreadyPostedToday() *AppError {
	return &AppError{
		Err:     ErrAlreadyPostedToday,
		Message: "you have already shared music today",
	}
}

// PseudonymTaken is returned when the requested pseudonym belongs to a
// different user. Retryable with another pseudonym.
func PseudonymTaken(pseudonym string) *AppError {
	return &AppError{
		Err:     ErrPseudonymTaken,
		Message: fmt.Sprintf("pseudonym %q is already taken", pseudonym),
	}
}

// Unauthorized is returned when a caller acts on a record they do not own.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
	}
}

// Conflict is returned when a conditional write loses to a concurrent
// update of the same record. Retryable after re-reading.
func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s %s was modified concurrently", resource, id),
	}
}
