package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrState indicates an illegal status transition, including the case where a
// journal's status changed concurrently between read and write.
var ErrState = errors.New("illegal state transition")

// ErrPeriodClosed indicates an attempt to submit or post into a closed accounting period.
var ErrPeriodClosed = errors.New("accounting period is closed")

// ErrPeriodClose indicates a period cannot be closed while journals in it are non-terminal.
var ErrPeriodClose = errors.New("accounting period cannot be closed")

// ErrAllocation indicates a landed cost document that cannot be allocated
// (zero-weight basis, missing target account, document already allocated).
var ErrAllocation = errors.New("allocation error")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a code usable by the HTTP layer.
type AppError struct {
	Code    int
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

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
