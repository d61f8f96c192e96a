package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a referenced resource (worker, project) could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrTimedOut indicates that a remote store call exceeded its deadline.
var ErrTimedOut = errors.New("remote call timed out")

// ErrRemoteRejected indicates that the remote store rejected an otherwise valid write.
var ErrRemoteRejected = errors.New("remote store rejected the operation")

// ErrOffline indicates that no connectivity to the remote store was available at call time.
var ErrOffline = errors.New("remote store unreachable")

// AppError wraps an underlying error with a code and a caller-facing message.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
