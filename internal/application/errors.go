package application

import "errors"

var (
	// ErrUserNotFound covers both an unknown identifier and a wrong password
	ErrUserNotFound = errors.New("user not found")
	ErrConflict     = errors.New("username or email already registered")
)

// ValidationError is returned for input the caller can correct.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(msg string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}
