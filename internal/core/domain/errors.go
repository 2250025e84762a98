package domain

import (
	"errors"
	"fmt"
)

// Backend error codes understood by the classifier. Most are Postgres SQLSTATEs;
// the SQLite and in-memory gateways translate their own failures into the same codes.
const (
	CodeInsufficientPrivilege = "42501"
	CodeUniqueViolation       = "23505"
	CodeForeignKeyViolation   = "23503"
	CodeUndefinedTable        = "42P01"
	CodeQueryCanceled         = "57014"
	CodeTooManyConnections    = "53300"
	CodeConfigurationLimit    = "53400"
	CodeNoRows                = "PGRST116"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")

	ErrInvalidPlantStatus = errors.New("invalid plant status")
	ErrInvalidSunExposure = errors.New("sun exposure must be full-sun, partial-sun or shade")
	ErrInvalidPriority    = errors.New("priority must be low, medium or high")
	ErrInvalidTaskType    = errors.New("invalid task type")
)

// BackendError is the error shape every gateway reports: an optional machine-readable
// code plus a human-readable message.
type BackendError struct {
	Code    string
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (code %s)", e.Message, e.Code)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError builds a BackendError without an underlying cause.
func NewBackendError(code, message string) *BackendError {
	return &BackendError{Code: code, Message: message}
}

// ValidationError reports a required field that was missing before any I/O happened.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
