package utils

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Origin  error // Original error that caused this error, if any
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

func (appErr *AppError) Unwrap() error {
	return appErr.Origin
}

// Standard error codes for the application
const (
	// Resource errors
	ErrNotFound     = "NOT_FOUND"
	ErrInvalidInput = "INVALID_INPUT"

	// Store errors. A constraint violation is still a store error; it only
	// gets its own code so logs can tell the two apart.
	ErrDatabase    = "database_error"
	ErrConstraint  = "CONSTRAINT_VIOLATION"
	ErrUnavailable = "UNAVAILABLE"

	// Outbound feed errors
	ErrUpstream = "UPSTREAM_ERROR"

	ErrInternal = "INTERNAL_ERROR"
)

// statusByCode is the only place an error code becomes an HTTP status.
var statusByCode = map[string]int{
	ErrNotFound:     http.StatusNotFound,
	ErrInvalidInput: http.StatusBadRequest,
	ErrDatabase:     http.StatusInternalServerError,
	ErrConstraint:   http.StatusInternalServerError,
	ErrUnavailable:  http.StatusServiceUnavailable,
	ErrUpstream:     http.StatusBadGateway,
	ErrInternal:     http.StatusInternalServerError,
}

// Error creation helper functions
func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

// NewNotFoundError builds the 404 error for a resource, e.g. "Thread not found".
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: resource + " not found",
	}
}

func NewInvalidInputError(message string, originalErr error) *AppError {
	return &AppError{
		Code:    ErrInvalidInput,
		Message: message,
		Origin:  originalErr,
	}
}

// Helper method to check if an error is of a specific type
func IsErrorCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AppErrorToHTTPStatus converts an AppError code to an HTTP status code.
// Unknown codes are treated as internal errors.
func AppErrorToHTTPStatus(errorCode string) int {
	if status, ok := statusByCode[errorCode]; ok {
		return status
	}
	return http.StatusInternalServerError
}
