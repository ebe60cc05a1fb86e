package apperror

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Detail returns the underlying cause message, or the message itself when
// there is no cause
func (e *AppError) Detail() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrTooManyRequest = &AppError{Code: http.StatusTooManyRequests, Message: "Rate limit exceeded. Please try again later."}
)

// NewInternalError creates a 500 error carrying the underlying cause
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Err:     cause,
	}
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: ErrInternalServer.Message,
		Err:     err,
	}
}
