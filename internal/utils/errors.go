package utils

import (
	"errors"
	"net/http"
)

// AppError is an error with a client-safe message and HTTP status.
type AppError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func NewPayloadTooLargeError(message string) *AppError {
	return &AppError{StatusCode: http.StatusRequestEntityTooLarge, Message: message}
}

func NewUnsupportedMediaError(message string) *AppError {
	return &AppError{StatusCode: http.StatusUnsupportedMediaType, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message}
}

// Wrap attaches the underlying cause to an AppError for logging.
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

// AsAppError returns err as an AppError, defaulting to a generic 500.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("Internal server error").Wrap(err)
}
