package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrPartialFailure   = errors.New("operation partially applied")
	ErrInternal         = errors.New("internal error")

	// ErrInvalidCredentials is a kind of ErrUnauthenticated
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
)

// Error codes carried in the response envelope
const (
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodePartialFailure   = "PARTIAL_FAILURE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"status_code"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func Unauthenticated(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthenticated, message, ErrUnauthenticated)
}

// InvalidCredentials is an Unauthenticated caused by a wrong password
func InvalidCredentials(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthenticated, message, ErrInvalidCredentials)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func InvalidInput(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

// PayloadTooLarge is an InvalidInput reported with 413
func PayloadTooLarge(message string) *AppError {
	return NewAppError(http.StatusRequestEntityTooLarge, CodeInvalidInput, message, ErrInvalidInput)
}

func InvalidOperation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidOperation, message, ErrInvalidOperation)
}

func PartialFailure(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodePartialFailure, message, ErrPartialFailure)
}

// InternalError hides the cause from the caller; the cause stays reachable via Unwrap.
func InternalError(err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "Internal server error", err)
}

// FromError converts any error into an AppError
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewAppError(http.StatusUnauthorized, CodeUnauthenticated, err.Error(), err)
	case errors.Is(err, ErrForbidden):
		return NewAppError(http.StatusForbidden, CodeForbidden, err.Error(), err)
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, err.Error(), err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, CodeConflict, err.Error(), err)
	case errors.Is(err, ErrInvalidInput):
		return NewAppError(http.StatusBadRequest, CodeInvalidInput, err.Error(), err)
	case errors.Is(err, ErrInvalidOperation):
		return NewAppError(http.StatusBadRequest, CodeInvalidOperation, err.Error(), err)
	case errors.Is(err, ErrPartialFailure):
		return NewAppError(http.StatusInternalServerError, CodePartialFailure, err.Error(), err)
	default:
		return InternalError(err)
	}
}
