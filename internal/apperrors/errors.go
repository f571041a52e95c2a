package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing, invalid or mismatched credentials or tokens.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates that the stored refresh token has passed its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// AppError is the uniform error kind carried from services to the HTTP boundary.
// Code is the HTTP status to respond with; Errs carries optional per-field detail.
type AppError struct {
	Code    int      `json:"statusCode"`
	Message string   `json:"message"`
	Errs    []string `json:"errors,omitempty"`
	cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As checks.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewAppError creates an AppError with an explicit status code and cause.
func NewAppError(code int, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, cause: cause}
}

// NewBadRequestError creates a 400 error for missing/invalid input or a failed upload.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, cause: ErrValidation}
}

// NewUnauthorizedError creates a 401 error for credential or token failures.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, cause: ErrUnauthorized}
}

// NewNotFoundError creates a 404 error for a missing user or channel.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, cause: ErrNotFound}
}

// NewConflictError creates a 409 error for duplicate email/username.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, cause: ErrDuplicate}
}

// NewInternalServerError creates a 500 error for unexpected persistence or
// token-generation failures.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}
