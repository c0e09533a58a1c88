package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies operational errors surfaced to callers.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindConflict          ErrorKind = "conflict"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindForbidden         ErrorKind = "forbidden"
	KindValidation        ErrorKind = "validation"
	KindInternal          ErrorKind = "internal"
)

// AppError is an operational error with a stable kind and message. Store
// failures and other unexpected errors are wrapped as KindInternal so that
// storage-specific detail never reaches the caller.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying cause, logged but never serialized
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewNotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewConflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func NewInvalidTransition(msg string) *AppError {
	return &AppError{Kind: KindInvalidTransition, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{Kind: KindForbidden, Message: msg}
}

func NewValidation(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

// NewInternal wraps an unexpected error behind a generic caller-facing
// message.
func NewInternal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal error", Err: err}
}

// AsAppError extracts an *AppError from err, wrapping unknown errors as
// internal.
func AsAppError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return NewInternal(err)
}

// statusForKind maps error kinds to HTTP statuses.
func statusForKind(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidTransition:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Kind:    string(KindInternal),
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONAppError writes an operational error as a standardized JSON response.
// Internal errors are logged with their cause and reported generically.
func JSONAppError(c *gin.Context, err error) {
	ae := AsAppError(err)
	logger := GetLogger()
	if ae.Kind == KindInternal {
		logger.Error("internal error", zap.Error(ae.Err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Kind:    string(KindInternal),
			Message: "An unexpected error occurred. Please try again later.",
		})
		return
	}
	logger.Warn(ae.Message, zap.String("kind", string(ae.Kind)), zap.String("path", c.FullPath()))
	c.JSON(statusForKind(ae.Kind), ErrorResponse{Kind: string(ae.Kind), Message: ae.Message})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
