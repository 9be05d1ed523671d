// Package errors provides structured error handling for the curation pipeline.
// It defines error types with codes, messages, causes, and contextual information
// so failures can be logged with the same shape across layers.
package errors

import (
	"fmt"
	"log/slog"
)

// ErrorCode represents a categorized error type for structured error handling.
type ErrorCode string

const (
	ErrCodeFeedFetch   ErrorCode = "FEED_FETCH_ERROR"
	ErrCodeBackend     ErrorCode = "BACKEND_ERROR"
	ErrCodeQuota       ErrorCode = "QUOTA_ERROR"
	ErrCodeMalformed   ErrorCode = "MALFORMED_RESPONSE"
	ErrCodePersistence ErrorCode = "PERSISTENCE_ERROR"
	ErrCodePublish     ErrorCode = "PUBLISH_ERROR"
	ErrCodeValidation  ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnknown     ErrorCode = "UNKNOWN_ERROR"
)

// AppError represents a structured application error with code, message, cause, and context.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// FeedFetchError creates an AppError for a single source that could not be pulled.
func FeedFetchError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeFeedFetch,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// BackendError creates an AppError for a completion backend failure.
func BackendError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeBackend,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// QuotaError creates an AppError for a rate limited candidate.
func QuotaError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeQuota,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// PersistenceError creates an AppError for archive reads and writes.
func PersistenceError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodePersistence,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// PublishError creates an AppError for rendering or upload failures.
func PublishError(message string, cause error, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodePublish,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// ValidationError creates an AppError for configuration or input validation failures.
func ValidationError(message string, context map[string]interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Context: context,
	}
}

// LogError logs an AppError with structured logging and context
func LogError(logger *slog.Logger, err error, operation string) {
	if logger == nil || err == nil {
		return
	}

	if appErr, ok := err.(*AppError); ok {
		args := []interface{}{
			"operation", operation,
			"error_code", string(appErr.Code),
			"error_message", appErr.Message,
		}

		for key, value := range appErr.Context {
			args = append(args, key, value)
		}

		if appErr.Cause != nil {
			args = append(args, "cause", appErr.Cause.Error())
		}

		logger.Error("application error occurred", args...)
	} else {
		logger.Error("unknown error occurred",
			"operation", operation,
			"error", err.Error(),
		)
	}
}
