// Package contextutils provides error handling utilities and standardized error types
// for consistent error management across the eco atlas backend.
package contextutils

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a standardized error code for API responses
type ErrorCode string

// Store errors
const (
	ErrorCodeDatabaseConnection  ErrorCode = "DATABASE_CONNECTION_ERROR"
	ErrorCodeDatabaseQuery       ErrorCode = "DATABASE_QUERY_ERROR"
	ErrorCodeRecordNotFound      ErrorCode = "RECORD_NOT_FOUND"
	ErrorCodeForeignKeyViolation ErrorCode = "FOREIGN_KEY_VIOLATION"
)

// Request errors
const (
	ErrorCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrorCodeMissingRequired  ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrorCodeInvalidFormat    ErrorCode = "INVALID_FORMAT"
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrorCodeNothingToUpdate is a partial update whose body carried no fields.
	ErrorCodeNothingToUpdate ErrorCode = "NOTHING_TO_UPDATE"
)

// Routing and process errors
const (
	ErrorCodeRouteNotFound      ErrorCode = "ROUTE_NOT_FOUND"
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout            ErrorCode = "REQUEST_TIMEOUT"
	ErrorCodeInternalError      ErrorCode = "INTERNAL_SERVER_ERROR"
)

// clientCodes are the codes answered with a 4xx status.
var clientCodes = map[ErrorCode]bool{
	ErrorCodeInvalidInput:        true,
	ErrorCodeMissingRequired:     true,
	ErrorCodeInvalidFormat:       true,
	ErrorCodeValidationFailed:    true,
	ErrorCodeNothingToUpdate:     true,
	ErrorCodeRecordNotFound:      true,
	ErrorCodeForeignKeyViolation: true,
	ErrorCodeRouteNotFound:       true,
}

// SeverityLevel controls the log level an error is reported at.
type SeverityLevel string

// Severity levels
const (
	SeverityInfo  SeverityLevel = "info"
	SeverityWarn  SeverityLevel = "warn"
	SeverityError SeverityLevel = "error"
	SeverityFatal SeverityLevel = "fatal"
)

// AppError represents a structured error with code, severity, and context
type AppError struct {
	Code     ErrorCode
	Severity SeverityLevel
	Message  string
	Details  string
	Cause    error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError carrying the same code, so sentinels work with errors.Is.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

// UserMessage returns the text shown to API callers. Client errors carry their
// message and details; server errors hide the underlying cause.
func (e *AppError) UserMessage() string {
	if clientCodes[e.Code] && e.Details != "" && e.Code != ErrorCodeRecordNotFound {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func sentinel(code ErrorCode, severity SeverityLevel, message string) *AppError {
	return &AppError{Code: code, Severity: severity, Message: message}
}

// Sentinels compared by code through errors.Is / IsError.
var (
	ErrDatabaseConnection  = sentinel(ErrorCodeDatabaseConnection, SeverityError, "Database connection failed")
	ErrDatabaseQuery       = sentinel(ErrorCodeDatabaseQuery, SeverityError, "Database query failed")
	ErrRecordNotFound      = sentinel(ErrorCodeRecordNotFound, SeverityInfo, "Record not found")
	ErrForeignKeyViolation = sentinel(ErrorCodeForeignKeyViolation, SeverityInfo, "Referenced record not found")
	ErrMissingRequired     = sentinel(ErrorCodeMissingRequired, SeverityWarn, "Missing required field")
	ErrNothingToUpdate     = sentinel(ErrorCodeNothingToUpdate, SeverityWarn, "No fields to update")
	ErrRouteNotFound       = sentinel(ErrorCodeRouteNotFound, SeverityInfo, "Route not found")
	ErrServiceUnavailable  = sentinel(ErrorCodeServiceUnavailable, SeverityError, "Service unavailable")
	ErrInternalError       = sentinel(ErrorCodeInternalError, SeverityError, "Internal server error")
)

// NewAppError creates a new AppError with the specified code, severity, message and details
func NewAppError(code ErrorCode, severity SeverityLevel, message, details string) *AppError {
	return &AppError{Code: code, Severity: severity, Message: message, Details: details}
}

// NewAppErrorWithCause creates a new AppError with an underlying cause
func NewAppErrorWithCause(code ErrorCode, severity SeverityLevel, message, details string, cause error) *AppError {
	return &AppError{Code: code, Severity: severity, Message: message, Details: details, Cause: cause}
}

// NewValidationError returns a 400-class error carrying a user-facing message.
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorCodeValidationFailed, SeverityWarn, message, "")
}

// NewMissingFieldsError reports required fields absent from a request body.
func NewMissingFieldsError(fields ...string) *AppError {
	return NewAppError(ErrorCodeMissingRequired, SeverityWarn,
		"Missing required fields", strings.Join(fields, ", "))
}

// NewNotFoundError returns a RECORD_NOT_FOUND error naming the entity and id.
func NewNotFoundError(entity string, id int) *AppError {
	return NewAppError(ErrorCodeRecordNotFound, SeverityInfo,
		entity+" not found", fmt.Sprintf("%s with ID %d does not exist", strings.ToLower(entity), id))
}

// NewReferenceError reports that a record points at a missing entity, such as
// a solution naming an unknown problem.
func NewReferenceError(entity string, id int) *AppError {
	err := NewNotFoundError(entity, id)
	err.Code = ErrorCodeForeignKeyViolation
	return err
}

// wrap keeps the code and severity of an AppError found in err's chain and
// falls back to an internal error otherwise.
func wrap(err error, message string, cause error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{Code: appErr.Code, Severity: appErr.Severity, Message: message, Details: appErr.Error(), Cause: cause}
	}
	return &AppError{Code: ErrorCodeInternalError, Severity: SeverityError, Message: message, Details: err.Error(), Cause: cause}
}

// WrapError wraps an error with additional context, preserving AppError structure if possible
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return wrap(err, context, err)
}

// WrapErrorf wraps an error with formatted context. A %w verb in format is
// honoured, so the formatted message may embed a second error.
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if strings.Contains(format, "%w") {
		formatted := fmt.Errorf(format, args...)
		return wrap(err, formatted.Error(), formatted)
	}
	return wrap(err, fmt.Sprintf(format, args...), err)
}

// ErrorWithContextf creates a new internal error with a formatted message.
func ErrorWithContextf(format string, args ...interface{}) error {
	return sentinel(ErrorCodeInternalError, SeverityError, fmt.Sprintf(format, args...))
}

// AsError finds the first AppError in err's chain.
func AsError(err error, target **AppError) bool {
	return errors.As(err, target)
}

// IsError reports whether err's chain holds an AppError with target's code.
func IsError(err error, target *AppError) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == target.Code
}

// GetErrorCode returns the code of the first AppError in err's chain, or
// INTERNAL_SERVER_ERROR.
func GetErrorCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrorCodeInternalError
}

// GetErrorSeverity returns the severity of the first AppError in err's chain, or error.
func GetErrorSeverity(err error) SeverityLevel {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Severity
	}
	return SeverityError
}

// IsClientError reports whether the error maps to a 4xx response.
func IsClientError(err error) bool {
	return clientCodes[GetErrorCode(err)]
}
