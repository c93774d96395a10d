// Package errors defines the structured error taxonomy shared across the
// docparse dispatch, status, and inspection surfaces.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a referenced document was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeUnsupportedParser indicates the requested parser is not registered.
	ErrCodeUnsupportedParser ErrorCode = "unsupported_parser"
	// ErrCodeFeatureDisabled indicates the operation is administratively disabled.
	ErrCodeFeatureDisabled ErrorCode = "feature_disabled"
	// ErrCodeDispatch indicates the work queue could not accept a task.
	ErrCodeDispatch ErrorCode = "dispatch"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and
// optional cause. It supports error wrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// UnsupportedParser creates a new UnsupportedParser error.
func UnsupportedParser(message string) *AppError {
	return &AppError{Code: ErrCodeUnsupportedParser, Message: message}
}

// UnsupportedParserf creates a new UnsupportedParser error with formatted message.
func UnsupportedParserf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeUnsupportedParser, Message: fmt.Sprintf(format, args...)}
}

// FeatureDisabled creates a new FeatureDisabled error.
func FeatureDisabled(message string) *AppError {
	return &AppError{Code: ErrCodeFeatureDisabled, Message: message}
}

// Dispatch creates a new Dispatch error.
func Dispatch(message string) *AppError {
	return &AppError{Code: ErrCodeDispatch, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsUnsupportedParser checks if an error is an UnsupportedParser error.
func IsUnsupportedParser(err error) bool {
	return isCode(err, ErrCodeUnsupportedParser)
}

// IsFeatureDisabled checks if an error is a FeatureDisabled error.
func IsFeatureDisabled(err error) bool {
	return isCode(err, ErrCodeFeatureDisabled)
}

// IsDispatch checks if an error is a Dispatch error.
func IsDispatch(err error) bool {
	return isCode(err, ErrCodeDispatch)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
