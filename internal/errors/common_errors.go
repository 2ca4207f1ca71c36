package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSourceNotFound ErrorType = "SOURCE_NOT_FOUND"
	ErrTypeParse          ErrorType = "PARSE"
	ErrTypeSchema         ErrorType = "SCHEMA"
	ErrTypePrecondition   ErrorType = "PRECONDITION"
	ErrTypeFormat         ErrorType = "FORMAT"
	ErrTypeConfig         ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for common error types

// NewSourceNotFoundError signals a missing input file.
func NewSourceNotFoundError(path string, cause error) *AppError {
	return NewAppError(ErrTypeSourceNotFound, fmt.Sprintf("input source not found: %s", path), cause)
}

// NewParseError signals malformed or undecodable input.
func NewParseError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParse, message, cause)
}

// NewSchemaError signals required columns absent after header mapping.
func NewSchemaError(message string) *AppError {
	return NewAppError(ErrTypeSchema, message, nil)
}

// NewPreconditionError signals an operation invoked without the output
// of its required prior stage.
func NewPreconditionError(message string) *AppError {
	return NewAppError(ErrTypePrecondition, message, nil)
}

// NewFormatError signals an unsupported export format identifier.
func NewFormatError(message string) *AppError {
	return NewAppError(ErrTypeFormat, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
