package errors

import (
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeFormat   ErrorType = "format"
	ErrorTypeIO       ErrorType = "io"
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeNotFound ErrorType = "notfound"
	ErrorTypeConfig   ErrorType = "config"
)

// MarkerError represents a structured error with context
type MarkerError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *MarkerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *MarkerError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *MarkerError) WithContext(key string, value interface{}) *MarkerError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewFormatError creates a new unsupported-format error
func NewFormatError(message string, cause error) *MarkerError {
	return &MarkerError{
		Type:    ErrorTypeFormat,
		Message: message,
		Cause:   cause,
	}
}

// NewIOError creates a new file I/O error
func NewIOError(message string, cause error) *MarkerError {
	return &MarkerError{
		Type:    ErrorTypeIO,
		Message: message,
		Cause:   cause,
	}
}

// NewParseError creates a new document-parsing error
func NewParseError(message string, cause error) *MarkerError {
	return &MarkerError{
		Type:    ErrorTypeParse,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError creates a new text-not-found error
func NewNotFoundError(message string, cause error) *MarkerError {
	return &MarkerError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a new configuration error
func NewConfigError(message string, cause error) *MarkerError {
	return &MarkerError{
		Type:    ErrorTypeConfig,
		Message: message,
		Cause:   cause,
	}
}

// IsType reports whether err is a MarkerError of the given category
func IsType(err error, t ErrorType) bool {
	me, ok := err.(*MarkerError)
	return ok && me.Type == t
}
