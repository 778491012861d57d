package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrBadBackend  ErrorCode = "BAD_BACKEND"

	// Shared storage errors
	ErrStorageLoad ErrorCode = "STORAGE_LOAD"

	// Execution errors
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"
	ErrMetadataFetch ErrorCode = "METADATA_FETCH"

	// Journal errors
	ErrJournal ErrorCode = "JOURNAL"
)

// PackopsError represents a structured error with code and details
type PackopsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PackopsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PackopsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PackopsError) Is(target error) bool {
	var targetErr *PackopsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PackopsError with the given code and message
func New(code ErrorCode, message string) *PackopsError {
	return &PackopsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PackopsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PackopsError {
	return &PackopsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PackopsError
func Wrap(err error, code ErrorCode, message string) *PackopsError {
	if err == nil {
		return nil
	}
	return &PackopsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PackopsError {
	if err == nil {
		return nil
	}
	return &PackopsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PackopsError) WithDetail(key string, value interface{}) *PackopsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PackopsError) WithDetails(details map[string]interface{}) *PackopsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode reports whether any PackopsError in err's chain carries code.
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var pkErr *PackopsError
		if !errors.As(err, &pkErr) {
			return false
		}
		if pkErr.Code == code {
			return true
		}
		err = pkErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PackopsError
func GetErrorCode(err error) ErrorCode {
	var pkErr *PackopsError
	if errors.As(err, &pkErr) {
		return pkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PackopsError
func GetErrorDetails(err error) map[string]interface{} {
	var pkErr *PackopsError
	if errors.As(err, &pkErr) {
		return pkErr.Details
	}
	return nil
}
