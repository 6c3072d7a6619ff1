package models

import (
	"errors"
	"fmt"
)

// AuthStatus describes directory permission state for the current caller.
type AuthStatus string

const (
	// AuthStatusNotDetermined indicates access has not been requested yet.
	AuthStatusNotDetermined AuthStatus = "not_determined"
	// AuthStatusRestricted indicates policy restrictions prevent access.
	AuthStatusRestricted AuthStatus = "restricted"
	// AuthStatusDenied indicates the caller denied access.
	AuthStatusDenied AuthStatus = "denied"
	// AuthStatusAuthorized indicates directory access is granted.
	AuthStatusAuthorized AuthStatus = "authorized"
)

// ErrorCode classifies directory and engine errors.
type ErrorCode string

const (
	// ErrorCodePermissionDenied indicates authorization is missing. This is
	// the only request-level code: it blocks a call before any item runs.
	ErrorCodePermissionDenied ErrorCode = "permission_denied"
	// ErrorCodeNotFound indicates a referenced contact/group does not exist.
	ErrorCodeNotFound ErrorCode = "not_found"
	// ErrorCodeConflict indicates a concurrent modification was detected.
	ErrorCodeConflict ErrorCode = "conflict"
	// ErrorCodeValidation indicates invalid input or a value the backend
	// rejects. Not retryable without changing the input.
	ErrorCodeValidation ErrorCode = "validation"
	// ErrorCodeStore indicates a backend failure unrelated to input. Retryable.
	ErrorCodeStore ErrorCode = "store"
	// ErrorCodeUnknown indicates an unmapped error.
	ErrorCodeUnknown ErrorCode = "unknown"
)

// Error is the typed error carried by item-level results and request-level
// failures.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message,omitempty"`
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	if e == nil {
		return "clover: <nil>"
	}
	if e.Message == "" {
		return fmt.Sprintf("clover: %s", e.Code)
	}
	return fmt.Sprintf("clover: %s: %s", e.Code, e.Message)
}

// NewError builds a typed error with a formatted message.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the ErrorCode from err, or ErrorCodeUnknown when err is not
// a typed Error. A nil err has no code and returns "".
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Code
	}
	return ErrorCodeUnknown
}

// AsTyped normalizes err into a typed Error, wrapping unclassified errors as
// ErrorCodeUnknown.
func AsTyped(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return &Error{Code: ErrorCodeUnknown, Message: err.Error()}
}
