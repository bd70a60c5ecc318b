package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an adapter failure.
type ErrorKind string

const (
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindValidation    ErrorKind = "validation"
	ErrorKindTransport     ErrorKind = "transport"
	ErrorKindTimeout       ErrorKind = "timeout"
	ErrorKindUpstream      ErrorKind = "upstream"
	ErrorKindEmptyResponse ErrorKind = "empty_response"
)

// Error is the single error type surfaced by provider adapters. Callers can
// branch on Kind without knowing which backend produced the failure.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code: %s)", e.Kind, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewConfigurationError creates an Error for invalid adapter construction,
// such as a missing credential.
func NewConfigurationError(message string) *Error {
	return &Error{Kind: ErrorKindConfiguration, Message: message}
}

// NewValidationError creates an Error for request parameters that failed a
// build-time check, including schema conversion failures.
func NewValidationError(message string) *Error {
	return &Error{Kind: ErrorKindValidation, Message: message}
}

// NewTransportError creates an Error for network failures and unparseable
// success responses.
func NewTransportError(message string) *Error {
	return &Error{Kind: ErrorKindTransport, Message: message}
}

// NewTimeoutError creates an Error for calls cancelled client-side before a
// response was obtained.
func NewTimeoutError(message string) *Error {
	return &Error{Kind: ErrorKindTimeout, Message: message}
}

// NewUpstreamError creates an Error for non-success backend statuses. Code
// carries the backend's own error code when it reported one.
func NewUpstreamError(code, message string) *Error {
	return &Error{Kind: ErrorKindUpstream, Code: code, Message: message}
}

// NewEmptyResponseError creates an Error for well-formed success responses
// that contain no extractable text.
func NewEmptyResponseError(message string) *Error {
	return &Error{Kind: ErrorKindEmptyResponse, Message: message}
}

// KindOf returns the kind of err when it is an adapter error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err is an adapter error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
