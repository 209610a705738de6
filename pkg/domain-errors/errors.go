package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error coarsely enough for transport mapping
// without leaking infrastructure detail to callers.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal"
)

// DomainError carries a code and a caller-safe message. The message must never
// contain secrets or raw user passwords.
type DomainError struct {
	Code    Code
	Message string
}

func (e *DomainError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// New builds a DomainError with the given code and message.
func New(code Code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Wrap preserves the underlying error for logging while exposing only the
// coded message through Error().
func Wrap(code Code, message string, err error) *DomainError {
	if err == nil {
		return New(code, message)
	}
	return &DomainError{Code: code, Message: message + ": " + err.Error()}
}

// Is reports whether err is a DomainError with the given code.
func Is(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal so unknown
// failures never surface as client faults.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
