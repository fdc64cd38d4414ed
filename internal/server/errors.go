// internal/server/errors.go
package server

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeRateLimited  ErrorCode = "RATE_LIMITED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// APIError wraps errors with the status code the API answers with
type APIError struct {
	Code       ErrorCode
	Message    string
	Status     int
	Underlying error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *APIError) Is(target error) bool {
	if t, ok := target.(*APIError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// NewAPIError creates a new APIError
func NewAPIError(code ErrorCode, status int, message string, err error) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		Status:     status,
		Underlying: err,
	}
}

var (
	errNoDestination = NewAPIError(ErrCodeNotFound, http.StatusNotFound, "no destination URL can be computed from base and target", nil)
	errUnauthorized  = NewAPIError(ErrCodeUnauthorized, http.StatusUnauthorized, "missing or invalid bearer token", nil)
	errRateLimited   = NewAPIError(ErrCodeRateLimited, http.StatusTooManyRequests, "too many requests", nil)
)

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error struct {
		Code      ErrorCode `json:"code"`
		Message   string    `json:"message"`
		RequestID string    `json:"requestId,omitempty"`
	} `json:"error"`
}
