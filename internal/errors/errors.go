// Package errors defines the service error type shared by the storage,
// service and HTTP layers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of service error.
type ErrorCode string

const (
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeInvalidInput      ErrorCode = "INVALID_INPUT"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	CodeInvalidToken      ErrorCode = "INVALID_TOKEN"
	CodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeInternal          ErrorCode = "INTERNAL_ERROR"
)

// ErrNotFound is matched by every not-found ServiceError through errors.Is.
var ErrNotFound = stderrors.New("not found")

// ServiceError carries an HTTP status alongside the error message.
type ServiceError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is reports not-found errors as ErrNotFound.
func (e *ServiceError) Is(target error) bool {
	return target == ErrNotFound && e.Code == CodeNotFound
}

// WithDetails attaches a detail entry and returns the receiver.
func (e *ServiceError) WithDetails(key string, value any) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func newError(code ErrorCode, status int, msg string, err error) *ServiceError {
	return &ServiceError{Code: code, Message: msg, HTTPStatus: status, Err: err}
}

// NotFound reports a missing resource of the given kind.
func NotFound(resource, id string) *ServiceError {
	return newError(CodeNotFound, http.StatusNotFound, fmt.Sprintf("%s %s not found", resource, id), nil).
		WithDetails("resource", resource)
}

// InvalidInput reports a validation failure on a single field.
func InvalidInput(field, reason string) *ServiceError {
	return newError(CodeInvalidInput, http.StatusBadRequest, fmt.Sprintf("%s: %s", field, reason), nil).
		WithDetails("field", field)
}

// Conflict reports a duplicate resource.
func Conflict(msg string) *ServiceError {
	return newError(CodeConflict, http.StatusConflict, msg, nil)
}

// Unauthorized reports missing credentials.
func Unauthorized(msg string) *ServiceError {
	if msg == "" {
		msg = "unauthorized"
	}
	return newError(CodeUnauthorized, http.StatusUnauthorized, msg, nil)
}

// InvalidToken reports a bearer token that failed validation.
func InvalidToken(err error) *ServiceError {
	return newError(CodeInvalidToken, http.StatusUnauthorized, "invalid token", err)
}

// RateLimitExceeded reports a client over its request budget.
func RateLimitExceeded(limit int, window string) *ServiceError {
	return newError(CodeRateLimitExceeded, http.StatusTooManyRequests,
		fmt.Sprintf("rate limit of %d requests per %s exceeded", limit, window), nil)
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) *ServiceError {
	return newError(CodeInternal, http.StatusInternalServerError, msg, err)
}

// GetServiceError returns the first ServiceError in err's chain, or nil.
func GetServiceError(err error) *ServiceError {
	var serviceErr *ServiceError
	if stderrors.As(err, &serviceErr) {
		return serviceErr
	}
	return nil
}

// HTTPStatus maps err to a response status, defaulting to 500.
func HTTPStatus(err error) int {
	if serviceErr := GetServiceError(err); serviceErr != nil {
		return serviceErr.HTTPStatus
	}
	if stderrors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err denotes a missing resource.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}
