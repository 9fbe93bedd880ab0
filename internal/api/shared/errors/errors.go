package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeTokenStale       ErrorCode = "token_stale"
	ErrCodeRateLimited      ErrorCode = "rate_limited"

	// Server errors (5xx)
	ErrCodeInternalError    ErrorCode = "internal_error"
	ErrCodeStoreUnavailable ErrorCode = "store_unavailable"
)

const (
	MessageTokenStale       = "This check-in code has expired. Scan the live QR code again."
	MessageEventNotFound    = "Event not found"
	MessageMemberNotFound   = "Member not found"
	MessageStoreUnavailable = "Check-in is temporarily unavailable. Please try again in a moment."
	MessageNotAuthenticated = "Sign in to check in"
	MessageRateLimited      = "Too many check-in attempts. Please wait a moment."
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

func newError(code ErrorCode, message string, details []string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewBadRequestError(message string, details ...string) *APIError {
	return newError(ErrCodeBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newError(ErrCodeNotFound, message, details)
}

func NewValidationError(details ...string) *APIError {
	return newError(ErrCodeValidationFailed, "Validation failed", details)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newError(ErrCodeUnauthorized, message, details)
}

func NewForbiddenError(message string, details ...string) *APIError {
	return newError(ErrCodeForbidden, message, details)
}

func NewTokenStaleError() *APIError {
	return newError(ErrCodeTokenStale, MessageTokenStale, nil)
}

func NewRateLimitedError() *APIError {
	return newError(ErrCodeRateLimited, MessageRateLimited, nil)
}

func NewStoreUnavailableError() *APIError {
	return newError(ErrCodeStoreUnavailable, MessageStoreUnavailable, nil)
}

func NewInternalError(message string, details ...string) *APIError {
	return newError(ErrCodeInternalError, message, details)
}

// FromDomain maps a domain error onto an HTTP status and API error.
// Unknown errors map to 500 without leaking their text.
func FromDomain(err error) (int, *APIError) {
	switch {
	case errors.Is(err, domain.ErrTokenStale):
		return http.StatusConflict, NewTokenStaleError()
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, NewNotFoundError(MessageEventNotFound)
	case errors.Is(err, domain.ErrMemberNotFound):
		return http.StatusNotFound, NewNotFoundError(MessageMemberNotFound)
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, NewUnauthorizedError(MessageNotAuthenticated)
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity, NewValidationError(err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, NewStoreUnavailableError()
	default:
		return http.StatusInternalServerError, NewInternalError("Internal server error")
	}
}
