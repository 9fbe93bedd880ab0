package client

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/errors"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Code       apierrors.ErrorCode
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("HTTP %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// retryable reports whether the request may succeed if sent again
func (e *HTTPError) retryable() bool {
	switch e.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests:
		return true
	}
	return false
}

// domainError wraps an HTTP error with the matching domain sentinel so callers can use errors.Is
func domainError(e *HTTPError) error {
	var sentinel error
	switch {
	case e.Code == apierrors.ErrCodeTokenStale:
		sentinel = domain.ErrTokenStale
	case e.Code == apierrors.ErrCodeStoreUnavailable || e.StatusCode == http.StatusServiceUnavailable:
		sentinel = domain.ErrStoreUnavailable
	case e.StatusCode == http.StatusUnauthorized:
		sentinel = domain.ErrNotAuthenticated
	case e.StatusCode == http.StatusNotFound && e.Message == apierrors.MessageMemberNotFound:
		sentinel = domain.ErrMemberNotFound
	case e.StatusCode == http.StatusNotFound && e.Message == apierrors.MessageEventNotFound:
		sentinel = domain.ErrEventNotFound
	default:
		return e
	}
	return fmt.Errorf("%w: %w", sentinel, e)
}
