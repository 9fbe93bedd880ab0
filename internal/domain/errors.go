package domain

import "errors"

var (
	// ErrEventNotFound is returned when the referenced event does not exist
	ErrEventNotFound = errors.New("event not found")

	// ErrTokenStale is returned when the presented token is not the event's current token,
	// including when the event has no token set
	ErrTokenStale = errors.New("check-in token is stale")

	// ErrNotAuthenticated is returned when no usable identity can be derived from the caller
	ErrNotAuthenticated = errors.New("caller is not authenticated")

	// ErrStoreUnavailable wraps transient storage failures; callers may retry with backoff
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrMemberNotFound is returned when an operator names a member id that does not exist
	ErrMemberNotFound = errors.New("member not found")

	// ErrInvalidStatus is returned for attendance statuses outside the known set
	ErrInvalidStatus = errors.New("invalid attendance status")
)
