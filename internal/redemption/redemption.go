// Package redemption encodes the address a QR code points at
package redemption

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	paramEvent = "event"
	paramToken = "token"
)

// ErrInvalidAddress is returned when an address lacks the event or token parameter
var ErrInvalidAddress = errors.New("invalid redemption address")

// Address identifies an event and the token a scanner presents
type Address struct {
	EventID string
	Token   string
}

// Build appends the event and token query parameters to base, keeping any existing query
func Build(base string, addr Address) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	q := u.Query()
	q.Set(paramEvent, addr.EventID)
	q.Set(paramToken, addr.Token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Parse extracts the address from a scanned URL
func Parse(raw string) (Address, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Address{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return FromQuery(u.Query())
}

// FromQuery reads the address from already-parsed query values
func FromQuery(q url.Values) (Address, error) {
	addr := Address{
		EventID: strings.TrimSpace(q.Get(paramEvent)),
		Token:   strings.TrimSpace(q.Get(paramToken)),
	}
	if addr.EventID == "" || addr.Token == "" {
		return Address{}, fmt.Errorf("%w: event and token are required", ErrInvalidAddress)
	}
	return addr, nil
}
