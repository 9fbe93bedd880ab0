// Package rotation issues the per-event redemption token
package rotation

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/adapter"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store"
)

// TokenBytes is the amount of entropy in a token
const TokenBytes = 32

// DefaultInterval is the rotation period used when none is configured
const DefaultInterval = 60 * time.Second

// Rotation is the result of a committed rotation
type Rotation struct {
	EventID   string        `json:"event_id"`
	Token     string        `json:"token"`
	RotatedAt time.Time     `json:"rotated_at"`
	Interval  time.Duration `json:"interval"`
}

// Authority is the only writer of event tokens
type Authority struct {
	tokens   store.TokenStore
	clock    adapter.Clock
	interval time.Duration
	// random is the entropy source; crypto/rand outside tests
	random func([]byte) (int, error)
}

// NewAuthority creates a rotation authority
func NewAuthority(tokens store.TokenStore, clock adapter.Clock, interval time.Duration) *Authority {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Authority{
		tokens:   tokens,
		clock:    clock,
		interval: interval,
		random:   rand.Read,
	}
}

// Interval returns the configured rotation period
func (a *Authority) Interval() time.Duration {
	return a.interval
}

// Rotate generates a fresh token and stores it, replacing the previous one with no overlap.
// The token is returned only once the write has committed.
func (a *Authority) Rotate(ctx context.Context, eventID string) (*Rotation, error) {
	token, err := a.newToken()
	if err != nil {
		return nil, err
	}

	rotatedAt := a.clock.Now().UTC()
	ok, err := a.tokens.SetCurrentToken(ctx, eventID, token, rotatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventNotFound, eventID)
	}

	logger.DebugCtx(ctx, "Rotated event token", zap.String("eventID", eventID))

	return &Rotation{
		EventID:   eventID,
		Token:     token,
		RotatedAt: rotatedAt,
		Interval:  a.interval,
	}, nil
}

// CurrentToken returns the event's current token, nil before the first rotation
func (a *Authority) CurrentToken(ctx context.Context, eventID string) (*string, error) {
	event, err := a.tokens.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventNotFound, eventID)
	}
	return event.CurrentToken, nil
}

func (a *Authority) newToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := a.random(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
