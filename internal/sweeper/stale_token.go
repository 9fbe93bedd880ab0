package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/adapter"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store"
)

const (
	DEFAULT_SWEEP_INTERVAL = time.Minute
	DEFAULT_MAX_TOKEN_AGE  = 3 * time.Minute
	DEFAULT_BATCH_SIZE     = 100
)

// StaleTokenSweeperConfig holds configuration for the stale token sweeper
type StaleTokenSweeperConfig struct {
	Interval    time.Duration // Time to sleep between sweep cycles
	MaxTokenAge time.Duration // Tokens not rotated for this long are cleared
	BatchSize   int           // Events fetched per query
}

// StaleTokenSweeper clears tokens of events whose display stopped rotating.
// Clearing goes through compare-and-swap so a concurrent rotation always wins.
type StaleTokenSweeper struct {
	config    StaleTokenSweeperConfig
	tokens    store.TokenStore
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

var _ Sweeper = (*StaleTokenSweeper)(nil)

// NewStaleTokenSweeper creates a new stale token sweeper
func NewStaleTokenSweeper(config StaleTokenSweeperConfig, tokens store.TokenStore, clock adapter.Clock) *StaleTokenSweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_SWEEP_INTERVAL
	}
	if config.MaxTokenAge <= 0 {
		config.MaxTokenAge = DEFAULT_MAX_TOKEN_AGE
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DEFAULT_BATCH_SIZE
	}

	return &StaleTokenSweeper{
		config:    config,
		tokens:    tokens,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *StaleTokenSweeper) Name() string {
	return "stale-token-sweeper"
}

// Start runs sweep cycles every interval until the context is canceled or Stop is called
func (s *StaleTokenSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting stale token sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("max_token_age", s.config.MaxTokenAge),
		zap.Int("batch_size", s.config.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Stale token sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Stale token sweeper stop requested")
			return nil
		default:
			if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err)
			}
			s.sleep(ctx, s.config.Interval)
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *StaleTokenSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping stale token sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Stale token sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Stale token sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// RunOnce clears every token older than the maximum age and returns how many were cleared
func (s *StaleTokenSweeper) RunOnce(ctx context.Context) (int, error) {
	startTime := s.clock.Now()
	cutoff := startTime.Add(-s.config.MaxTokenAge).UTC()
	cleared := 0

	for {
		events, err := s.tokens.ListEventsWithTokensRotatedBefore(ctx, cutoff, s.config.BatchSize)
		if err != nil {
			return cleared, fmt.Errorf("failed to list stale tokens: %w", err)
		}

		for _, event := range events {
			ok, err := s.tokens.CompareAndSwapToken(ctx, event.ID, event.CurrentToken, nil, nil)
			if err != nil {
				return cleared, fmt.Errorf("failed to clear token of event %s: %w", event.ID, err)
			}
			if !ok {
				// Rotated between the list and the swap
				logger.DebugCtx(ctx, "Skipped token rotated during sweep", zap.String("eventID", event.ID))
				continue
			}
			cleared++
			logger.InfoCtx(ctx, "Cleared stale token",
				zap.String("eventID", event.ID),
				zap.Timep("rotated_at", event.TokenRotatedAt),
			)
		}

		// Cleared and concurrently rotated events both drop out of the next query
		if len(events) < s.config.BatchSize {
			break
		}
	}

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Int("cleared", cleared),
		zap.Duration("duration", s.clock.Since(startTime)),
	)
	return cleared, nil
}

// sleep waits for the duration, returning false when interrupted
func (s *StaleTokenSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
