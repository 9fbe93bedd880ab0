// Package ratelimit throttles requests per caller with token buckets
package ratelimit

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/adapter"
)

const (
	DEFAULT_IDLE_TTL = 10 * time.Minute
)

// Config holds the bucket parameters shared by every key
type Config struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTTL drops buckets of keys not seen for this long
	IdleTTL time.Duration
}

// KeyedLimiter keeps one token bucket per key, e.g. per caller
type KeyedLimiter struct {
	config    Config
	clock     adapter.Clock
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter creates a limiter; Burst defaults to the per-second rate rounded up
func NewKeyedLimiter(cfg Config, clock adapter.Clock) (*KeyedLimiter, error) {
	if cfg.RequestsPerSecond <= 0 {
		return nil, errors.New("requests per second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = max(int(cfg.RequestsPerSecond+0.999), 1)
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DEFAULT_IDLE_TTL
	}

	return &KeyedLimiter{
		config:    cfg,
		clock:     clock,
		buckets:   make(map[string]*bucket),
		lastSweep: clock.Now(),
	}, nil
}

// Allow takes one token from the key's bucket and reports whether one was available
func (l *KeyedLimiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.evictIdle(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked keys
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// evictIdle runs at most once per IdleTTL; caller holds mu
func (l *KeyedLimiter) evictIdle(now time.Time) {
	if now.Sub(l.lastSweep) < l.config.IdleTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.config.IdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
