// Package display keeps a rendered redemption address and countdown in step with token rotation
package display

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/adapter"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/redemption"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/rotation"
)

// DefaultTick is the countdown resolution
const DefaultTick = time.Second

// Rotator issues a new token for an event. Implemented by rotation.Authority and pkg/client.Client.
type Rotator interface {
	Rotate(ctx context.Context, eventID string) (*rotation.Rotation, error)
}

// Config holds display configuration
type Config struct {
	EventID string
	// BaseURL is the redemption address base, e.g. https://portal.example.org/checkin
	BaseURL  string
	Interval time.Duration
	Tick     time.Duration
	// OnChange receives every state update. It runs on a timer goroutine and must not call Deactivate.
	OnChange func(State)
}

// State is a snapshot of what the display shows
type State struct {
	EventID string
	// Address is the redemption address encoded in the QR code; empty until the first rotation succeeds
	Address string
	Token   string
	// Remaining is the countdown to the next rotation, never negative
	Remaining time.Duration
	// RenderedAt is the local time the current token was rendered
	RenderedAt time.Time
	// Err is the last rotation failure; cleared by the next success
	Err        error
	Active     bool
	Generation uint64
}

// Display drives one event's QR presentation. Each activation owns a rotation task and a countdown task.
type Display struct {
	rotator Rotator
	clock   adapter.Clock
	cfg     Config

	// lifecycle serializes Activate and Deactivate
	lifecycle sync.Mutex

	mu         sync.Mutex
	state      State
	generation uint64
	current    *Activation

	// renderedTick is the tick index of the rotation that produced the current token
	renderedTick int64

	timers atomic.Int32
}

// New creates a display; Interval defaults to rotation.DefaultInterval and Tick to DefaultTick
func New(rotator Rotator, clock adapter.Clock, cfg Config) (*Display, error) {
	if cfg.EventID == "" {
		return nil, errors.New("event id is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = rotation.DefaultInterval
	}
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Interval < cfg.Tick {
		return nil, errors.New("interval must be at least one tick")
	}
	if _, err := redemption.Build(cfg.BaseURL, redemption.Address{EventID: cfg.EventID, Token: "probe"}); err != nil {
		return nil, err
	}

	return &Display{
		rotator: rotator,
		clock:   clock,
		cfg:     cfg,
		state:   State{EventID: cfg.EventID},
	}, nil
}

// Activation is the handle of one active period; Deactivate cancels both of its tasks
type Activation struct {
	d      *Display
	gen    uint64
	anchor time.Time
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// Activate tears down any previous activation, then starts rotating immediately and arms both timers
func (d *Display) Activate(ctx context.Context) *Activation {
	d.lifecycle.Lock()
	defer d.lifecycle.Unlock()

	d.deactivateCurrent()

	actx, cancel := context.WithCancel(ctx)

	d.mu.Lock()
	d.generation++
	a := &Activation{d: d, gen: d.generation, anchor: d.clock.Now(), cancel: cancel}
	d.current = a
	d.state = State{EventID: d.cfg.EventID, Active: true, Generation: a.gen}
	d.renderedTick = 0
	d.mu.Unlock()

	// both tickers share the anchor so a rotation lands on a countdown tick
	rotationTicker := d.clock.NewTicker(d.cfg.Interval)
	countdownTicker := d.clock.NewTicker(d.cfg.Tick)

	a.wg.Add(2)
	d.timers.Add(2)
	go a.run(actx, rotationTicker, true, func(tick int64) { d.rotate(actx, a.gen, tick) })
	go a.run(actx, countdownTicker, false, func(tick int64) { d.countdown(a.gen, tick) })

	logger.InfoCtx(ctx, "Display activated",
		zap.String("eventID", d.cfg.EventID),
		zap.Uint64("generation", a.gen))

	return a
}

// Deactivate cancels the current activation, if any, and waits for its tasks to exit
func (d *Display) Deactivate() {
	d.lifecycle.Lock()
	defer d.lifecycle.Unlock()

	d.deactivateCurrent()
}

func (d *Display) deactivateCurrent() {
	d.mu.Lock()
	a := d.current
	d.current = nil
	d.mu.Unlock()

	if a != nil {
		a.stop()
	}
}

// Deactivate stops this activation. Safe to call more than once and after a newer activation started.
func (a *Activation) Deactivate() {
	a.d.lifecycle.Lock()
	defer a.d.lifecycle.Unlock()

	a.d.mu.Lock()
	if a.d.current == a {
		a.d.current = nil
	}
	a.d.mu.Unlock()

	a.stop()
}

// Done reports whether the activation has been torn down
func (a *Activation) Done() bool {
	a.d.mu.Lock()
	defer a.d.mu.Unlock()
	return a.d.current != a
}

func (a *Activation) stop() {
	a.once.Do(func() {
		a.cancel()
		a.wg.Wait()

		a.d.mu.Lock()
		if a.d.generation == a.gen {
			a.d.state.Active = false
		}
		a.d.mu.Unlock()

		logger.Info("Display deactivated",
			zap.String("eventID", a.d.cfg.EventID),
			zap.Uint64("generation", a.gen))
	})
}

// run fires fn with the tick index on every tick until ctx is cancelled; immediate runs fn(0) before the first tick
func (a *Activation) run(ctx context.Context, ticker adapter.Ticker, immediate bool, fn func(tick int64)) {
	defer a.wg.Done()
	defer a.d.timers.Add(-1)
	defer ticker.Stop()

	if immediate {
		fn(0)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C():
			if ctx.Err() != nil {
				return
			}
			fn(a.tickIndex(t))
		}
	}
}

// tickIndex counts countdown ticks between the activation and t, absorbing ticker jitter
func (a *Activation) tickIndex(t time.Time) int64 {
	return int64(math.Round(float64(t.Sub(a.anchor)) / float64(a.d.cfg.Tick)))
}

// State returns a snapshot of the display
func (d *Display) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// ActiveTimers reports how many periodic tasks are running
func (d *Display) ActiveTimers() int {
	return int(d.timers.Load())
}

func (d *Display) rotate(ctx context.Context, gen uint64, tick int64) {
	// the interval is over, whatever the rotator takes to answer
	d.update(gen, func(s *State) bool {
		if s.Remaining == 0 {
			return false
		}
		s.Remaining = 0
		return true
	})

	r, err := d.rotator.Rotate(ctx, d.cfg.EventID)
	if ctx.Err() != nil {
		return
	}

	var address string
	if err == nil {
		address, err = redemption.Build(d.cfg.BaseURL, redemption.Address{EventID: r.EventID, Token: r.Token})
	}

	d.update(gen, func(s *State) bool {
		if err != nil {
			// keep the last known-good payload
			s.Err = err
			return true
		}
		s.Address = address
		s.Token = r.Token
		s.RenderedAt = d.clock.Now()
		s.Remaining = d.cfg.Interval
		s.Err = nil
		d.renderedTick = tick
		return true
	})

	if err != nil {
		logger.WarnCtx(ctx, "Token rotation failed, keeping last payload",
			zap.String("eventID", d.cfg.EventID),
			zap.Error(err))
	}
}

// countdown is measured from the rotation tick of the current token, not from when the
// rotator answered, so it reaches zero on the next rotation tick
func (d *Display) countdown(gen uint64, tick int64) {
	d.update(gen, func(s *State) bool {
		if s.RenderedAt.IsZero() || tick <= d.renderedTick {
			return false
		}
		remaining := d.cfg.Interval - time.Duration(tick-d.renderedTick)*d.cfg.Tick
		if remaining < 0 {
			remaining = 0
		}
		if remaining == s.Remaining {
			return false
		}
		s.Remaining = remaining
		return true
	})
}

// update applies fn to the state of generation gen and notifies OnChange when fn reports a change;
// stale generations are ignored
func (d *Display) update(gen uint64, fn func(*State) bool) {
	d.mu.Lock()
	if gen != d.generation || !d.state.Active {
		d.mu.Unlock()
		return
	}
	if !fn(&d.state) {
		d.mu.Unlock()
		return
	}
	snapshot := d.state
	d.mu.Unlock()

	if d.cfg.OnChange != nil {
		d.cfg.OnChange(snapshot)
	}
}
