package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/screentrack/screentrack/internal/sampler"
	"github.com/screentrack/screentrack/pkg/window"
)

// State is the lifecycle state of a session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Controller owns the lifecycle of monitoring runs. At most one run is
// Running at a time; Completed and Cancelled are terminal and a new Start
// always begins with a fresh log. Progress and log snapshots are readable
// from any goroutine without blocking the sampling loop.
type Controller struct {
	probe  window.Probe
	logger zerolog.Logger

	mu         sync.RWMutex
	state      State
	cfg        Config
	id         string
	startedAt  time.Time
	finishedAt time.Time
	log        *Log
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewController creates an idle controller around the given probe. The
// probe is called exclusively from the controller's sampling goroutine.
func NewController(probe window.Probe, logger zerolog.Logger) *Controller {
	return &Controller{
		probe:  probe,
		logger: logger,
		state:  StateIdle,
	}
}

// Start validates cfg and transitions Idle (or a terminal state) to
// Running with a fresh log, then launches the sampling loop. It returns
// ErrInvalidConfig before engaging any resource when validation fails and
// ErrSessionRunning while a run is in flight. Cancelling ctx cancels the
// run cooperatively.
func (c *Controller) Start(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.state == StateRunning {
		c.mu.Unlock()
		return ErrSessionRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.state = StateRunning
	c.cfg = cfg
	c.id = uuid.New().String()
	c.startedAt = time.Now()
	c.finishedAt = time.Time{}
	c.log = NewLog()
	c.cancel = cancel
	c.done = make(chan struct{})
	log := c.log
	done := c.done
	id := c.id
	c.mu.Unlock()

	c.logger.Info().
		Str("session_id", id).
		Dur("interval", cfg.Interval).
		Dur("duration", cfg.Duration).
		Msg("session started")

	smp := sampler.New(c.probe, cfg.Interval, cfg.Duration, c.logger)

	go func() {
		err := smp.Run(runCtx, func(at time.Time, application string) {
			log.Append(Sample{Timestamp: at, Application: application})
			c.logger.Debug().Str("application", application).Msg("sample recorded")
		})
		cancel()

		c.mu.Lock()
		if err != nil {
			c.state = StateCancelled
			c.finishedAt = time.Now()
		} else {
			// The run covers the whole configured duration even though
			// the sampler returns right after its last tick; ending at
			// the boundary keeps the final sample worth a full interval.
			c.state = StateCompleted
			c.finishedAt = c.startedAt.Add(c.cfg.Duration)
		}
		final := c.state
		count := log.Len()
		c.mu.Unlock()

		c.logger.Info().
			Stringer("state", final).
			Int("samples", count).
			Msg("session finished")
		close(done)
	}()

	return nil
}

// Cancel requests cooperative cancellation of the running session. The
// partial log is finalized, not discarded. Cancel is a no-op outside
// Running.
func (c *Controller) Cancel() {
	c.mu.RLock()
	cancel := c.cancel
	running := c.state == StateRunning
	c.mu.RUnlock()

	if running && cancel != nil {
		cancel()
	}
}

// Wait blocks until the current run reaches a terminal state or ctx is
// cancelled. It returns immediately when no run was ever started.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.RLock()
	done := c.done
	c.mu.RUnlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// ID returns the identifier of the current (or last) run
func (c *Controller) ID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.id
}

// Config returns the configuration of the current (or last) run
func (c *Controller) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// StartedAt returns when the current (or last) run began
func (c *Controller) StartedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startedAt
}

// FinishedAt returns when the last run reached a terminal state. It is
// the zero time while a run is still in flight.
func (c *Controller) FinishedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.finishedAt
}

// Elapsed returns how long the current run has been going, or the final
// run length once terminal.
func (c *Controller) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.elapsedLocked()
}

func (c *Controller) elapsedLocked() time.Duration {
	switch c.state {
	case StateIdle:
		return 0
	case StateCompleted, StateCancelled:
		return c.finishedAt.Sub(c.startedAt)
	default:
		return time.Since(c.startedAt)
	}
}

// Remaining returns how much of the configured duration is left
func (c *Controller) Remaining() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == StateIdle {
		return 0
	}
	left := c.cfg.Duration - c.elapsedLocked()
	if left < 0 {
		return 0
	}
	return left
}

// Progress returns the completed fraction of the run in [0,1]. It is
// pollable at any rate by a concurrent observer and never blocks the
// sampling loop. A completed run reports exactly 1.
func (c *Controller) Progress() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch c.state {
	case StateIdle:
		return 0
	case StateCompleted:
		return 1
	}

	p := float64(c.elapsedLocked()) / float64(c.cfg.Duration)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// Samples returns the number of samples recorded so far
func (c *Controller) Samples() int {
	c.mu.RLock()
	log := c.log
	c.mu.RUnlock()
	if log == nil {
		return 0
	}
	return log.Len()
}

// Snapshot returns a read-only copy of the activity log, safe to take
// while the run is still appending.
func (c *Controller) Snapshot() []Sample {
	c.mu.RLock()
	log := c.log
	c.mu.RUnlock()
	if log == nil {
		return nil
	}
	return log.Snapshot()
}
