package session

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Start when the session configuration
// fails validation. No sampling resource is engaged in that case.
var ErrInvalidConfig = errors.New("invalid session configuration")

// ErrSessionRunning is returned by Start while a session is already
// running. The existing session is unaffected.
var ErrSessionRunning = errors.New("session already running")

// Config bounds one monitoring run.
type Config struct {
	// Interval is the time between samples
	Interval time.Duration

	// Duration is the total length of the run
	Duration time.Duration
}

// Validate checks the config invariants: both values positive, and the
// interval no longer than the run itself (otherwise zero samples could
// ever be taken).
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidConfig, c.Interval)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidConfig, c.Duration)
	}
	if c.Interval > c.Duration {
		return fmt.Errorf("%w: interval %v exceeds duration %v", ErrInvalidConfig, c.Interval, c.Duration)
	}
	return nil
}
