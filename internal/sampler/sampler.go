package sampler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/screentrack/screentrack/pkg/window"
)

// Sampler drives the timed probe loop for one run.
type Sampler struct {
	probe    window.Probe
	interval time.Duration
	duration time.Duration
	logger   zerolog.Logger
}

// New creates a sampler for one run. The probe is called exclusively from
// Run's goroutine.
func New(probe window.Probe, interval, duration time.Duration, logger zerolog.Logger) *Sampler {
	return &Sampler{
		probe:    probe,
		interval: interval,
		duration: duration,
		logger:   logger,
	}
}

// Run executes the loop until the configured duration elapses or ctx is
// cancelled. Tick n is scheduled at start + n*interval, so probe latency
// does not accumulate drift; the first sample is taken immediately. Each
// tick delivers exactly one observation through deliver. Cancellation is
// checked at tick boundaries only.
//
// Run returns nil when the duration elapsed and ctx.Err() when cancelled.
func (s *Sampler) Run(ctx context.Context, deliver func(at time.Time, application string)) error {
	start := time.Now()
	s.logger.Debug().
		Dur("interval", s.interval).
		Dur("duration", s.duration).
		Msg("sampler loop starting")

	for n := 0; ; n++ {
		target := start.Add(time.Duration(n) * s.interval)
		if target.Sub(start) >= s.duration {
			s.logger.Debug().Int("ticks", n).Msg("sampler duration elapsed")
			return nil
		}

		if wait := time.Until(target); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		app := s.observe()
		deliver(time.Now(), app)

		// If the probe overran the schedule, skip ahead to the next
		// future tick instead of bursting to catch up.
		if behind := time.Since(target); behind > s.interval {
			n += int(behind / s.interval)
		}
	}
}

// observe performs one probe call, degrading any failure or empty lookup
// to the Unknown sentinel. A single failed observation never terminates
// monitoring.
func (s *Sampler) observe() string {
	info, err := s.probe.ActiveWindow()
	if err != nil {
		s.logger.Debug().Err(err).Msg("probe failed, recording unknown")
		return window.Unknown
	}
	if info == nil || info.AppName == "" {
		return window.Unknown
	}
	return info.AppName
}
