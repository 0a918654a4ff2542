package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screentrack/screentrack/pkg/window"
)

// scriptedProbe cycles through a fixed sequence of application names, or
// fails every lookup when err is set.
type scriptedProbe struct {
	mu    sync.Mutex
	apps  []string
	err   error
	calls int
}

func (p *scriptedProbe) ActiveWindow() (*window.Info, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	app := p.apps[(p.calls-1)%len(p.apps)]
	return &window.Info{AppName: app, DisplayServer: "x11"}, nil
}

func (p *scriptedProbe) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *scriptedProbe) IsAvailable() bool     { return true }
func (p *scriptedProbe) DisplayServer() string { return "x11" }
func (p *scriptedProbe) Close() error          { return nil }

func waitTerminal(t *testing.T, ctrl *Controller, timeout time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	require.NoError(t, ctrl.Wait(ctx))
}

func TestControllerCompletedRun(t *testing.T) {
	probe := &scriptedProbe{apps: []string{"firefox", "code"}}
	ctrl := NewController(probe, zerolog.Nop())

	assert.Equal(t, StateIdle, ctrl.State())
	assert.Equal(t, 0.0, ctrl.Progress())

	cfg := Config{Interval: 20 * time.Millisecond, Duration: 100 * time.Millisecond}
	require.NoError(t, ctrl.Start(context.Background(), cfg))
	assert.Equal(t, StateRunning, ctrl.State())

	waitTerminal(t, ctrl, 5*time.Second)

	assert.Equal(t, StateCompleted, ctrl.State())
	assert.Equal(t, 1.0, ctrl.Progress())
	assert.False(t, ctrl.FinishedAt().IsZero())

	samples := ctrl.Snapshot()
	require.NotEmpty(t, samples)
	// 5 scheduled ticks; a slow environment may skip some, never add more.
	assert.LessOrEqual(t, len(samples), 5)

	for i := 1; i < len(samples); i++ {
		assert.False(t, samples[i].Timestamp.Before(samples[i-1].Timestamp),
			"samples must be in non-decreasing timestamp order")
	}
}

func TestControllerInvalidConfigNeverEngagesProbe(t *testing.T) {
	probe := &scriptedProbe{apps: []string{"firefox"}}
	ctrl := NewController(probe, zerolog.Nop())

	err := ctrl.Start(context.Background(), Config{Interval: time.Hour, Duration: time.Minute})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	assert.Equal(t, StateIdle, ctrl.State())
	assert.Equal(t, 0, ctrl.Samples())
	assert.Equal(t, 0, probe.Calls(), "no probe call may happen on invalid config")
}

func TestControllerRejectsConcurrentStart(t *testing.T) {
	probe := &scriptedProbe{apps: []string{"firefox"}}
	ctrl := NewController(probe, zerolog.Nop())

	cfg := Config{Interval: 10 * time.Millisecond, Duration: time.Hour}
	require.NoError(t, ctrl.Start(context.Background(), cfg))

	err := ctrl.Start(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrSessionRunning)
	assert.Equal(t, StateRunning, ctrl.State(), "existing session must be unaffected")

	ctrl.Cancel()
	waitTerminal(t, ctrl, 5*time.Second)
}

func TestControllerCancelKeepsPartialLog(t *testing.T) {
	probe := &scriptedProbe{apps: []string{"firefox"}}
	ctrl := NewController(probe, zerolog.Nop())

	// Long run cancelled after three ticks.
	cfg := Config{Interval: 50 * time.Millisecond, Duration: time.Hour}
	require.NoError(t, ctrl.Start(context.Background(), cfg))

	require.Eventually(t, func() bool { return ctrl.Samples() >= 3 },
		5*time.Second, time.Millisecond)
	ctrl.Cancel()
	waitTerminal(t, ctrl, 5*time.Second)

	assert.Equal(t, StateCancelled, ctrl.State())
	// Another tick may land between the poll and Cancel, so the log holds
	// at least three samples, and none arrive after the terminal state.
	count := ctrl.Samples()
	assert.GreaterOrEqual(t, count, 3)
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, count, ctrl.Samples())
	assert.Less(t, ctrl.Progress(), 1.0)

	// Cancel after terminal state is a no-op.
	ctrl.Cancel()
	assert.Equal(t, StateCancelled, ctrl.State())
}

func TestControllerFailingProbeRecordsUnknown(t *testing.T) {
	probe := &scriptedProbe{err: fmt.Errorf("no window manager access")}
	ctrl := NewController(probe, zerolog.Nop())

	cfg := Config{Interval: 20 * time.Millisecond, Duration: 60 * time.Millisecond}
	require.NoError(t, ctrl.Start(context.Background(), cfg))
	waitTerminal(t, ctrl, 5*time.Second)

	assert.Equal(t, StateCompleted, ctrl.State(), "probe failures must not end the run")
	samples := ctrl.Snapshot()
	require.NotEmpty(t, samples)
	for _, s := range samples {
		assert.Equal(t, window.Unknown, s.Application)
	}
}

func TestControllerRestartGetsFreshLog(t *testing.T) {
	probe := &scriptedProbe{apps: []string{"firefox"}}
	ctrl := NewController(probe, zerolog.Nop())

	cfg := Config{Interval: 10 * time.Millisecond, Duration: 30 * time.Millisecond}
	require.NoError(t, ctrl.Start(context.Background(), cfg))
	waitTerminal(t, ctrl, 5*time.Second)

	firstID := ctrl.ID()
	firstFinished := ctrl.FinishedAt()
	require.Equal(t, StateCompleted, ctrl.State())

	require.NoError(t, ctrl.Start(context.Background(), cfg))
	assert.NotEqual(t, firstID, ctrl.ID())
	assert.True(t, ctrl.FinishedAt().IsZero(), "new run must reset the finish time")
	waitTerminal(t, ctrl, 5*time.Second)

	assert.True(t, ctrl.FinishedAt().After(firstFinished))
}

func TestControllerProgressObservableWhileRunning(t *testing.T) {
	probe := &scriptedProbe{apps: []string{"firefox"}}
	ctrl := NewController(probe, zerolog.Nop())

	cfg := Config{Interval: 10 * time.Millisecond, Duration: 200 * time.Millisecond}
	require.NoError(t, ctrl.Start(context.Background(), cfg))

	for ctrl.State() == StateRunning {
		p := ctrl.Progress()
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		assert.GreaterOrEqual(t, ctrl.Remaining(), time.Duration(0))
		time.Sleep(5 * time.Millisecond)
	}

	waitTerminal(t, ctrl, 5*time.Second)
	assert.Equal(t, 1.0, ctrl.Progress())
}
