package session

import (
	"sync"
	"time"
)

// Sample is one timestamped observation of the foreground application.
// Application is window.Unknown when the probe could not determine it.
type Sample struct {
	Timestamp   time.Time `json:"timestamp"`
	Application string    `json:"application"`
}

// Log is the ordered, append-only sequence of samples for one run. Only
// the run's sampling goroutine appends; any goroutine may take a Snapshot
// while the run is still producing. Appends are atomic from a reader's
// perspective and samples arrive in non-decreasing timestamp order.
type Log struct {
	mu      sync.Mutex
	samples []Sample
}

// NewLog returns an empty log
func NewLog() *Log {
	return &Log{}
}

// Append adds one sample to the end of the log
func (l *Log) Append(s Sample) {
	l.mu.Lock()
	l.samples = append(l.samples, s)
	l.mu.Unlock()
}

// Len returns the number of samples recorded so far
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.samples)
}

// Snapshot returns a copy of the samples recorded so far. The copy is
// safe to read while the run keeps appending.
func (l *Log) Snapshot() []Sample {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Sample, len(l.samples))
	copy(out, l.samples)
	return out
}
