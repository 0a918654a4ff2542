package aggregate

import (
	"sort"
	"time"

	"github.com/screentrack/screentrack/internal/session"
)

// Entry is the aggregated usage of one application.
type Entry struct {
	Application   string        `json:"application"`
	TotalDuration time.Duration `json:"total_duration"`
	SampleCount   int           `json:"sample_count"`
	FirstSeen     time.Time     `json:"first_seen"`
	LastSeen      time.Time     `json:"last_seen"`
}

// Summary is the per-application aggregation of one activity log, ordered
// by descending total duration (application name breaks ties).
type Summary struct {
	Entries  []Entry       `json:"entries"`
	Interval time.Duration `json:"interval"`
}

// TotalDuration returns the duration attributed across all applications
func (s Summary) TotalDuration() time.Duration {
	var total time.Duration
	for _, e := range s.Entries {
		total += e.TotalDuration
	}
	return total
}

// TotalSamples returns the sample count across all applications
func (s Summary) TotalSamples() int {
	var total int
	for _, e := range s.Entries {
		total += e.SampleCount
	}
	return total
}

// Attributions returns the duration attributed to each sample. Every
// sample is worth one nominal interval except the final one, which gets
// the lesser of the interval and the time between it and asOf. That clamp
// keeps the total honest for runs cancelled mid-interval; Unknown samples
// are attributed like any other so the total always covers the whole
// monitored span.
func Attributions(samples []session.Sample, interval time.Duration, asOf time.Time) []time.Duration {
	out := make([]time.Duration, len(samples))
	for i := range samples {
		out[i] = interval
	}
	if n := len(samples); n > 0 {
		if left := asOf.Sub(samples[n-1].Timestamp); left >= 0 && left < interval {
			out[n-1] = left
		}
	}
	return out
}

// Summarize computes per-application usage for one activity log. Durations
// are accumulated as time.Duration (integer nanoseconds), so repeated runs
// over the same log are exact and identical. An empty log yields an empty
// summary.
func Summarize(samples []session.Sample, interval time.Duration, asOf time.Time) Summary {
	sum := Summary{Interval: interval}
	if len(samples) == 0 {
		return sum
	}

	shares := Attributions(samples, interval, asOf)
	byApp := make(map[string]*Entry)

	for i, smp := range samples {
		e := byApp[smp.Application]
		if e == nil {
			e = &Entry{
				Application: smp.Application,
				FirstSeen:   smp.Timestamp,
				LastSeen:    smp.Timestamp,
			}
			byApp[smp.Application] = e
		}
		e.TotalDuration += shares[i]
		e.SampleCount++
		if smp.Timestamp.Before(e.FirstSeen) {
			e.FirstSeen = smp.Timestamp
		}
		if smp.Timestamp.After(e.LastSeen) {
			e.LastSeen = smp.Timestamp
		}
	}

	entries := make([]Entry, 0, len(byApp))
	for _, e := range byApp {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalDuration != entries[j].TotalDuration {
			return entries[i].TotalDuration > entries[j].TotalDuration
		}
		return entries[i].Application < entries[j].Application
	})

	sum.Entries = entries
	return sum
}
