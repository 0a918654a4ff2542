// Package export renders activity logs and usage summaries as flat
// tabular rows. Every transform is pure; writing the result anywhere is
// the caller's business.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/screentrack/screentrack/internal/aggregate"
	"github.com/screentrack/screentrack/internal/session"
)

// LogRows renders an activity log as rows with a header line. Timestamps
// are RFC 3339 in UTC, which sorts lexically. An empty log produces just
// the header.
func LogRows(samples []session.Sample) [][]string {
	rows := make([][]string, 0, len(samples)+1)
	rows = append(rows, []string{"timestamp", "application"})
	for _, s := range samples {
		rows = append(rows, []string{
			s.Timestamp.UTC().Format(time.RFC3339),
			s.Application,
		})
	}
	return rows
}

// SummaryRows renders a usage summary as rows with a header line, in the
// summary's own order.
func SummaryRows(sum aggregate.Summary) [][]string {
	rows := make([][]string, 0, len(sum.Entries)+1)
	rows = append(rows, []string{
		"application", "total_duration_seconds", "sample_count", "first_seen", "last_seen",
	})
	for _, e := range sum.Entries {
		rows = append(rows, []string{
			e.Application,
			formatSeconds(e.TotalDuration),
			strconv.Itoa(e.SampleCount),
			e.FirstSeen.UTC().Format(time.RFC3339),
			e.LastSeen.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

// WriteCSV encodes rows as UTF-8 CSV on w.
func WriteCSV(w io.Writer, rows [][]string) error {
	return csv.NewWriter(w).WriteAll(rows)
}

// formatSeconds renders a duration as decimal seconds without trailing
// zeros. Rounding to the millisecond here is display-only; aggregation
// itself is exact.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Round(time.Millisecond).Seconds(), 'f', -1, 64)
}
