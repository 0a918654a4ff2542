package reporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screentrack/screentrack/internal/aggregate"
	"github.com/screentrack/screentrack/internal/models"
	"github.com/screentrack/screentrack/internal/session"
)

func TestPeriodRangeDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	period, err := periodRange("day", now)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), period.Start)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), period.End)
	assert.Equal(t, "day", period.Type)
}

func TestPeriodRangeWeekStartsMonday(t *testing.T) {
	// 2026-03-14 is a Saturday; the week started Monday the 9th.
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	period, err := periodRange("week", now)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), period.Start)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), period.End)
}

func TestPeriodRangeWeekOnSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday.
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	period, err := periodRange("week", now)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), period.Start)
}

func TestPeriodRangeMonth(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	period, err := periodRange("month", now)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), period.Start)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), period.End)
}

func TestPeriodRangeInvalid(t *testing.T) {
	_, err := periodRange("fortnight", time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid period type")
}

func TestFormatText(t *testing.T) {
	r := New(nil)
	report := &models.Report{
		Period: models.ReportPeriod{
			Start: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			Type:  "day",
		},
		Apps: []models.AppUsage{
			{Application: "firefox", TotalSeconds: 900, SampleCount: 180, Percentage: 75},
			{Application: "code", TotalSeconds: 300, SampleCount: 60, Percentage: 25},
		},
		TotalSeconds: 1200,
	}

	out := r.FormatText(report)

	assert.Contains(t, out, "Usage Report - day")
	assert.Contains(t, out, "Total Time: 20.0m")
	assert.Contains(t, out, "firefox")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "25.0%")
}

func TestFormatTextEmptyReport(t *testing.T) {
	r := New(nil)
	report := &models.Report{
		Period: models.ReportPeriod{Type: "week"},
	}

	out := r.FormatText(report)

	assert.Contains(t, out, "No activity recorded for this period.")
}

func TestFormatJSON(t *testing.T) {
	r := New(nil)
	report := &models.Report{
		Period: models.ReportPeriod{Type: "day"},
		Apps: []models.AppUsage{
			{Application: "firefox", TotalSeconds: 60, SampleCount: 12, Percentage: 100},
		},
		TotalSeconds: 60,
	}

	out, err := r.FormatJSON(report)

	require.NoError(t, err)
	assert.Contains(t, out, `"type": "day"`)
	assert.Contains(t, out, `"application": "firefox"`)
	assert.Contains(t, out, `"total_seconds": 60`)
}

func TestFormatSummaryText(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sum := aggregate.Summary{
		Interval: 5 * time.Second,
		Entries: []aggregate.Entry{
			{Application: "firefox", TotalDuration: 30 * time.Second, SampleCount: 6},
			{Application: "code", TotalDuration: 30 * time.Second, SampleCount: 6},
		},
	}

	out := FormatSummaryText(sum, session.StateCompleted, base, base.Add(time.Minute))

	assert.Contains(t, out, "Session completed")
	assert.Contains(t, out, "Samples: 12, Monitored: 60.0s")
	assert.Contains(t, out, "firefox")
	assert.Contains(t, out, "50.0%")
}

func TestFormatSummaryTextEmpty(t *testing.T) {
	now := time.Now()

	out := FormatSummaryText(aggregate.Summary{}, session.StateCancelled, now, now)

	assert.Contains(t, out, "Session cancelled")
	assert.Contains(t, out, "No activity recorded.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 30))
	assert.Equal(t, "exactly-ten", truncate("exactly-ten", 11))
	assert.Equal(t, "a-very-...", truncate("a-very-long-application-name", 10))
}
