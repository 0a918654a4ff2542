package reporter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/screentrack/screentrack/internal/aggregate"
	"github.com/screentrack/screentrack/internal/database"
	"github.com/screentrack/screentrack/internal/models"
	"github.com/screentrack/screentrack/internal/session"
)

// Reporter generates usage reports over the run archive
type Reporter struct {
	repo *database.Repository
}

// New creates a new reporter
func New(repo *database.Repository) *Reporter {
	return &Reporter{repo: repo}
}

// Generate builds a report for the specified period
func (r *Reporter) Generate(periodType string) (*models.Report, error) {
	period, err := periodRange(periodType, time.Now())
	if err != nil {
		return nil, err
	}

	// Raw sums come from the database; percentages are derived here
	usage, err := r.repo.AppUsageSince(period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to get app usage: %w", err)
	}

	var total float64
	for _, u := range usage {
		total += u.TotalSeconds
	}
	if total > 0 {
		for i := range usage {
			usage[i].Percentage = usage[i].TotalSeconds / total * 100.0
		}
	}

	return &models.Report{
		Period:       *period,
		Apps:         usage,
		TotalSeconds: total,
		GeneratedAt:  time.Now(),
	}, nil
}

// periodRange calculates the time range a report covers
func periodRange(periodType string, now time.Time) (*models.ReportPeriod, error) {
	var start, end time.Time

	switch periodType {
	case "day", "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = start.Add(24 * time.Hour)

	case "week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)

	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)

	default:
		return nil, fmt.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
	}

	return &models.ReportPeriod{
		Start: start,
		End:   end,
		Type:  periodType,
	}, nil
}

// FormatText formats the report as human-readable text
func (r *Reporter) FormatText(report *models.Report) string {
	output := fmt.Sprintf("Usage Report - %s\n", report.Period.Type)
	output += fmt.Sprintf("Period: %s to %s\n",
		report.Period.Start.Format("2006-01-02 15:04"),
		report.Period.End.Format("2006-01-02 15:04"))
	output += fmt.Sprintf("Total Time: %.1fm\n\n", report.TotalSeconds/60.0)

	if len(report.Apps) == 0 {
		output += "No activity recorded for this period.\n"
		return output
	}

	output += fmt.Sprintf("%-30s %10s %10s %10s\n", "Application", "Minutes", "Samples", "Percent")
	output += fmt.Sprintf("%s\n", "--------------------------------------------------------------------------------")

	for _, app := range report.Apps {
		output += fmt.Sprintf("%-30s %10.1f %10d %9.1f%%\n",
			truncate(app.Application, 30),
			app.TotalSeconds/60.0,
			app.SampleCount,
			app.Percentage)
	}

	return output
}

// FormatJSON formats the report as JSON
func (r *Reporter) FormatJSON(report *models.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// FormatSummaryText formats a single run's usage summary as a table
func FormatSummaryText(sum aggregate.Summary, state session.State, startedAt, finishedAt time.Time) string {
	output := fmt.Sprintf("Session %s\n", state)
	output += fmt.Sprintf("Period: %s to %s\n",
		startedAt.Format("2006-01-02 15:04:05"),
		finishedAt.Format("2006-01-02 15:04:05"))
	output += fmt.Sprintf("Samples: %d, Monitored: %.1fs\n\n",
		sum.TotalSamples(), sum.TotalDuration().Seconds())

	if len(sum.Entries) == 0 {
		output += "No activity recorded.\n"
		return output
	}

	total := sum.TotalDuration().Seconds()
	output += fmt.Sprintf("%-30s %10s %10s %10s\n", "Application", "Seconds", "Samples", "Percent")
	output += fmt.Sprintf("%s\n", "--------------------------------------------------------------------------------")

	for _, e := range sum.Entries {
		percent := 0.0
		if total > 0 {
			percent = e.TotalDuration.Seconds() / total * 100.0
		}
		output += fmt.Sprintf("%-30s %10.1f %10d %9.1f%%\n",
			truncate(e.Application, 30),
			e.TotalDuration.Seconds(),
			e.SampleCount,
			percent)
	}

	return output
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
