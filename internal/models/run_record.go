package models

import (
	"time"
)

// RunRecord is one archived monitoring run.
type RunRecord struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	StartedAt       time.Time `gorm:"not null;index" json:"started_at"`
	FinishedAt      time.Time `gorm:"not null" json:"finished_at"`
	State           string    `gorm:"not null" json:"state"` // "completed" or "cancelled"
	IntervalSeconds float64   `gorm:"not null" json:"interval_seconds"`
	DurationMinutes float64   `gorm:"not null" json:"duration_minutes"`
	SampleCount     int       `gorm:"not null;default:0" json:"sample_count"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SampleRecord is one archived sample together with the duration the
// aggregator attributed to it.
type SampleRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RunID           string    `gorm:"not null;index" json:"run_id"`
	Timestamp       time.Time `gorm:"not null;index" json:"timestamp"`
	Application     string    `gorm:"not null;index" json:"application"`
	DurationSeconds float64   `gorm:"not null;default:0" json:"duration_seconds"`
}

// AppUsage is one row of an aggregated usage query over the archive.
type AppUsage struct {
	Application  string  `json:"application"`
	TotalSeconds float64 `json:"total_seconds"`
	SampleCount  int     `json:"sample_count"`
	Percentage   float64 `json:"percentage,omitempty"`
}

// ReportPeriod is the time range a report covers.
type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

// Report is a per-period usage report over archived runs.
type Report struct {
	Period       ReportPeriod `json:"period"`
	Apps         []AppUsage   `json:"apps"`
	TotalSeconds float64      `json:"total_seconds"`
	GeneratedAt  time.Time    `json:"generated_at"`
}
