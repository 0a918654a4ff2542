package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Session holds the default sampling bounds
	Session SessionConfig `mapstructure:"session"`

	// Archive configures the local run archive
	Archive ArchiveConfig `mapstructure:"archive"`

	// Export configures where CSV exports land
	Export ExportConfig `mapstructure:"export"`

	// Logging configures log output
	Logging LoggingConfig `mapstructure:"logging"`
}

// SessionConfig holds the sampling interval and run duration, in the
// units the user supplies them (seconds and minutes).
type SessionConfig struct {
	IntervalSeconds float64 `mapstructure:"interval_seconds"`
	DurationMinutes float64 `mapstructure:"duration_minutes"`
}

// ArchiveConfig holds run archive settings
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty means the default under ~/.config/screentrack
}

// ExportConfig holds export output settings
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			IntervalSeconds: 5,
			DurationMinutes: 5,
		},
		Archive: ArchiveConfig{
			Enabled: true,
		},
		Export: ExportConfig{
			OutputDir: ".",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks if the configuration is valid. The session invariant
// (interval no longer than the whole run) is rejected here, before any
// sampling resource is engaged.
func (c *Config) Validate() error {
	if c.Session.IntervalSeconds <= 0 {
		return fmt.Errorf("interval must be positive, got %gs", c.Session.IntervalSeconds)
	}
	if c.Session.DurationMinutes <= 0 {
		return fmt.Errorf("duration must be positive, got %gm", c.Session.DurationMinutes)
	}
	if c.Session.IntervalSeconds > c.Session.DurationMinutes*60 {
		return fmt.Errorf("interval (%gs) cannot exceed total duration (%gm)",
			c.Session.IntervalSeconds, c.Session.DurationMinutes)
	}
	if c.Export.OutputDir == "" {
		return fmt.Errorf("export output directory cannot be empty")
	}
	return nil
}

// Interval returns the sampling interval as a duration
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Session.IntervalSeconds * float64(time.Second))
}

// Duration returns the run duration as a duration
func (c *Config) Duration() time.Duration {
	return time.Duration(c.Session.DurationMinutes * float64(time.Minute))
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Session:
    Interval: %v
    Duration: %v
  Archive:
    Enabled: %v
    Path: %s
  Export:
    Output Dir: %s
  Logging:
    Level: %s
    Format: %s`,
		c.Interval(),
		c.Duration(),
		c.Archive.Enabled,
		c.Archive.Path,
		c.Export.OutputDir,
		c.Logging.Level,
		c.Logging.Format,
	)
}
