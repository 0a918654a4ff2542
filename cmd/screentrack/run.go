package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/screentrack/screentrack/internal/aggregate"
	"github.com/screentrack/screentrack/internal/database"
	"github.com/screentrack/screentrack/internal/export"
	"github.com/screentrack/screentrack/internal/models"
	"github.com/screentrack/screentrack/internal/reporter"
	"github.com/screentrack/screentrack/internal/session"
	"github.com/screentrack/screentrack/pkg/detector"
)

var (
	runInterval  float64
	runDuration  float64
	runOutDir    string
	runNoArchive bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one bounded monitoring session",
	Long: `Run samples the focused application once per interval until the
configured duration elapses, then prints a usage summary and writes
activity_log.csv and usage_summary.csv to the output directory.

Interrupting with Ctrl-C cancels the session; the partial log is still
summarized, exported and archived.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("interval") {
			cfg.Session.IntervalSeconds = runInterval
		}
		if cmd.Flags().Changed("duration") {
			cfg.Session.DurationMinutes = runDuration
		}
		if runOutDir != "" {
			cfg.Export.OutputDir = runOutDir
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		probe, err := detector.New()
		if err != nil {
			return fmt.Errorf("failed to initialize window probe: %w", err)
		}
		defer probe.Close()

		log.Info().Str("display_server", probe.DisplayServer()).Msg("window probe initialized")

		sessCfg := session.Config{
			Interval: cfg.Interval(),
			Duration: cfg.Duration(),
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ctrl := session.NewController(probe, log.Logger)
		if err := ctrl.Start(ctx, sessCfg); err != nil {
			return err
		}

		fmt.Printf("Monitoring for %v, sampling every %v (Ctrl-C to stop early)\n",
			sessCfg.Duration, sessCfg.Interval)

		waitWithProgress(ctrl)
		stop()

		samples := ctrl.Snapshot()
		summary := aggregate.Summarize(samples, sessCfg.Interval, ctrl.FinishedAt())

		fmt.Println()
		fmt.Println(reporter.FormatSummaryText(summary, ctrl.State(), ctrl.StartedAt(), ctrl.FinishedAt()))

		if err := writeExports(cfg.Export.OutputDir, samples, summary); err != nil {
			return err
		}

		if cfg.Archive.Enabled && !runNoArchive {
			if err := archiveRun(ctrl, samples, summary); err != nil {
				// Archiving is best-effort; the run's data is already exported.
				log.Warn().Err(err).Msg("failed to archive run")
			}
		}

		return nil
	},
}

func init() {
	runCmd.Flags().Float64VarP(&runInterval, "interval", "i", 5, "Seconds between samples")
	runCmd.Flags().Float64VarP(&runDuration, "duration", "d", 5, "Total monitoring time in minutes")
	runCmd.Flags().StringVarP(&runOutDir, "out", "o", "", "Directory for CSV exports")
	runCmd.Flags().BoolVar(&runNoArchive, "no-archive", false, "Skip archiving this run")
	rootCmd.AddCommand(runCmd)
}

// waitWithProgress polls the controller once a second and redraws a
// progress line until the session reaches a terminal state.
func waitWithProgress(ctrl *session.Controller) {
	done := make(chan struct{})
	go func() {
		ctrl.Wait(context.Background())
		close(done)
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			fmt.Printf("\r%3.0f%%  elapsed %s  remaining %s  samples %d",
				ctrl.Progress()*100, formatClock(ctrl.Elapsed()), formatClock(ctrl.Remaining()), ctrl.Samples())
			return
		case <-ticker.C:
			fmt.Printf("\r%3.0f%%  elapsed %s  remaining %s  samples %d",
				ctrl.Progress()*100, formatClock(ctrl.Elapsed()), formatClock(ctrl.Remaining()), ctrl.Samples())
		}
	}
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func writeExports(dir string, samples []session.Sample, sum aggregate.Summary) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logPath := filepath.Join(dir, "activity_log.csv")
	if err := writeCSVFile(logPath, export.LogRows(samples)); err != nil {
		return err
	}

	summaryPath := filepath.Join(dir, "usage_summary.csv")
	if err := writeCSVFile(summaryPath, export.SummaryRows(sum)); err != nil {
		return err
	}

	fmt.Printf("Wrote %s and %s\n", logPath, summaryPath)
	return nil
}

func writeCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteCSV(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func archiveRun(ctrl *session.Controller, samples []session.Sample, sum aggregate.Summary) error {
	db, err := database.Connect(cfg.Archive.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return err
	}

	run := &models.RunRecord{
		ID:              ctrl.ID(),
		StartedAt:       ctrl.StartedAt(),
		FinishedAt:      ctrl.FinishedAt(),
		State:           ctrl.State().String(),
		IntervalSeconds: sum.Interval.Seconds(),
		DurationMinutes: ctrl.Config().Duration.Minutes(),
		SampleCount:     len(samples),
	}

	shares := aggregate.Attributions(samples, sum.Interval, ctrl.FinishedAt())
	records := make([]models.SampleRecord, 0, len(samples))
	for i, s := range samples {
		records = append(records, models.SampleRecord{
			Timestamp:       s.Timestamp,
			Application:     s.Application,
			DurationSeconds: shares[i].Seconds(),
		})
	}

	repo := database.NewRepository(db)
	if err := repo.SaveRun(run, records); err != nil {
		return err
	}

	log.Info().Str("run_id", run.ID).Int("samples", len(records)).Msg("run archived")
	return nil
}
