package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/screentrack/screentrack/internal/database"
	"github.com/screentrack/screentrack/internal/reporter"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report [day|week|month]",
	Short: "Summarize archived usage for a period",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		periodType := "day"
		if len(args) > 0 {
			periodType = args[0]
		}

		db, err := database.Connect(cfg.Archive.Path)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer db.Close()

		if err := db.Initialize(); err != nil {
			return err
		}

		rep := reporter.New(database.NewRepository(db))
		report, err := rep.Generate(periodType)
		if err != nil {
			return err
		}

		if reportJSON {
			out, err := rep.FormatJSON(report)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		fmt.Println(rep.FormatText(report))
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Emit the report as JSON")
	rootCmd.AddCommand(reportCmd)
}
