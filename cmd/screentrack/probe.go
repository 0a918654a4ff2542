package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/screentrack/screentrack/pkg/detector"
	"github.com/screentrack/screentrack/pkg/window"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Show the currently focused application",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := detector.New()
		if err != nil {
			return fmt.Errorf("failed to initialize window probe: %w", err)
		}
		defer p.Close()

		fmt.Printf("Display server: %s\n", p.DisplayServer())

		info, err := p.ActiveWindow()
		if err != nil || info == nil || info.AppName == "" {
			// Same degradation the sampler applies
			fmt.Printf("Focused application: %s\n", window.Unknown)
			if err != nil {
				fmt.Printf("  lookup failed: %v\n", err)
			}
			return nil
		}

		fmt.Printf("Focused application: %s\n", info.AppName)
		if info.WindowTitle != "" {
			fmt.Printf("Window title: %s\n", info.WindowTitle)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}
