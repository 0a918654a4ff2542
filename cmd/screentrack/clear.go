package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/screentrack/screentrack/internal/database"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all archived runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print("This will delete all archived runs. Are you sure? (yes/no): ")
		var response string
		fmt.Scanln(&response)

		if response != "yes" && response != "y" {
			fmt.Println("Operation cancelled")
			return nil
		}

		db, err := database.Connect(cfg.Archive.Path)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer db.Close()

		if err := db.Initialize(); err != nil {
			return err
		}

		if err := database.NewRepository(db).Clear(); err != nil {
			return err
		}

		fmt.Println("Archive cleared successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
