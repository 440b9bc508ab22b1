package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagRecordReset bool

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Show or reset the high score",
	Long: `Print the best score stored in the high score file.

The file is created with a best of 0 if it does not exist yet.

Examples:
  flappy record
  flappy record --reset
  flappy record --record ./data.json`,
	Args: cobra.NoArgs,
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().BoolVar(&flagRecordReset, "reset", false, "Reset the high score to 0")
}

func runRecord(_ *cobra.Command, _ []string) error {
	record, err := storage.OpenRecord(flagRecordPath)
	if err != nil {
		return err
	}

	if flagRecordReset {
		if err := record.Reset(); err != nil {
			return err
		}
		fmt.Printf("High score reset (%s)\n", record.Path())
		return nil
	}

	if err := record.Seed(); err != nil {
		return err
	}
	best, err := record.Read()
	if err != nil {
		return err
	}
	fmt.Printf("High score: %d (%s)\n", best, record.Path())
	return nil
}
