package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start flappy with the title menu.

Use arrow keys or j/k to navigate, Enter to select.
Press B after a game is over to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	record, err := openRecord(logger)
	if err != nil {
		return err
	}
	history := openHistory(logger)
	if history != nil {
		defer history.Close()
	}

	rt := runtimeConfig(cfg.Timing.TickRate)

	for {
		menuResult, err := tui.RunMenu(record, rt)
		if err != nil {
			return err
		}

		// Update config with any size changes
		rt.ScreenW = menuResult.Config.ScreenW
		rt.ScreenH = menuResult.Config.ScreenH

		switch menuResult.Choice {
		case tui.MenuChoiceScores:
			goBack, err := tui.RunScoreboard(history, rt.ScreenW, rt.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if !goBack {
				return nil
			}

		case tui.MenuChoicePlay:
			game, err := flappy.New(cfg, logger)
			if err != nil {
				return err
			}
			backToMenu, err := tui.Run(game, rt, tui.PlayOptions{
				Record:  record,
				History: history,
				Player:  currentUser(),
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			if !backToMenu {
				return nil
			}
			// Update seed for each game unless it was pinned
			if flagSeed == 0 {
				rt.Seed = time.Now().UnixNano()
			}

		default:
			return nil
		}
	}
}
