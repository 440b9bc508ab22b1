package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing right away.

Controls:
  Space/Up/W - Flap
  P/Esc      - Pause
  R/Space    - Restart (after game over)
  B          - Back (when paused or after game over)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Examples:
  flappy play
  flappy play --seed 42
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
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

	game, err := flappy.New(cfg, logger)
	if err != nil {
		return err
	}

	_, err = tui.Run(game, runtimeConfig(cfg.Timing.TickRate), tui.PlayOptions{
		Record:  record,
		History: history,
		Player:  currentUser(),
		Logger:  logger,
	})
	return err
}
