// flappy is a Flappy Bird-style game for the terminal.
//
// Usage:
//
//	flappy play              - Play a game
//	flappy menu              - Start the title menu
//	flappy sim               - Run a headless scripted session
//	flappy scores            - Show the run history
//	flappy record            - Show or reset the high score
//	flappy serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: from config, 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set run history path (default: ~/.flappy/scores.db)
//	--record <path>  - Set high score file (default: ~/.flappy/data.json)
//	--config <path>  - Load game config from a YAML file
//	--log <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagRecordPath string
	flagConfig     string
	flagLogPath    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - flap through the pipes in your terminal",
	Long: `Flappy is a Flappy Bird-style game for the terminal.

Available commands:
  play     - Play a game directly
  menu     - Title menu with play and high scores
  sim      - Headless scripted session, for testing and replays
  scores   - View the run history
  record   - Show or reset the high score
  serve    - Start SSH server for remote play

Examples:
  flappy play
  flappy play --seed 42
  flappy sim --every 13 --render
  flappy serve --ssh :2222
  flappy record --reset`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagRecordPath, "record", "~/.flappy/data.json", "Path to high score file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadGameConfig loads the game config and applies --fps.
func loadGameConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Timing.TickRate = flagFPS
	}
	return cfg, cfg.Validate()
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig(tickRate int) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
		Seed:     seed,
	}
}

// newLogger returns the command logger. With --log it writes to that file;
// otherwise it writes to fallback, which may be io.Discard while a TUI owns
// the terminal. The returned closer must be called on exit.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closer := func() {}

	if flagLogPath != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// openRecord opens the high score file, creating it with 0 if missing.
func openRecord(logger *log.Logger) (*storage.Record, error) {
	record, err := storage.OpenRecord(flagRecordPath)
	if err != nil {
		return nil, err
	}
	if err := record.Seed(); err != nil {
		logger.Warn("could not create high score file", "err", err)
	}
	return record, nil
}

// openHistory opens the run log. The game works without it.
func openHistory(logger *log.Logger) *storage.History {
	history, err := storage.OpenHistory(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "err", err)
		return nil
	}
	return history
}

// currentUser names the local player in the run log.
func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
