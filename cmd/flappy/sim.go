package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSimEvery     int
	flagSimMaxTicks  uint64
	flagSimRender    bool
	flagSimFrameW    int
	flagSimFrameH    int
	flagSimFrameStep int
	flagSimRealtime  bool
	flagSimAutoStart bool
	flagSimPersist   bool
	flagSimSessions  int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless scripted session",
	Long: `Run sessions without a terminal UI, flapping on a fixed schedule.

The same seed and schedule always produce the same run, which makes this
useful for checking config changes and replaying a score.

By default the result is not written to the high score file or the run
history; pass --persist to record it like a normal game.

Examples:
  flappy sim --seed 7 --every 13
  flappy sim --every 12 --render --frame-every 10
  flappy sim --auto-start --every 0          # never flap
  flappy sim --sessions 5 --persist`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimEvery, "every", 13, "Flap every N ticks (0 = never)")
	simCmd.Flags().Uint64Var(&flagSimMaxTicks, "max-ticks", 20000, "Stop a session after this many ticks (0 = no limit)")
	simCmd.Flags().BoolVar(&flagSimRender, "render", false, "Print rendered frames to stdout")
	simCmd.Flags().IntVar(&flagSimFrameW, "width", 60, "Rendered frame width")
	simCmd.Flags().IntVar(&flagSimFrameH, "height", 30, "Rendered frame height")
	simCmd.Flags().IntVar(&flagSimFrameStep, "frame-every", 1, "Print every Nth frame")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace ticks at the configured rate")
	simCmd.Flags().BoolVar(&flagSimAutoStart, "auto-start", false, "Start with gravity on instead of waiting for the first flap")
	simCmd.Flags().BoolVar(&flagSimPersist, "persist", false, "Commit results to the high score file and run history")
	simCmd.Flags().IntVar(&flagSimSessions, "sessions", 1, "Number of consecutive sessions")
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runner, err := flappy.NewRunner(cfg, seed)
	if err != nil {
		return err
	}
	runner.Logger = logger
	runner.AutoStart = flagSimAutoStart
	runner.MaxTicks = flagSimMaxTicks

	if flagSimRender {
		renderer := flappy.NewRenderer(cfg, runner.Sprites())
		runner.Presenter = flappy.NewScreenPresenter(renderer, os.Stdout, flagSimFrameW, flagSimFrameH, flagSimFrameStep)
	}
	if flagSimRealtime {
		pacer := flappy.NewFramePacer(cfg.Timing)
		defer pacer.Stop()
		runner.Pacer = pacer
	}

	var history *storage.History
	if flagSimPersist {
		record, err := openRecord(logger)
		if err != nil {
			return err
		}
		runner.Store = record
		if history = openHistory(logger); history != nil {
			defer history.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for n := range flagSimSessions {
		limit := int(flagSimMaxTicks)
		if limit == 0 {
			limit = 1 << 20
		}
		runner.Input = flappy.NewPeriodicInput(flagSimEvery, limit)

		res, err := runner.StartSession(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("session %d  seed %d  score %d  high %d  ticks %d  new_record %v  quit %v\n",
			n+1, seed+int64(n), res.FinalScore, res.HighScore, res.Ticks, res.NewRecord, res.Quit)

		if history != nil && !res.Quit {
			run := storage.Run{
				Player:    "sim",
				Score:     res.FinalScore,
				Ticks:     res.Ticks,
				Seed:      seed + int64(n),
				NewRecord: res.NewRecord,
			}
			if _, err := history.SaveRun(run); err != nil {
				logger.Error("could not log run", "err", err)
			}
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil
}
