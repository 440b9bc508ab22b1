package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresPlayer string
	flagScoresStats  bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best logged runs, the most recent ones, or aggregate stats.

Examples:
  flappy scores
  flappy scores --recent --limit 20
  flappy scores --player alice
  flappy scores --stats`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the newest runs instead of the best")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show every run of one player")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show aggregate statistics")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the whole run history")
}

func runScores(_ *cobra.Command, _ []string) error {
	history, err := storage.OpenHistory(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer history.Close()

	if flagScoresClear {
		if err := history.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if flagScoresStats {
		stats, err := history.Stats()
		if err != nil {
			return err
		}
		printStats(stats)
		return nil
	}

	var (
		title string
		runs  []storage.Run
	)
	switch {
	case flagScoresPlayer != "":
		title = "Runs - " + flagScoresPlayer
		runs, err = history.PlayerRuns(flagScoresPlayer)
	case flagScoresRecent:
		title = "Recent Runs"
		runs, err = history.RecentRuns(flagScoresLimit)
	default:
		title = "High Scores"
		runs, err = history.TopRuns(flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return nil
	}

	printRuns(os.Stdout, runs)

	best, err := history.BestScore()
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printRuns(w io.Writer, runs []storage.Run) {
	fmt.Fprintf(w, "  %-4s  %-12s  %-6s  %-7s  %s\n", "Rank", "Player", "Score", "Ticks", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-6s  %-7s  %s\n", "----", "------", "-----", "-----", "----")

	for i, r := range runs {
		mark := ""
		if r.NewRecord {
			mark = "  *"
		}
		fmt.Fprintf(w, "  %-4d  %-12s  %-6d  %-7d  %s%s\n",
			i+1, r.Player, r.Score, r.Ticks, r.CreatedAt.Local().Format("2006-01-02 15:04"), mark)
	}
}

func printStats(s *storage.Stats) {
	fmt.Println("Run Statistics")
	fmt.Println()
	fmt.Printf("  Runs:         %d\n", s.Runs)
	fmt.Printf("  Best score:   %d\n", s.BestScore)
	fmt.Printf("  Average:      %.2f\n", s.AvgScore)
	fmt.Printf("  Total points: %d\n", s.TotalScore)
	fmt.Printf("  New records:  %d\n", s.Records)
	if !s.LastPlayed.IsZero() {
		fmt.Printf("  Last played:  %s\n", s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}
