package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/keinplan-arcade/internal/platform/tui"
)

var clearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the score history",
	Long: `Without arguments, open the interactive scoreboard.
With a game, print its top 10 runs and totals.

Examples:
  arcade scores
  arcade scores space-shooter
  arcade scores block-puzzle --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&clearScores, "clear", false, "delete the history of the given game")
}

func runScores(cmd *cobra.Command, args []string) error {
	if clearScores && len(args) == 0 {
		return fmt.Errorf("--clear needs a game")
	}

	a, err := newApp(cmd, len(args) == 0)
	if err != nil {
		return err
	}
	defer a.close()

	if len(args) == 1 {
		if err := a.checkGame(args[0]); err != nil {
			return err
		}
	}

	store := a.openStore()
	if store == nil {
		return fmt.Errorf("cannot open scores database %s", a.settings.DBPath)
	}
	defer store.Close()

	if len(args) == 0 {
		rt := a.runtime()
		return tui.RunScoreboard(store, a.registry, rt.ScreenW, rt.ScreenH)
	}

	kind := args[0]
	out := cmd.OutOrStdout()

	if clearScores {
		if err := store.ClearScores(kind); err != nil {
			return err
		}
		a.logger.Info("scores cleared", "game", kind)
		fmt.Fprintf(out, "Cleared the history of %s.\n", a.registry.Title(kind))
		return nil
	}

	scores, err := store.TopScores(kind, 10)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", a.registry.Title(kind))
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintf(out, "\nPlay 'arcade play %s' to set the first high score!\n", kind)
		return nil
	}

	row := "  %-4v  %-10v  %-5v  %-6v  %v\n"
	fmt.Fprintf(out, row, "Rank", "Score", "Level", "Time", "Date")
	for i, e := range scores {
		fmt.Fprintf(out, row, i+1, e.Score, e.Level,
			e.Duration.Round(time.Second), e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	sum, err := store.Summary(kind)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d runs, average %.0f, best level %d, %s played\n",
		sum.Runs, sum.AvgScore, sum.BestLevel, sum.TotalTime.Round(time.Second))
	if !sum.LastPlayed.IsZero() {
		fmt.Fprintf(out, "Last played %s\n", sum.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	best, err := store.HighScore(kind)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Best in %s: %d\n", kind, best)
	if stats, found, err := store.LoadStats(); err == nil && found {
		fmt.Fprintf(out, "Best overall: %d\n", stats.BestScore)
	}
	return nil
}
