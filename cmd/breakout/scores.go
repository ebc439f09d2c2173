package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded runs and the high score",
	Long: `Display the best recorded runs and the stored high score.

Examples:
  breakout scores
  breakout scores --limit 25
  breakout scores --tui
  breakout scores --redis redis://localhost:6379/0
  breakout scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs and the high score")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := openBackend()
	if err != nil {
		fatal("opening scores storage", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearScores(breakout.GameID); err != nil {
			store.Close()
			fatal("clearing scores", err)
		}
		fmt.Println("Scores cleared.")

	case flagScoresTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, breakout.GameID, "Breakout", width, height); err != nil {
			store.Close()
			fatal("running scoreboard", err)
		}

	default:
		if err := printScores(store); err != nil {
			store.Close()
			fatal("retrieving scores", err)
		}
	}
}

func printScores(store storage.Backend) error {
	scores, err := store.TopScores(breakout.GameID, flagScoresLimit)
	if err != nil {
		return err
	}
	stats, err := store.Stats(breakout.GameID)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - Breakout")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-9s  %s\n", "Rank", "Score", "Result", "Date")
	fmt.Printf("  %-4s  %-6s  %-9s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		result := "lost"
		if entry.Outcome == storage.OutcomeWin {
			result = "cleared"
		}
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-9s  %s\n", i+1, entry.Score, result, dateStr)
	}

	fmt.Println()
	fmt.Printf("Best: %d   Runs: %d   Cleared: %d   Average: %.1f\n",
		stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	return nil
}
