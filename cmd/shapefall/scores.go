package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shapefall/internal/registry"
	"github.com/vovakirdan/shapefall/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresReset  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [classic|endless]",
	Short: "Show high scores",
	Long: `Display the best runs for a mode (classic when omitted).

A '*' after the largest clear marks a run that emptied the board.

Examples:
  shapefall scores
  shapefall scores endless --limit 25
  shapefall scores --recent           # latest runs instead of the best
  shapefall scores endless --reset    # forget every endless run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete every recorded run of the mode")
	scoresCmd.MarkFlagsMutuallyExclusive("recent", "reset")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := resolveGameID(args)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresReset {
		n, err := store.ClearScores(gameID)
		if err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Printf("Removed %d runs from %s.\n", n, game.Title())
		return nil
	}

	heading, list := "High Scores", store.TopRuns
	if flagScoresRecent {
		heading, list = "Recent Runs", store.RecentRuns
	}
	runs, err := list(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Printf("%s - %s\n", heading, game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'shapefall play %s' to set the first high score!\n", modeName(args))
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-5s  %s\n", "Rank", "Score", "Moves", "Tiles", "Best", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-5s  %s\n", "----", "-----", "-----", "-----", "----", "----")

	for i, run := range runs {
		best := fmt.Sprintf("%d", run.Stats.LargestClear)
		if run.Stats.BoardCleared {
			best += "*"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-6d  %-5s  %s\n",
			i+1, run.Score, run.Stats.Moves, run.Stats.TilesCleared, best,
			run.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.0f  Boards cleared: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BoardsCleared)
	}
	return nil
}

// modeName returns the mode name the user typed, defaulting to classic.
func modeName(args []string) string {
	if len(args) == 0 {
		return "classic"
	}
	return args[0]
}
