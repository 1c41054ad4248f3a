package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shapefall/internal/sim"
)

var (
	flagSimGames    int
	flagSimWorkers  int
	flagSimPolicy   string
	flagSimEndless  bool
	flagSimMaxMoves int
	flagSimQuiet    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate many games to tune a configuration",
	Long: `Play a batch of seeded games with a fixed policy and print score
statistics. Use it to compare board sizes, palettes and difficulty presets.

Policies:
  greedy - always pop the largest group
  lowest - pop the group reaching the lowest cell
  random - pop any group at random

Examples:
  shapefall sim
  shapefall sim --games 5000 --policy random
  shapefall sim --difficulty hard --seed 1
  shapefall sim --endless --max-moves 200`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 1000, "Number of games to simulate")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Concurrent simulated players")
	simCmd.Flags().StringVar(&flagSimPolicy, "policy", string(sim.PolicyGreedy), "Selection policy: greedy, lowest, random")
	simCmd.Flags().BoolVar(&flagSimEndless, "endless", false, "Refill the board after every pop")
	simCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", 0, "Move cap per game (0 = 500)")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Hide the progress bar")
}

func runSim(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	policy, err := sim.ParsePolicy(flagSimPolicy)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := sim.Run(ctx, cfg, sim.Options{
		Games:    flagSimGames,
		Workers:  flagSimWorkers,
		Seed:     seed,
		Policy:   policy,
		Endless:  flagSimEndless,
		MaxMoves: flagSimMaxMoves,
		Progress: !flagSimQuiet,
		Output:   os.Stderr,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation interrupted")
		}
		return err
	}

	fmt.Printf("Board %dx%d, %d colors, groups of %d pop, seeds %d..%d\n",
		cfg.Board.Width, cfg.Board.Height, cfg.Tiles.Kinds, cfg.Rules.MinMatch,
		seed, seed+int64(flagSimGames)-1)
	fmt.Print(report.Table())
	return nil
}
