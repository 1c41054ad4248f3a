package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/platform/tui"
	"github.com/vovakirdan/shapefall/internal/registry"
	"github.com/vovakirdan/shapefall/internal/storage"
)

// Registered game IDs for each mode.
const (
	classicID = "shapefall"
	endlessID = "shapefall_endless"
)

var playCmd = &cobra.Command{
	Use:   "play [classic|endless]",
	Short: "Play a puzzle",
	Long: `Start a puzzle in the given mode (classic when omitted).

Classic ends when no group is large enough to pop. Endless drops new
tiles into the emptied columns after every pop.

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Space/Enter/Click - Pop the group under the cursor
  P                 - Pause
  R                 - Restart
  Esc/B             - Leave
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - 3 colors, groups of 2 pop
  normal - values from the config file
  hard   - 5 colors, groups of 4 pop

Examples:
  shapefall play
  shapefall play endless
  shapefall play --difficulty hard --seed 42
  shapefall play --config ./my-board.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// resolveGameID maps a mode name or registered ID to a registered ID.
func resolveGameID(args []string) (string, error) {
	if len(args) == 0 {
		return classicID, nil
	}

	id := args[0]
	switch id {
	case "classic":
		id = classicID
	case "endless":
		id = endlessID
	}

	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown mode %q (run 'shapefall list' to see available modes)", args[0])
	}
	return id, nil
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := resolveGameID(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := sessionLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	if err := setupGames(logger); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
