// shapefall is a terminal tile-matching puzzle: pop groups of same-colored
// tiles and watch the rest fall into the gaps.
//
// Usage:
//
//	shapefall list                  - List available modes
//	shapefall play [mode]           - Play classic (default) or endless
//	shapefall menu                  - Pick a mode interactively
//	shapefall serve                 - Start SSH server for remote play
//	shapefall scores [mode]         - Show high scores
//	shapefall config                - Print the effective configuration
//	shapefall sim                   - Simulate many games with a fixed policy
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.shapefall/scores.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shapefall/internal/config"
	"github.com/vovakirdan/shapefall/internal/games/shapefall"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shapefall",
	Short: "Shapefall - a falling-tiles puzzle for your terminal",
	Long: `Shapefall is a tile-matching puzzle played in the terminal.

Click or select a group of touching tiles of one color to pop it.
Tiles above fall into the gaps, and groups that meet merge.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the effective configuration
  sim      - Simulate many games to tune a configuration

Examples:
  shapefall play
  shapefall play endless --difficulty easy
  shapefall menu
  shapefall serve --ssh :2222
  shapefall scores shapefall`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.shapefall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the process logger at the level given by --log-level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "shapefall",
	}), nil
}

// sessionLogger returns a logger for full-screen sessions. Output goes to
// ~/.shapefall/shapefall.log so it does not tear the alt screen. The returned
// func closes the file.
func sessionLogger() (*log.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		logger, lerr := newLogger(io.Discard)
		return logger, func() {}, lerr
	}

	dir := filepath.Join(home, ".shapefall")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger, lerr := newLogger(io.Discard)
		return logger, func() {}, lerr
	}

	f, err := os.OpenFile(filepath.Join(dir, "shapefall.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger, lerr := newLogger(io.Discard)
		return logger, func() {}, lerr
	}

	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// loadConfig resolves the puzzle configuration from --config and
// --difficulty. A difficulty flag overrides the preset stored in the file.
func loadConfig() (config.ShapefallConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}

	return cfg, cfg.Validate()
}

// setupGames loads the configuration and hands it to the puzzle package
// before any game instance is created.
func setupGames(logger *log.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	shapefall.SetConfig(cfg)
	shapefall.SetLogger(logger)
	logger.Debug("config loaded",
		"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height),
		"kinds", cfg.Tiles.Kinds,
		"min_match", cfg.Rules.MinMatch,
		"preset", cfg.Difficulty.Preset,
	)
	return nil
}
