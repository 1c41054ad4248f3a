// Package config provides YAML-based configuration loading and difficulty
// presets for Shapefall.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/engine"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid")

// ShapefallConfig contains all configuration for the puzzle.
type ShapefallConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Tiles      TilesConfig      `yaml:"tiles"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TilesConfig defines tile kinds and how they are drawn.
type TilesConfig struct {
	Kinds         int      `yaml:"kinds"`
	Palette       []string `yaml:"palette"` // color name per kind, see core.ParseColor
	StartingCount int      `yaml:"starting_count"`
}

// RulesConfig defines clearing and scoring rules.
type RulesConfig struct {
	MinMatch   int    `yaml:"min_match"`
	Scoring    string `yaml:"scoring"`     // "square" or "linear"
	ClearBonus int    `yaml:"clear_bonus"` // awarded when the board is emptied
}

// DifficultyConfig records the preset the other values were derived from.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// Scoring rules.
const (
	ScoringSquare = "square"
	ScoringLinear = "linear"
)

// Validate reports the first setting the engine or renderer cannot use.
func (c ShapefallConfig) Validate() error {
	switch {
	case c.Board.Width < 1 || c.Board.Height < 1:
		return fmt.Errorf("%w: board %dx%d must be at least 1x1", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	case c.Tiles.Kinds < 1:
		return fmt.Errorf("%w: tiles.kinds %d must be at least 1", ErrInvalidConfig, c.Tiles.Kinds)
	case c.Tiles.Kinds > len(c.Tiles.Palette):
		return fmt.Errorf("%w: tiles.kinds %d exceeds palette of %d colors", ErrInvalidConfig, c.Tiles.Kinds, len(c.Tiles.Palette))
	case c.Rules.MinMatch < 1:
		return fmt.Errorf("%w: rules.min_match %d must be at least 1", ErrInvalidConfig, c.Rules.MinMatch)
	case c.Rules.Scoring != ScoringSquare && c.Rules.Scoring != ScoringLinear:
		return fmt.Errorf("%w: rules.scoring %q must be %q or %q", ErrInvalidConfig, c.Rules.Scoring, ScoringSquare, ScoringLinear)
	}

	for i, name := range c.Tiles.Palette {
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("%w: tiles.palette[%d] unknown color %q", ErrInvalidConfig, i, name)
		}
	}
	return nil
}

// Colors resolves the palette entries used by the configured kinds.
func (c ShapefallConfig) Colors() []core.Color {
	colors := make([]core.Color, 0, c.Tiles.Kinds)
	for _, name := range c.Tiles.Palette[:min(c.Tiles.Kinds, len(c.Tiles.Palette))] {
		col, _ := core.ParseColor(name)
		colors = append(colors, col)
	}
	return colors
}

// Engine converts the configuration into grid settings.
func (c ShapefallConfig) Engine() engine.Config {
	return engine.Config{
		Width:         c.Board.Width,
		Height:        c.Board.Height,
		Kinds:         c.Tiles.Kinds,
		MinMatch:      c.Rules.MinMatch,
		StartingCount: c.Tiles.StartingCount,
	}
}

// Points returns the score for clearing a shape of n tiles.
func (c ShapefallConfig) Points(n int) int {
	if c.Rules.Scoring == ScoringLinear {
		return n
	}
	if n <= 2 {
		return 0
	}
	return (n - 2) * (n - 2)
}
