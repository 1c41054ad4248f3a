package config

import (
	_ "embed"
)

//go:embed defaults/shapefall.yaml
var defaultShapefallYAML []byte

// DefaultShapefallConfig returns the hardcoded configuration used when the
// embedded YAML cannot be parsed.
func DefaultShapefallConfig() ShapefallConfig {
	return ShapefallConfig{
		Board: BoardConfig{
			Width:  12,
			Height: 6,
		},
		Tiles: TilesConfig{
			Kinds:         4,
			Palette:       []string{"red", "green", "blue", "yellow", "magenta", "cyan"},
			StartingCount: 72,
		},
		Rules: RulesConfig{
			MinMatch:   3,
			Scoring:    ScoringSquare,
			ClearBonus: 1000,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}
