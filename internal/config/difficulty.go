package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets in increasing difficulty.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset resolves a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(name))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, name)
}

// ApplyPreset adjusts the tile kinds and match threshold for a preset.
// Fewer kinds make large shapes more likely; a higher threshold makes
// clears rarer.
func ApplyPreset(cfg *ShapefallConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset

	switch preset {
	case DifficultyEasy:
		cfg.Tiles.Kinds = 3
		cfg.Rules.MinMatch = 2
	case DifficultyHard:
		cfg.Tiles.Kinds = 5
		cfg.Rules.MinMatch = 4
	}

	if cfg.Tiles.Kinds > len(cfg.Tiles.Palette) {
		cfg.Tiles.Kinds = len(cfg.Tiles.Palette)
	}
}
