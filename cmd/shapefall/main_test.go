package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/shapefall/internal/config"
)

func TestResolveGameID(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{nil, classicID, false},
		{[]string{"classic"}, classicID, false},
		{[]string{"endless"}, endlessID, false},
		{[]string{endlessID}, endlessID, false},
		{[]string{"tetris"}, "", true},
	}

	for _, tt := range tests {
		got, err := resolveGameID(tt.args)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("resolveGameID(%v) = %q, %v; want %q, err=%v", tt.args, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestLoadConfigFlags(t *testing.T) {
	defer func() { flagConfig, flagDifficulty = "", "" }()

	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := os.WriteFile(path, []byte("board:\n  width: 5\n  height: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	flagConfig, flagDifficulty = path, "easy"
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Board.Width != 5 || cfg.Board.Height != 4 {
		t.Errorf("board = %dx%d, want 5x4", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Difficulty.Preset != config.DifficultyEasy || cfg.Rules.MinMatch != 2 {
		t.Errorf("preset not applied: %+v", cfg)
	}

	flagDifficulty = "impossible"
	if _, err := loadConfig(); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("loadConfig() with bad difficulty = %v, want ErrInvalidConfig", err)
	}
}
