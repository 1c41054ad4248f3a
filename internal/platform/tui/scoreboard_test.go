package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/registry"
)

func init() {
	registry.Register("tui_board_a", func() registry.Game { return &stubGame{} })
	registry.Register("tui_board_b", func() registry.Game { return &stubGame{} })
}

func TestScoreboardShowsRunsPerMode(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun("tui_board_a", 300, 41, core.RunStats{Moves: 6, TilesCleared: 40, LargestClear: 12, BoardCleared: true})
	store.SaveRun("tui_board_a", 100, 42, core.RunStats{Moves: 3, TilesCleared: 15, LargestClear: 5})

	m := NewScoreboardModel(store, 120, 40)
	for m.modes[m.mode].ID != "tui_board_a" {
		m.switchMode(1)
	}

	if len(m.runs) != 2 || m.runs[0].Score != 300 {
		t.Fatalf("runs = %+v", m.runs)
	}
	if got := bestCell(m.runs[0]); got != "12*" {
		t.Errorf("bestCell() = %q, want 12*", got)
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES", "300", "Replay with --seed 41", "2 games"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if view := model.View(); !strings.Contains(view, "--seed 42") {
		t.Error("details did not follow the table cursor")
	}
}

func TestScoreboardModeSwitchWraps(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if len(m.modes) < 2 {
		t.Fatalf("need at least two modes, have %d", len(m.modes))
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := model.(ScoreboardModel).mode; got != len(m.modes)-1 {
		t.Errorf("shift+tab from first mode = %d, want %d", got, len(m.modes)-1)
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := model.(ScoreboardModel).mode; got != 0 {
		t.Errorf("tab from last mode = %d, want 0", got)
	}

	if view := m.View(); !strings.Contains(view, "No scores recorded yet.") {
		t.Error("empty scoreboard missing placeholder")
	}
}
