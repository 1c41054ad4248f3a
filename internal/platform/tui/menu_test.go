package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shapefall/internal/core"
)

func menuIndex(t *testing.T, m MenuModel, id string) int {
	t.Helper()
	for i, item := range m.items {
		if item.GameID == id {
			return i
		}
	}
	t.Fatalf("mode %q not listed", id)
	return -1
}

func TestMenuShowsRecords(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun("tui_board_b", 250, 3, core.RunStats{Moves: 4, TilesCleared: 20})

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 30})
	item := m.items[menuIndex(t, m, "tui_board_b")]
	if item.HighScore != 250 || item.Played != 1 {
		t.Errorf("item = %+v, want high score 250 after 1 run", item)
	}
	if !strings.Contains(m.View(), "best 250") {
		t.Error("view does not show the best score")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	want := menuIndex(t, m, "tui_board_b")

	var model tea.Model = m
	for range want {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := model.(MenuModel)
	if got.Selected() == nil || got.Selected().GameID != "tui_board_b" {
		t.Fatalf("Selected() = %+v, want tui_board_b", got.Selected())
	}
	if cmd == nil {
		t.Error("select did not end the menu program")
	}
}

func TestMenuCursorClamps(t *testing.T) {
	var model tea.Model = NewMenuModel(nil, testConfig())
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	if c := model.(MenuModel).cursor; c != 0 {
		t.Errorf("cursor after up at top = %d", c)
	}

	n := len(model.(MenuModel).items)
	for range n + 3 {
		model, _ = model.Update(runeKey('j'))
	}
	if c := model.(MenuModel).cursor; c != n-1 {
		t.Errorf("cursor after overshoot = %d, want %d", c, n-1)
	}
}

func TestMenuResize(t *testing.T) {
	model, _ := NewMenuModel(nil, testConfig()).Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	cfg := model.(MenuModel).Config()
	if cfg.ScreenW != 100 || cfg.ScreenH != 50 || cfg.Seed != 7 {
		t.Errorf("Config() = %+v", cfg)
	}
}
