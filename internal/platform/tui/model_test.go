package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/storage"
)

// stubGame records the frames it receives.
type stubGame struct {
	state   core.GameState
	frames  []core.InputFrame
	resets  int
	resized [2]int
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++; g.state = core.GameState{} }
func (g *stubGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Stats() core.RunStats {
	return core.RunStats{Moves: 3, TilesCleared: 9, LargestClear: 4}
}
func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.state}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 7}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGameModelReservesHelpRow(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testConfig(), nil)
	if m.screen.Height() != 20-helpHeight {
		t.Errorf("screen height = %d, want %d", m.screen.Height(), 20-helpHeight)
	}
}

func TestGameModelForwardsInput(t *testing.T) {
	game := &stubGame{}
	var model tea.Model = NewGameModel(game, nil, testConfig(), nil)

	model, _ = model.Update(runeKey('d'))
	model, _ = model.Update(tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	model, cmd := model.Update(TickMsg{})
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}

	if len(game.frames) != 1 {
		t.Fatalf("Step called %d times, want 1", len(game.frames))
	}
	frame := game.frames[0]
	if !frame.Has(core.ActionRight) {
		t.Error("frame missing ActionRight")
	}
	if frame.Pointer == nil || *frame.Pointer != core.C(4, 5) {
		t.Errorf("Pointer = %v, want (4,5)", frame.Pointer)
	}

	// Input is cleared between ticks.
	model.Update(TickMsg{})
	if len(game.frames) != 2 || game.frames[1].Has(core.ActionRight) || game.frames[1].Pointer != nil {
		t.Error("input leaked into the next tick")
	}
}

func TestGameModelResizeKeepsBoard(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, nil, testConfig(), nil)
	m.Init()

	model, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	gm := model.(GameModel)

	if game.resized != [2]int{60, 30 - helpHeight} {
		t.Errorf("Resize got %v, want [60 %d]", game.resized, 30-helpHeight)
	}
	if game.resets != 1 {
		t.Errorf("game reset %d times, want 1", game.resets)
	}
	if gm.screen.Width() != 60 {
		t.Errorf("screen width = %d, want 60", gm.screen.Width())
	}
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{}
	var model tea.Model = NewGameModel(game, store, testConfig(), nil)

	game.state = core.GameState{Score: 120, GameOver: true}
	model, _ = model.Update(TickMsg{})
	model.Update(TickMsg{})

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Score != 120 || runs[0].Seed != 7 || runs[0].Stats.TilesCleared != 9 {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestGameModelRestartAfterGameOver(t *testing.T) {
	game := &stubGame{}
	var model tea.Model = NewGameModel(game, nil, testConfig(), nil)

	game.state = core.GameState{Score: 5, GameOver: true}
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(runeKey('r'))
	model.Update(TickMsg{})

	if game.resets != 1 {
		t.Errorf("game reset %d times, want 1", game.resets)
	}
	if game.state.GameOver {
		t.Error("game still over after restart")
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testConfig(), nil)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	gm := model.(GameModel)
	if !gm.BackToMenu() || gm.IsQuitting() || cmd != nil {
		t.Errorf("esc in session: back=%v quit=%v", gm.BackToMenu(), gm.IsQuitting())
	}

	m.exitOnBack = true
	model, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	gm = model.(GameModel)
	if !gm.IsQuitting() || cmd == nil {
		t.Error("esc in standalone play did not quit")
	}

	model, _ = m.Update(runeKey('q'))
	if !model.(GameModel).IsQuitting() {
		t.Error("q did not quit")
	}
}

func TestGameModelView(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testConfig(), nil)
	view := m.View()
	if !strings.Contains(view, "stub") || !strings.Contains(view, "pop shape") {
		t.Errorf("View() missing game output or help: %q", view)
	}
}

func TestSessionModelFlow(t *testing.T) {
	var model tea.Model = NewSessionModel(nil, testConfig(), nil)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	sm := model.(SessionModel)
	if sm.scoreboard == nil {
		t.Fatal("tab did not open the scoreboard")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sm = model.(SessionModel)
	if sm.scoreboard != nil || sm.quitting {
		t.Fatal("esc did not return to the menu")
	}

	model, cmd := model.Update(runeKey('q'))
	if !model.(SessionModel).quitting || cmd == nil {
		t.Error("q in menu did not end the session")
	}
}

func TestWriteScreenshot(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "pop")
	at := time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)

	dir := filepath.Join(t.TempDir(), "shots")
	path, err := writeScreenshot(dir, "shapefall", at, s)
	if err != nil {
		t.Fatalf("writeScreenshot() error: %v", err)
	}
	if filepath.Base(path) != "shapefall_20240501_130405.txt" {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "pop   \n      \n" {
		t.Errorf("screenshot = %q", data)
	}
}
