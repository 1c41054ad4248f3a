package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/registry"
	"github.com/vovakirdan/shapefall/internal/storage"
)

// helpHeight is the number of rows reserved below the game for the help bar.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel is the Bubble Tea model for running a game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	quitting   bool
	backToMenu bool
	exitOnBack bool // no menu to return to
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a new Bubble Tea model for the given game.
// A nil logger discards output.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg.ScreenH = max(cfg.ScreenH-helpHeight, 1)

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-helpHeight, 1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	// Puzzles keep their board; other games restart at the new size.
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick feeds the tick's input to the game. Restart after game
// over is handled here because it needs a fresh seed.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.gameState.GameOver && m.inputFrame.Has(core.ActionRestart) {
		m.restart()
	} else {
		m.gameState = m.game.Step(m.inputFrame).State
		if m.gameState.GameOver && !m.scoreSaved {
			m.saveResult()
			m.scoreSaved = true
		}
	}
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.logger.Debug("restarted", "game", m.game.ID(), "seed", m.config.Seed)
}

// saveResult persists the finished run. Failures are logged and ignored.
func (m GameModel) saveResult() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	id, score := m.game.ID(), m.gameState.Score
	prev, _ := m.store.HighScore(id)

	var err error
	if sr, ok := m.game.(registry.StatsReporter); ok {
		_, err = m.store.SaveRun(id, score, m.config.Seed, sr.Stats())
	} else {
		_, err = m.store.SaveScore(id, score)
	}
	if err != nil {
		m.logger.Warn("could not save score", "game", id, "error", err)
		return
	}
	if score > prev {
		m.logger.Info("new high score", "game", id, "score", score, "previous", prev)
	} else {
		m.logger.Debug("score saved", "game", id, "score", score)
	}
}

// saveScreenshot dumps the current frame as plain text under
// ~/.shapefall/screenshots.
func (m *GameModel) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.game.Render(m.screen)
	path, err := writeScreenshot(filepath.Join(home, ".shapefall", "screenshots"), m.game.ID(), time.Now(), m.screen)
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func writeScreenshot(dir, gameID string, at time.Time, s *core.Screen) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", gameID, at.Format("20060102_150405")))
	return path, os.WriteFile(path, []byte(s.String()+"\n"), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keyMapper.Keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
