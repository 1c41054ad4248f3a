package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/registry"
	"github.com/vovakirdan/shapefall/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(menuCardWidth)
	menuActiveCardStyle = menuCardStyle.BorderForeground(lipgloss.Color("212"))
)

const menuCardWidth = 44

// Title banner, one tile row per letter group.
var menuBanner = []string{
	"▓▓ ▓ ▓ ▓▓▓ ▓▓▓ ▓▓▓ ▓▓▓ ▓▓▓ ▓   ▓  ",
	"S  H H A A P P E   F   A A L   L  ",
}

// MenuKeyMap defines the key bindings of the mode picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "b", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuItem is one playable mode.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	HighScore   int
	Played      int
}

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	keys   MenuKeyMap
	help   help.Model

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a mode picker. A nil store hides high scores.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, info := range registry.List() {
		item := MenuItem{GameID: info.ID, Title: info.Title}
		if g, err := registry.Create(info.ID); err == nil {
			if d, ok := g.(registry.Describer); ok {
				item.Description = d.Description()
			}
		}
		if store != nil {
			if st, err := store.GetGameStats(info.ID); err == nil {
				item.HighScore = st.HighScore
				item.Played = st.GamesCount
			}
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:  items,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				m.selected = &item
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Scores):
			m.openScoreboard = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range menuBanner {
		b.WriteString(centerText(menuTitleStyle.Render(line), w))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		b.WriteString(m.card(item, i == m.cursor, w))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), w))
	b.WriteString("\n")
	return b.String()
}

// card renders one mode with its blurb and record.
func (m MenuModel) card(item MenuItem, active bool, width int) string {
	title := "  " + item.Title
	style := menuCardStyle
	if active {
		title = menuCursorStyle.Render("> " + item.Title)
		style = menuActiveCardStyle
	}

	lines := []string{title}
	if item.Description != "" {
		lines = append(lines, menuMutedStyle.Render(item.Description))
	}
	if item.Played > 0 {
		lines = append(lines, menuMutedStyle.Render(fmt.Sprintf("best %d  ·  %d played", item.HighScore, item.Played)))
	}

	var b strings.Builder
	for _, line := range strings.Split(style.Render(strings.Join(lines, "\n")), "\n") {
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Selected returns the chosen item, or nil when none was chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, updated by any resize.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the user picked in a standalone menu run.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the mode picker until the user chooses.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
