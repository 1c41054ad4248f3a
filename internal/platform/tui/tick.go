// Package tui is the Bubble Tea front end: the fixed-rate game loop, key
// and mouse mapping, screen painting, the menu, the scoreboard and the
// SSH session host.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg paces Game.Step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg at rate per second, 60 when unset.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = 60
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}
