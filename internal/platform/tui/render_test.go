package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shapefall/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "score")
	s.SetColored(1, 1, '█', core.ColorRed)
	s.SetColored(2, 1, '█', core.ColorRed)
	s.SetColored(3, 1, '█', core.ColorBlue)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("line %d width = %d, want 6", i, w)
		}
	}
	if !strings.Contains(lines[0], "score") {
		t.Errorf("first line %q missing text", lines[0])
	}
	if got := strings.Count(lines[1], "█"); got != 3 {
		t.Errorf("second line has %d tiles, want 3", got)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	got := styleFor(core.Color(255)).Render("x")
	if got != "x" {
		t.Errorf("styleFor(unknown).Render(x) = %q, want plain x", got)
	}
}
