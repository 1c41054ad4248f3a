package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)
	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, want 12x4", s.Width(), s.Height())
	}
	want := strings.Repeat(strings.Repeat(" ", 12)+"\n", 3) + strings.Repeat(" ", 12)
	if got := s.String(); got != want {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(4, 3)
	s.SetColored(3, 2, 'X', ColorRed)

	tests := []struct {
		name string
		x, y int
		want Cell
	}{
		{"written", 3, 2, Cell{Rune: 'X', Color: ColorRed}},
		{"untouched", 0, 0, blank},
		{"left", -1, 0, blank},
		{"right", 4, 0, blank},
		{"above", 0, -1, blank},
		{"below", 0, 3, blank},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.GetCell(tt.x, tt.y); got != tt.want {
				t.Errorf("GetCell(%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	// Writes outside the buffer must not wrap into other rows.
	s.Set(4, 0, 'W')
	s.Set(-1, 1, 'W')
	if strings.ContainsRune(s.String(), 'W') {
		t.Errorf("out-of-bounds write leaked:\n%s", s)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawTextColored(0, 0, "abcde", ColorBlue)
	s.Clear()
	for y := range 2 {
		for x := range 5 {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("cell (%d,%d) = %+v after Clear", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(8, 3)
	s.DrawTextColored(1, 0, "tile", ColorGreen)
	s.DrawText(6, 1, "clip")
	s.DrawTextCentered(2, "ab")

	want := []string{" tile   ", "      cl", "   ab   "}
	for y, w := range want {
		if got := s.Row(y); got != w {
			t.Errorf("Row(%d) = %q, want %q", y, got, w)
		}
	}
	if c := s.GetCell(2, 0); c.Color != ColorGreen {
		t.Errorf("text color = %v, want green", c.Color)
	}
}

func TestScreenDrawBoxAndFill(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawText(0, 1, "xxxxxx")
	box := Rect{X: 1, Y: 0, W: 4, H: 4}
	s.FillRect(box)
	s.DrawBox(box)

	want := []string{
		" ┌──┐ ",
		"x│  │x",
		" │  │ ",
		" └──┘ ",
	}
	for y, w := range want {
		if got := s.Row(y); got != w {
			t.Errorf("Row(%d) = %q, want %q", y, got, w)
		}
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "shapes")
	s.DrawText(0, 2, "bottom")

	s.Resize(3, 2)
	if got := s.String(); got != "sha\n   " {
		t.Errorf("after shrink = %q", got)
	}

	s.Resize(5, 3)
	if s.Row(0) != "sha  " || s.Row(2) != "     " {
		t.Errorf("after grow = %q", s.String())
	}
	if got := s.Row(9); got != "     " {
		t.Errorf("Row outside = %q", got)
	}
}
