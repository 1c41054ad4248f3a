package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is one styled character of a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is an off-terminal character buffer. Games draw into it; the
// platform turns it into styled terminal output. Row 0 is the top line.
// Writes outside the buffer are dropped.
type Screen struct {
	width, height int
	cells         []Cell // row-major
}

// NewScreen returns a blank width x height buffer.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: width, height: height, cells: make([]Cell, width*height)}
	s.Clear()
	return s
}

func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

func (s *Screen) in(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Resize changes the dimensions, keeping the overlapping top-left region.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	next := NewScreen(width, height)
	for y := range min(height, s.height) {
		n := min(width, s.width)
		copy(next.cells[y*width:y*width+n], s.cells[y*s.width:y*s.width+n])
	}
	*s = *next
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// Set writes an uncolored rune.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored writes a rune in color c.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if s.in(x, y) {
		s.cells[y*s.width+x] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space outside the buffer.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank outside the buffer.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.in(x, y) {
		return blank
	}
	return s.cells[y*s.width+x]
}

// DrawText writes text left to right from (x, y), one rune per cell.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored is DrawText in color c.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for i, r := range []rune(text) {
		s.SetColored(x+i, y, r, c)
	}
}

// DrawTextCentered writes text centered on row y.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawText((s.width-runewidth.StringWidth(text))/2, y, text)
}

// DrawBox outlines r with single-line box characters.
func (s *Screen) DrawBox(r Rect) {
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W-1, r.Y+r.H-1
	for x := x0 + 1; x < x1; x++ {
		s.Set(x, y0, '─')
		s.Set(x, y1, '─')
	}
	for y := y0 + 1; y < y1; y++ {
		s.Set(x0, y, '│')
		s.Set(x1, y, '│')
	}
	s.Set(x0, y0, '┌')
	s.Set(x1, y0, '┐')
	s.Set(x0, y1, '└')
	s.Set(x1, y1, '┘')
}

// FillRect blanks the cells covered by r.
func (s *Screen) FillRect(r Rect) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.Set(x, y, ' ')
		}
	}
}

// Row returns line y as plain text, or spaces outside the buffer.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var b strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

// String returns the whole buffer as plain text, one line per row.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
