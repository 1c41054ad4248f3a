// Package core holds the small value types shared by the engine, the game
// and the platform layer. It has no terminal dependencies.
package core

import (
	"cmp"
	"fmt"
)

// Coord is a cell on a tile grid. Row 0 is the bottom row and Y grows upward.
type Coord struct {
	X, Y int
}

// C builds a Coord.
func C(x, y int) Coord { return Coord{X: x, Y: y} }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Step returns the neighbour of c in direction d.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Less orders cells bottom row first, then left to right.
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Dir is an orthogonal direction.
type Dir uint8

const (
	DirNorth Dir = iota
	DirEast
	DirSouth
	DirWest
)

// Orthogonal lists every Dir in N, E, S, W order.
var Orthogonal = [4]Dir{DirNorth, DirEast, DirSouth, DirWest}

var (
	dirNames  = [4]string{"North", "East", "South", "West"}
	dirDeltas = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

func (d Dir) String() string {
	if int(d) < len(dirNames) {
		return dirNames[d]
	}
	return "Unknown"
}

// Delta is the offset of one step in d. North is +Y.
func (d Dir) Delta() (dx, dy int) {
	if int(d) >= len(dirDeltas) {
		return 0, 0
	}
	return dirDeltas[d][0], dirDeltas[d][1]
}

// Rect is a screen-space box with its top-left corner at X, Y.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether screen cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
