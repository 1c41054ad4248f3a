package engine

import "github.com/vovakirdan/shapefall/internal/core"

// ShapeView is a read-only copy of a shape.
type ShapeView struct {
	ID    ShapeID
	Kind  TileKind
	Cells []core.Coord
}

// Size returns the number of tiles in the shape.
func (v ShapeView) Size() int {
	return len(v.Cells)
}

// Position implements Positioner for live tiles.
func (g *Grid) Position(id TileID) core.Coord {
	if id < 0 || int(id) >= len(g.tiles) {
		return core.Coord{}
	}
	return g.tiles[id].pos
}

// TileAt returns the tile in cell (x, y). Empty and off-grid cells report false.
func (g *Grid) TileAt(x, y int) (TileView, bool) {
	id := g.tileAt(core.C(x, y))
	if id == NoTile {
		return TileView{}, false
	}
	t := g.tiles[id]
	return TileView{ID: id, Kind: t.kind, Pos: t.pos}, true
}

// KindAt returns the kind in cell (x, y), or NoKind when there is no tile.
func (g *Grid) KindAt(x, y int) TileKind {
	id := g.tileAt(core.C(x, y))
	if id == NoTile {
		return NoKind
	}
	return g.tiles[id].kind
}

// ShapeAt returns the shape owning the tile in cell (x, y).
func (g *Grid) ShapeAt(x, y int) (ShapeView, bool) {
	id := g.tileAt(core.C(x, y))
	if id == NoTile || g.tiles[id].shape == NoShape {
		return ShapeView{}, false
	}
	return g.shapeView(g.tiles[id].shape), true
}

// Shapes returns every live shape ordered by handle.
func (g *Grid) Shapes() []ShapeView {
	views := make([]ShapeView, 0, g.shapeCount)
	for sid, s := range g.shapes {
		if s != nil {
			views = append(views, g.shapeView(ShapeID(sid)))
		}
	}
	return views
}

func (g *Grid) shapeView(sid ShapeID) ShapeView {
	s := g.shapes[sid]
	return ShapeView{ID: sid, Kind: s.kind, Cells: s.Coordinates(g)}
}

// Dimensions returns the grid width and height.
func (g *Grid) Dimensions() (width, height int) {
	return g.cfg.Width, g.cfg.Height
}

// Capacity returns the total number of cells.
func (g *Grid) Capacity() int {
	return len(g.cells)
}

// OccupiedCount returns how many cells hold a tile.
func (g *Grid) OccupiedCount() int {
	return g.occupied
}

// ShapeCount returns the number of live shapes.
func (g *Grid) ShapeCount() int {
	return g.shapeCount
}

// Kinds returns the number of tile kinds.
func (g *Grid) Kinds() int {
	return g.cfg.Kinds
}

// MinMatch returns the clearing threshold.
func (g *Grid) MinMatch() int {
	return g.cfg.MinMatch
}

// LargestShape returns the size of the biggest live shape.
func (g *Grid) LargestShape() int {
	largest := 0
	for _, s := range g.shapes {
		if s != nil && s.Len() > largest {
			largest = s.Len()
		}
	}
	return largest
}

// HasMatches reports whether any shape can currently be cleared.
func (g *Grid) HasMatches() bool {
	return g.LargestShape() >= g.cfg.MinMatch
}
