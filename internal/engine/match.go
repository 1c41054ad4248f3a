package engine

import "github.com/vovakirdan/shapefall/internal/core"

// Outcome classifies the result of an interaction.
type Outcome int

const (
	// OutcomeNotFound means the cell was empty or off the grid.
	OutcomeNotFound Outcome = iota
	// OutcomeBelowThreshold means the shape was too small; nothing changed.
	OutcomeBelowThreshold
	// OutcomeCleared means the whole shape was removed.
	OutcomeCleared
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeBelowThreshold:
		return "below_threshold"
	case OutcomeCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Match describes a shape selected by an interaction.
type Match struct {
	Kind  TileKind
	Cells []core.Coord // sorted bottom row first
}

// Size returns the number of tiles in the match.
func (m Match) Size() int {
	return len(m.Cells)
}

// Interact selects the tile at (x, y). When its shape holds at least
// MinMatch tiles the shape is cleared from the grid and its cells returned.
// Otherwise the grid is left untouched.
func (g *Grid) Interact(x, y int) (Match, Outcome) {
	m, sid, outcome := g.selectShape(x, y)
	if outcome != OutcomeCleared {
		return m, outcome
	}

	s := g.shapes[sid]
	for _, id := range s.members {
		g.freeTile(id)
	}
	s.reset(nil)
	g.discardShape(sid)

	g.check("interact")
	return m, OutcomeCleared
}

// Peek reports what Interact(x, y) would do without changing the grid.
func (g *Grid) Peek(x, y int) (Match, Outcome) {
	m, _, outcome := g.selectShape(x, y)
	return m, outcome
}

func (g *Grid) selectShape(x, y int) (Match, ShapeID, Outcome) {
	id := g.tileAt(core.C(x, y))
	if id == NoTile {
		g.logger.Debug("no tile at cell", "x", x, "y", y)
		return Match{}, NoShape, OutcomeNotFound
	}

	sid := g.tiles[id].shape
	if sid == NoShape {
		return Match{}, NoShape, OutcomeBelowThreshold
	}

	s := g.shapes[sid]
	m := Match{Kind: s.kind, Cells: s.Coordinates(g)}
	if s.Len() < g.cfg.MinMatch {
		return m, sid, OutcomeBelowThreshold
	}
	return m, sid, OutcomeCleared
}
