package engine

import "github.com/vovakirdan/shapefall/internal/core"

// Move records one tile dropped by Settle.
type Move struct {
	ID   TileID
	Kind TileKind
	From core.Coord // cell before the drop
	To   core.Coord // resting cell
}

// Settle drops every tile onto the nearest tile below it, or onto row 0.
// Rows are processed from the second row up, so the rows beneath a tile have
// already settled when it is examined and one call closes every gap.
// Tiles in row 0 never move. Calling Settle again returns no moves.
//
// Shapes that lose tiles are checked for connectivity once, after the scan.
func (g *Grid) Settle() []Move {
	var moves []Move
	g.deferSplits = true
	for y := 1; y < g.cfg.Height; y++ {
		for x := 0; x < g.cfg.Width; x++ {
			id := g.cells[g.index(x, y)]
			if id == NoTile {
				continue
			}

			restY := 0
			if below, ok := g.southernNeighbour(x, y); ok {
				if below == y-1 {
					continue
				}
				restY = below + 1
			}

			from, to := core.C(x, y), core.C(x, restY)
			g.detach(id)
			g.moveTile(id, to)
			g.reconcile(id)
			moves = append(moves, Move{ID: id, Kind: g.tiles[id].kind, From: from, To: to})
		}
	}

	g.deferSplits = false
	g.flushSplits()

	g.check("settle")
	return moves
}

// southernNeighbour returns the row of the nearest occupied cell strictly
// below (x, y) in the same column.
func (g *Grid) southernNeighbour(x, y int) (int, bool) {
	for sy := y - 1; sy >= 0; sy-- {
		if g.cells[g.index(x, sy)] != NoTile {
			return sy, true
		}
	}
	return 0, false
}
