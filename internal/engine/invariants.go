package engine

import (
	"fmt"

	"github.com/vovakirdan/shapefall/internal/core"
)

// InvariantError describes a broken grid invariant. It always indicates an
// engine bug, never a caller mistake.
type InvariantError struct {
	Rule   string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine: invariant %q violated: %s", e.Rule, e.Detail)
}

func violation(rule, format string, args ...any) error {
	return &InvariantError{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}

// Validate checks the whole grid and returns the first violation found:
//   - every occupied cell holds a live tile whose position is that cell
//   - every tile belongs to exactly one live shape of its own kind
//   - no live shape is empty, and every shape is connected
//   - no two shapes of the same kind touch
func (g *Grid) Validate() error {
	occupied := 0
	for y := 0; y < g.cfg.Height; y++ {
		for x := 0; x < g.cfg.Width; x++ {
			id := g.cells[g.index(x, y)]
			if id == NoTile {
				continue
			}
			occupied++
			if id < 0 || int(id) >= len(g.tiles) || !g.tiles[id].live {
				return violation("position", "cell (%d,%d) holds dead tile %d", x, y, id)
			}
			t := g.tiles[id]
			if t.pos != core.C(x, y) {
				return violation("position", "tile %d in cell (%d,%d) thinks it is at %v", id, x, y, t.pos)
			}
			if t.shape == NoShape || int(t.shape) >= len(g.shapes) || g.shapes[t.shape] == nil {
				return violation("partition", "tile %d at (%d,%d) has no shape", id, x, y)
			}
			if !g.shapes[t.shape].Contains(id) {
				return violation("partition", "tile %d is not a member of its shape %d", id, t.shape)
			}
		}
	}
	if occupied != g.occupied {
		return violation("occupancy", "counted %d tiles, tracked %d", occupied, g.occupied)
	}

	owner := make(map[TileID]ShapeID, occupied)
	live := 0
	for i, s := range g.shapes {
		if s == nil {
			continue
		}
		sid := ShapeID(i)
		live++
		if s.Len() == 0 {
			return violation("empty-shape", "shape %d has no members", sid)
		}
		for _, id := range s.members {
			if prev, dup := owner[id]; dup {
				return violation("partition", "tile %d is in shapes %d and %d", id, prev, sid)
			}
			owner[id] = sid
			t := g.tiles[id]
			if !t.live || g.tileAt(t.pos) != id {
				return violation("partition", "shape %d holds tile %d that is not on the grid", sid, id)
			}
			if t.kind != s.kind {
				return violation("kind", "shape %d of kind %d holds tile %d of kind %d", sid, s.kind, id, t.kind)
			}
			if t.shape != sid {
				return violation("partition", "tile %d listed in shape %d points at %d", id, sid, t.shape)
			}
		}
		if n := len(g.component(s.members[0], sid)); n != s.Len() {
			return violation("connectivity", "shape %d reaches %d of %d tiles", sid, n, s.Len())
		}
	}
	if live != g.shapeCount {
		return violation("shape-count", "counted %d shapes, tracked %d", live, g.shapeCount)
	}
	if len(owner) != occupied {
		return violation("partition", "shapes hold %d tiles, grid holds %d", len(owner), occupied)
	}

	for y := 0; y < g.cfg.Height; y++ {
		for x := 0; x < g.cfg.Width; x++ {
			id := g.cells[g.index(x, y)]
			if id == NoTile {
				continue
			}
			for _, d := range [2]core.Dir{core.DirNorth, core.DirEast} {
				nid := g.tileAt(core.C(x, y).Step(d))
				if nid == NoTile {
					continue
				}
				a, b := g.tiles[id], g.tiles[nid]
				if a.kind == b.kind && a.shape != b.shape {
					return violation("adjacency-closure", "(%d,%d) and %v share kind %d but not a shape", x, y, b.pos, a.kind)
				}
			}
		}
	}
	return nil
}
