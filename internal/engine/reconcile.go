package engine

import (
	"slices"

	"github.com/vovakirdan/shapefall/internal/core"
)

// reconcile updates shape membership for a tile that was just created or
// moved to its current cell.
func (g *Grid) reconcile(id TileID) {
	if g.shapeCount == 0 {
		g.attach(g.newShape(g.tiles[id].kind), id)
		return
	}

	if g.tiles[id].shape != NoShape {
		g.detach(id)
	}

	t := g.tiles[id]
	var found [4]ShapeID
	n := 0
	for _, d := range core.Orthogonal {
		nid := g.tileAt(t.pos.Step(d))
		if nid == NoTile {
			continue
		}
		nb := g.tiles[nid]
		if nb.kind != t.kind || nb.shape == NoShape {
			continue
		}
		if !slices.Contains(found[:n], nb.shape) {
			found[n] = nb.shape
			n++
		}
	}

	switch n {
	case 0:
		g.attach(g.newShape(t.kind), id)
	case 1:
		g.attach(found[0], id)
	default:
		// The tile bridges previously separate regions. The largest one
		// absorbs the others.
		dst := 0
		for i := 1; i < n; i++ {
			if g.shapes[found[i]].Len() > g.shapes[found[dst]].Len() {
				dst = i
			}
		}
		g.attach(found[dst], id)
		for i, sid := range found[:n] {
			if i != dst {
				g.merge(found[dst], sid)
			}
		}
	}
}

// detach removes a tile from its shape while the tile is still on its old
// cell. An emptied shape is discarded. A shape the departure may have cut in
// two is split into its components, or queued when splits are deferred.
func (g *Grid) detach(id TileID) {
	t := g.tiles[id]
	g.tiles[id].shape = NoShape
	if g.shapes[t.shape].Remove(id) {
		g.discardShape(t.shape)
		return
	}

	// A tile with fewer than two neighbours in the shape is a leaf and
	// cannot disconnect it.
	links := 0
	for _, d := range core.Orthogonal {
		if nid := g.tileAt(t.pos.Step(d)); nid != NoTile && g.tiles[nid].shape == t.shape {
			links++
		}
	}
	if links < 2 {
		return
	}

	if g.deferSplits {
		g.markDirty(t.shape)
		return
	}
	g.splitIfDisconnected(t.shape)
}

// markDirty queues sid for a connectivity check in flushSplits.
func (g *Grid) markDirty(sid ShapeID) {
	s := g.shapes[sid]
	if s.dirty {
		return
	}
	s.dirty = true
	g.dirty = append(g.dirty, sid)
}

// flushSplits checks every queued shape once and splits the disconnected ones.
func (g *Grid) flushSplits() {
	for _, sid := range g.dirty {
		// Slots may have been discarded or reused since they were queued.
		if s := g.shapes[sid]; s != nil && s.dirty {
			s.dirty = false
			g.splitIfDisconnected(sid)
		}
	}
	g.dirty = g.dirty[:0]
}

func (g *Grid) attach(sid ShapeID, id TileID) {
	g.shapes[sid].Add(id)
	g.tiles[id].shape = sid
}

// merge moves every member of src into dst and discards src.
func (g *Grid) merge(dst, src ShapeID) {
	if dst == src {
		return
	}
	for _, m := range g.shapes[src].members {
		g.tiles[m].shape = dst
	}
	if g.shapes[src].dirty {
		g.markDirty(dst)
	}
	g.shapes[src].MergeInto(g.shapes[dst])
	g.discardShape(src)
}

func (g *Grid) newShape(kind TileKind) ShapeID {
	s := NewShape(kind)
	g.shapeCount++
	if n := len(g.freeShapes); n > 0 {
		sid := g.freeShapes[n-1]
		g.freeShapes = g.freeShapes[:n-1]
		g.shapes[sid] = s
		return sid
	}
	g.shapes = append(g.shapes, s)
	return ShapeID(len(g.shapes) - 1)
}

func (g *Grid) discardShape(sid ShapeID) {
	g.shapes[sid] = nil
	g.freeShapes = append(g.freeShapes, sid)
	g.shapeCount--
}

// component walks the tiles of shape sid reachable from start through
// orthogonal steps. The result is in breadth-first order.
func (g *Grid) component(start TileID, sid ShapeID) []TileID {
	g.nextEpoch()
	g.visit[start] = g.epoch
	queue := []TileID{start}
	for i := 0; i < len(queue); i++ {
		pos := g.tiles[queue[i]].pos
		for _, d := range core.Orthogonal {
			nid := g.tileAt(pos.Step(d))
			if nid == NoTile || g.visit[nid] == g.epoch || g.tiles[nid].shape != sid {
				continue
			}
			g.visit[nid] = g.epoch
			queue = append(queue, nid)
		}
	}
	return queue
}

// nextEpoch starts a new walk over the visit stamps.
func (g *Grid) nextEpoch() {
	if n := len(g.tiles) - len(g.visit); n > 0 {
		g.visit = append(g.visit, make([]uint32, n)...)
	}
	g.epoch++
	if g.epoch == 0 {
		clear(g.visit)
		g.epoch = 1
	}
}

// splitIfDisconnected keeps the component holding the shape's first member
// in sid and moves every other component into a new shape.
func (g *Grid) splitIfDisconnected(sid ShapeID) {
	s := g.shapes[sid]
	members := s.Members()
	keep := g.component(members[0], sid)
	if len(keep) == len(members) {
		return
	}
	s.reset(keep)

	pieces := 1
	for _, m := range members {
		// Tiles still pointing at sid but missing from s are unplaced, so
		// the walk stays inside the old shape.
		if g.tiles[m].shape != sid || s.Contains(m) {
			continue
		}
		nsid := g.newShape(s.kind)
		for _, id := range g.component(m, sid) {
			g.attach(nsid, id)
		}
		pieces++
	}

	g.logger.Debug("shape split", "kind", s.kind, "pieces", pieces, "tiles", len(members))
}
