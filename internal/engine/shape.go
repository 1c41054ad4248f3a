package engine

import (
	"slices"

	"github.com/vovakirdan/shapefall/internal/core"
)

// ShapeID is a stable handle into the grid's shape collection.
type ShapeID int32

// NoShape means a tile currently belongs to no shape.
const NoShape ShapeID = -1

// Positioner resolves a tile handle to its current cell.
type Positioner interface {
	Position(id TileID) core.Coord
}

// Shape is a group of same-kind tiles that touch orthogonally.
// Members are unique; their order carries no meaning and changes on Remove.
//
// Shape does not check kinds: adding a tile of another kind is a caller bug.
type Shape struct {
	kind    TileKind
	members []TileID
	index   map[TileID]int // position in members
	dirty   bool           // queued for a connectivity check
}

// NewShape returns an empty shape for tiles of the given kind.
func NewShape(kind TileKind) *Shape {
	return &Shape{kind: kind, index: make(map[TileID]int)}
}

// Kind returns the kind shared by every member.
func (s *Shape) Kind() TileKind {
	return s.kind
}

// Len returns the number of member tiles.
func (s *Shape) Len() int {
	return len(s.members)
}

// Members returns a copy of the member handles.
func (s *Shape) Members() []TileID {
	return slices.Clone(s.members)
}

// Contains reports whether the tile is a member.
func (s *Shape) Contains(id TileID) bool {
	_, ok := s.index[id]
	return ok
}

// Add appends a tile. Adding an existing member is a no-op.
func (s *Shape) Add(id TileID) {
	if s.Contains(id) {
		return
	}
	if s.index == nil {
		s.index = make(map[TileID]int)
	}
	s.index[id] = len(s.members)
	s.members = append(s.members, id)
}

// Remove drops a tile from the shape and reports whether the shape is now
// empty, in which case the caller must discard it.
func (s *Shape) Remove(id TileID) bool {
	i, ok := s.index[id]
	if !ok {
		return len(s.members) == 0
	}
	last := len(s.members) - 1
	if i != last {
		moved := s.members[last]
		s.members[i] = moved
		s.index[moved] = i
	}
	s.members = s.members[:last]
	delete(s.index, id)
	return last == 0
}

// MergeInto moves every member into other and leaves s empty. The cost is
// linear in the size of s.
func (s *Shape) MergeInto(other *Shape) {
	if other == s {
		return
	}
	for _, id := range s.members {
		other.Add(id)
	}
	s.reset(nil)
}

// Coordinates returns the current cell of every member, sorted bottom row
// first and left to right within a row.
func (s *Shape) Coordinates(p Positioner) []core.Coord {
	coords := make([]core.Coord, 0, len(s.members))
	for _, id := range s.members {
		coords = append(coords, p.Position(id))
	}
	slices.SortFunc(coords, compareCoords)
	return coords
}

// reset replaces the member list. Used when a shape is split apart.
func (s *Shape) reset(ids []TileID) {
	clear(s.index)
	s.members = s.members[:0]
	for _, id := range ids {
		s.Add(id)
	}
}

func compareCoords(a, b core.Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
