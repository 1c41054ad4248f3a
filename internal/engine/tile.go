// Package engine implements the tile grid behind Shapefall: tile placement,
// incremental shape (connected component) maintenance, match clearing and
// gravity. It is pure logic with no rendering or input concerns.
//
// The engine is single-threaded and non-reentrant. Every mutation runs to
// completion before the next one starts; callers that serve several players
// give each one its own Grid.
package engine

import "github.com/vovakirdan/shapefall/internal/core"

// TileKind identifies a tile type. Kinds are dense: 0..Config.Kinds-1.
type TileKind int

// NoKind marks an empty cell in layouts and kind queries.
const NoKind TileKind = -1

// TileID is a stable handle into the grid's tile arena.
// Handles of cleared tiles are recycled by later creations.
type TileID int32

// NoTile is the cell sentinel for an empty cell.
const NoTile TileID = -1

// tile is an arena slot. kind never changes while the slot is live.
type tile struct {
	kind  TileKind
	pos   core.Coord
	shape ShapeID
	live  bool
}

// TileView is a read-only copy of a live tile.
type TileView struct {
	ID   TileID
	Kind TileKind
	Pos  core.Coord
}
