package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shapefall/internal/core"
)

// ErrInvalidConfig is returned by New for unusable grid settings.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Config holds the grid settings the engine consumes.
type Config struct {
	Width         int // Columns
	Height        int // Rows
	Kinds         int // Number of tile kinds
	MinMatch      int // Smallest shape that can be cleared (>= 1)
	StartingCount int // Informational: tiles placed at start
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: board %dx%d must be at least 1x1", ErrInvalidConfig, c.Width, c.Height)
	case c.Kinds < 1:
		return fmt.Errorf("%w: kinds %d must be at least 1", ErrInvalidConfig, c.Kinds)
	case c.MinMatch < 1:
		return fmt.Errorf("%w: min match %d must be at least 1", ErrInvalidConfig, c.MinMatch)
	}
	return nil
}

// Option customizes a Grid at construction.
type Option func(*Grid)

// WithLogger routes engine diagnostics to l. The default discards them.
func WithLogger(l *log.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithInvariantChecks makes every mutation validate the whole grid and panic
// on the first violation. Meant for tests and debug builds.
func WithInvariantChecks(on bool) Option {
	return func(g *Grid) {
		g.checks = on
	}
}

// Grid owns the cell array, the tile arena and the shape collection.
type Grid struct {
	cfg Config

	cells     []TileID // row-major, index = y*width + x, row 0 at the bottom
	tiles     []tile
	freeTiles []TileID
	occupied  int

	shapes     []*Shape // nil slots are free
	freeShapes []ShapeID
	shapeCount int

	// Connectivity bookkeeping. Settle defers splits to one pass per shape.
	deferSplits bool
	dirty       []ShapeID
	visit       []uint32 // walk stamp per tile
	epoch       uint32

	rng    Randomizer
	logger *log.Logger
	checks bool
}

// New creates an empty grid. A nil randomizer is replaced by a time-seeded one.
func New(cfg Config, rng Randomizer, opts ...Option) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRandomizer(cfg.Kinds, time.Now().UnixNano())
	}

	g := &Grid{
		cfg:    cfg,
		rng:    rng,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Reset()
	return g, nil
}

// Reset empties the grid, dropping every tile and shape.
func (g *Grid) Reset() {
	g.cells = make([]TileID, g.cfg.Width*g.cfg.Height)
	for i := range g.cells {
		g.cells[i] = NoTile
	}
	g.tiles = g.tiles[:0]
	g.freeTiles = g.freeTiles[:0]
	g.occupied = 0
	g.shapes = g.shapes[:0]
	g.freeShapes = g.freeShapes[:0]
	g.shapeCount = 0
	g.dirty = g.dirty[:0]
}

// Populate fills every empty cell row by row, bottom row first, with
// randomly drawn kinds.
func (g *Grid) Populate() {
	for y := 0; y < g.cfg.Height; y++ {
		for x := 0; x < g.cfg.Width; x++ {
			if g.cells[g.index(x, y)] == NoTile {
				g.CreateRandomTile(x, y)
			}
		}
	}
}

// PopulateCount fills at most n empty cells in Populate order and returns
// how many tiles it placed. n <= 0 fills every empty cell.
func (g *Grid) PopulateCount(n int) int {
	if n <= 0 {
		n = g.Capacity()
	}
	placed := 0
	for y := 0; y < g.cfg.Height && placed < n; y++ {
		for x := 0; x < g.cfg.Width && placed < n; x++ {
			if _, ok := g.CreateRandomTile(x, y); ok {
				placed++
			}
		}
	}
	return placed
}

// PopulateFunc fills empty cells in the same order as Populate using the
// kind returned by layout. Returning NoKind leaves the cell empty.
func (g *Grid) PopulateFunc(layout func(x, y int) TileKind) {
	for y := 0; y < g.cfg.Height; y++ {
		for x := 0; x < g.cfg.Width; x++ {
			if g.cells[g.index(x, y)] != NoTile {
				continue
			}
			if kind := layout(x, y); kind != NoKind {
				g.CreateTile(x, y, kind)
			}
		}
	}
}

// CreateRandomTile places a tile of a randomly drawn kind at (x, y).
func (g *Grid) CreateRandomTile(x, y int) (TileID, bool) {
	return g.CreateTile(x, y, g.rng.NextKind())
}

// CreateTile places a new tile at (x, y) and reconciles its shape.
// It reports false for out-of-range cells, occupied cells and unknown kinds.
func (g *Grid) CreateTile(x, y int, kind TileKind) (TileID, bool) {
	if !g.inBounds(x, y) || g.cells[g.index(x, y)] != NoTile {
		return NoTile, false
	}
	if kind < 0 || int(kind) >= g.cfg.Kinds {
		return NoTile, false
	}

	id := g.allocTile(kind, core.C(x, y))
	g.cells[g.index(x, y)] = id
	g.occupied++
	g.reconcile(id)
	g.check("create")
	return id, true
}

// Refill spawns random tiles in every empty cell above the topmost tile of
// each column and returns the new cells. Call it after Settle.
func (g *Grid) Refill() []core.Coord {
	var spawned []core.Coord
	for x := 0; x < g.cfg.Width; x++ {
		top := -1
		for y := g.cfg.Height - 1; y >= 0; y-- {
			if g.cells[g.index(x, y)] != NoTile {
				top = y
				break
			}
		}
		for y := top + 1; y < g.cfg.Height; y++ {
			if _, ok := g.CreateRandomTile(x, y); ok {
				spawned = append(spawned, core.C(x, y))
			}
		}
	}
	return spawned
}

func (g *Grid) index(x, y int) int {
	return y*g.cfg.Width + x
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.cfg.Width && y >= 0 && y < g.cfg.Height
}

// tileAt returns the handle in cell c, or NoTile when c is empty or off the grid.
func (g *Grid) tileAt(c core.Coord) TileID {
	if !g.inBounds(c.X, c.Y) {
		return NoTile
	}
	return g.cells[g.index(c.X, c.Y)]
}

func (g *Grid) allocTile(kind TileKind, pos core.Coord) TileID {
	t := tile{kind: kind, pos: pos, shape: NoShape, live: true}
	if n := len(g.freeTiles); n > 0 {
		id := g.freeTiles[n-1]
		g.freeTiles = g.freeTiles[:n-1]
		g.tiles[id] = t
		return id
	}
	g.tiles = append(g.tiles, t)
	return TileID(len(g.tiles) - 1)
}

// freeTile clears the tile's cell and recycles its handle.
// The caller is responsible for its shape membership.
func (g *Grid) freeTile(id TileID) {
	t := g.tiles[id]
	g.cells[g.index(t.pos.X, t.pos.Y)] = NoTile
	g.tiles[id] = tile{shape: NoShape}
	g.freeTiles = append(g.freeTiles, id)
	g.occupied--
}

// moveTile relocates a tile to an empty cell without touching shapes.
func (g *Grid) moveTile(id TileID, to core.Coord) {
	t := &g.tiles[id]
	g.cells[g.index(t.pos.X, t.pos.Y)] = NoTile
	g.cells[g.index(to.X, to.Y)] = id
	t.pos = to
}

// check panics on the first invariant violation when checks are enabled.
func (g *Grid) check(op string) {
	if !g.checks {
		return
	}
	if err := g.Validate(); err != nil {
		panic(fmt.Sprintf("engine: after %s: %v", op, err))
	}
}
