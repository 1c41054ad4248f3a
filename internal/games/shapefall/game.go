// Package shapefall implements a tile-matching puzzle where same-colored
// regions are popped and the tiles above them fall into the gaps.
package shapefall

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shapefall/internal/config"
	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/engine"
	"github.com/vovakirdan/shapefall/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeEndless Mode = "endless"
)

// Game adapts the grid engine to the platform's tick loop.
type Game struct {
	mode     Mode
	settings config.ShapefallConfig
	colors   []core.Color
	logger   *log.Logger

	grid    *engine.Grid
	seed    int64
	tick    uint64
	cursor  core.Coord
	runtime core.RuntimeConfig
	err     error

	score int
	stats core.RunStats

	// Animation state
	animPhase  AnimationPhase
	animTicks  int
	flashCells []core.Coord
	flashKind  engine.TileKind
	drops      []engine.Move

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver bool
	cleared  bool // board emptied
	paused   bool
	tooSmall bool
}

// Package-level variables for config
var (
	currentSettings = config.DefaultShapefallConfig()
	engineLogger    = log.New(io.Discard)
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.ShapefallConfig) {
	currentSettings = cfg
}

// SetLogger routes engine diagnostics of games created afterwards to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		engineLogger = l
	}
}

// New creates a classic mode game with the current settings.
func New() *Game {
	return NewWithConfig(ModeClassic, currentSettings)
}

// NewEndless creates an endless mode game with the current settings.
func NewEndless() *Game {
	return NewWithConfig(ModeEndless, currentSettings)
}

// NewWithConfig creates a game with explicit settings.
func NewWithConfig(mode Mode, cfg config.ShapefallConfig) *Game {
	return &Game{
		mode:     mode,
		settings: cfg,
		colors:   cfg.Colors(),
		logger:   engineLogger,
	}
}

func init() {
	registry.Register("shapefall", func() registry.Game {
		return New()
	})
	registry.Register("shapefall_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "shapefall_endless"
	}
	return "shapefall"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Shapefall (Endless)"
	}
	return "Shapefall"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.seed = cfg.Seed
	g.newPuzzle()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// newPuzzle builds a fresh grid from the current seed.
func (g *Game) newPuzzle() {
	g.tick = 0
	g.score = 0
	g.stats = core.RunStats{}
	g.gameOver = false
	g.cleared = false
	g.paused = false
	g.clearAnimation()

	ecfg := g.settings.Engine()
	grid, err := engine.New(ecfg, engine.NewRandomizer(ecfg.Kinds, g.seed), engine.WithLogger(g.logger))
	if err != nil {
		g.err = err
		g.grid = nil
		g.gameOver = true
		return
	}
	g.err = nil
	g.grid = grid
	g.populate()

	g.cursor = core.C(ecfg.Width/2, ecfg.Height-1)
	g.checkGameOver()
}

// populate fills the grid bottom row first. A starting count below the
// board capacity leaves the top cells empty.
func (g *Game) populate() {
	placed := g.grid.PopulateCount(g.settings.Tiles.StartingCount)
	g.logger.Debug("board populated", "tiles", placed, "seed", g.seed)
}

// Resize adapts the layout to a new screen size without touching the puzzle.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	l := g.layout()
	g.tooSmall = g.screenW < l.boardW || g.screenH < l.boardH+hudHeight+1
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.grid == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Restart mid-run; after game over the platform restarts with a new seed.
	if in.Has(core.ActionRestart) && !g.gameOver {
		g.seed++
		g.newPuzzle()
		return core.StepResult{State: g.State()}
	}

	if g.animPhase != PhaseNone {
		g.updateAnimation()
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || in.Empty() {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if in.Pointer != nil {
		if c, ok := g.cellAt(*in.Pointer); ok {
			g.cursor = c
			g.selectAt(c)
		}
	} else if in.Has(core.ActionSelect) {
		g.selectAt(g.cursor)
	}

	return core.StepResult{State: g.State()}
}

// moveCursor applies directional input. Up moves toward the top row.
func (g *Game) moveCursor(in core.InputFrame) {
	var d core.Dir
	switch {
	case in.Has(core.ActionUp):
		d = core.DirNorth
	case in.Has(core.ActionDown):
		d = core.DirSouth
	case in.Has(core.ActionLeft):
		d = core.DirWest
	case in.Has(core.ActionRight):
		d = core.DirEast
	default:
		return
	}

	w, h := g.grid.Dimensions()
	next := g.cursor.Step(d)
	g.cursor = core.C(core.Clamp(next.X, 0, w-1), core.Clamp(next.Y, 0, h-1))
}

// selectAt pops the shape under c when it is large enough.
func (g *Game) selectAt(c core.Coord) {
	m, outcome := g.grid.Interact(c.X, c.Y)
	if outcome != engine.OutcomeCleared {
		return
	}

	n := m.Size()
	g.score += g.settings.Points(n)
	g.stats.Moves++
	g.stats.TilesCleared += n
	g.stats.LargestClear = max(g.stats.LargestClear, n)

	g.startFlashAnimation(m)
}

// afterSettle runs once the drop animation has finished.
func (g *Game) afterSettle() {
	if g.grid.OccupiedCount() == 0 {
		g.score += g.settings.Rules.ClearBonus
		g.cleared = true
		g.stats.BoardCleared = true
		g.gameOver = true
		g.logRunEnd()
		return
	}
	g.checkGameOver()
}

func (g *Game) checkGameOver() {
	if !g.grid.HasMatches() {
		g.gameOver = true
		g.logRunEnd()
	}
}

func (g *Game) logRunEnd() {
	s := g.Snapshot()
	g.logger.Debug("run over",
		"mode", s.Mode, "state", s.State, "seed", s.Seed, "score", s.Score,
		"moves", s.Moves, "tiles_left", g.grid.OccupiedCount(), "shapes", s.Shapes)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Stats returns the counters of the current run.
func (g *Game) Stats() core.RunStats {
	return g.stats
}

// Grid exposes the engine for read-only inspection.
func (g *Game) Grid() *engine.Grid {
	return g.grid
}

// Cursor returns the selected cell.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}
