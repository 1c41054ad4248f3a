package shapefall

import "github.com/vovakirdan/shapefall/internal/engine"

// GameStateType names what the game is doing, for snapshots and logs.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateAnimating    GameStateType = "animating"
	StateBoardCleared GameStateType = "board_cleared"
	StateGameOver     GameStateType = "game_over"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot is a plain copy of the run: the board as kinds plus counters.
// Two games with the same seed and input produce equal snapshots.
type Snapshot struct {
	Tick    uint64
	Mode    string // "classic" or "endless"
	Seed    int64
	Score   int
	CursorX int
	CursorY int
	Board   [][]engine.TileKind // Board[y][x], row 0 at the bottom
	Shapes  int
	Largest int
	Moves   int
	Cleared int // tiles cleared so far
	State   GameStateType
}

// Snapshot captures the current run.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.cleared:
		state = StateBoardCleared
	case g.gameOver:
		state = StateGameOver
	case g.animPhase != PhaseNone:
		state = StateAnimating
	}

	snap := Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Seed:    g.seed,
		Score:   g.score,
		CursorX: g.cursor.X,
		CursorY: g.cursor.Y,
		Moves:   g.stats.Moves,
		Cleared: g.stats.TilesCleared,
		State:   state,
	}
	if g.grid == nil {
		return snap
	}

	w, h := g.grid.Dimensions()
	snap.Board = make([][]engine.TileKind, h)
	for y := range h {
		snap.Board[y] = make([]engine.TileKind, w)
		for x := range w {
			snap.Board[y][x] = g.grid.KindAt(x, y)
		}
	}
	snap.Shapes = g.grid.ShapeCount()
	snap.Largest = g.grid.LargestShape()
	return snap
}
