package core

// RuntimeConfig is what the platform tells a game when it (re)starts.
type RuntimeConfig struct {
	ScreenW, ScreenH int   // terminal cells
	TickRate         int   // Step calls per second
	Seed             int64 // 0 lets the platform pick one from the clock
}

// DefaultConfig is a classic 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is the part of a game the platform cares about each tick.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}

// RunStats summarizes a finished run for the scoreboard.
type RunStats struct {
	Moves        int  // successful pops
	TilesCleared int  // tiles removed over the run
	LargestClear int  // biggest single pop
	BoardCleared bool // the board was emptied
}
