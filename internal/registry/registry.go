// Package registry maps mode IDs to game factories. Modes register from
// init, so the CLI, the SSH server and the leaderboard API discover them
// by importing the game package for its side effects.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/shapefall/internal/core"
)

// Game is a tick-driven puzzle. It never sees the terminal: the platform
// maps keys to actions, paces Step and paints the Screen.
type Game interface {
	ID() string    // stable key for scores and the CLI
	Title() string // shown in menus

	// Reset starts a new run sized and seeded from cfg.
	Reset(cfg core.RuntimeConfig)

	// Step applies one tick of input and advances animations.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the game clears itself.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizer is implemented by games that keep their state across terminal
// resizes. Other games are reset when the window changes size.
type Resizer interface {
	Resize(w, h int)
}

// StatsReporter is implemented by games that record per-run statistics.
type StatsReporter interface {
	Stats() core.RunStats
}

// Describer is implemented by games that offer a one-line blurb for menus.
type Describer interface {
	Description() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory under id. Games call it from init().
// The title is read once from a throwaway instance.
// Panics if id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, taken := entries[id]; taken {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(infos, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return infos
}

// Create returns a fresh instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
