// Package sim plays many seeded puzzles with a fixed selection policy and
// summarizes the scores. It is used to tune board sizes, palettes and
// difficulty presets without playing by hand.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/shapefall/internal/config"
	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/engine"
)

// ErrInvalidOptions is returned when Options cannot describe a run.
var ErrInvalidOptions = errors.New("sim: invalid options")

// Policy decides which clearable shape a simulated player pops.
type Policy string

const (
	PolicyGreedy Policy = "greedy" // largest shape, lowest handle on ties
	PolicyLowest Policy = "lowest" // shape reaching the lowest cell
	PolicyRandom Policy = "random" // uniform among clearable shapes
)

// Policies lists every known policy.
var Policies = []Policy{PolicyGreedy, PolicyLowest, PolicyRandom}

// ParsePolicy resolves a policy name.
func ParsePolicy(name string) (Policy, error) {
	for _, p := range Policies {
		if Policy(name) == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown policy %q", ErrInvalidOptions, name)
}

// defaultMaxMoves bounds endless runs, which may never run out of shapes.
const defaultMaxMoves = 500

// Options configures a batch of simulated games.
type Options struct {
	Games    int    // number of games to play
	Workers  int    // concurrent players, 0 means 1
	Seed     int64  // game i uses Seed+i
	Policy   Policy // empty means greedy
	Endless  bool   // refill after every settle
	MaxMoves int    // per-game cap, 0 means 500

	// Progress enables a progress bar written to Output (stderr when nil).
	Progress bool
	Output   io.Writer
}

func (o Options) withDefaults() (Options, error) {
	if o.Games < 1 {
		return o, fmt.Errorf("%w: games %d must be at least 1", ErrInvalidOptions, o.Games)
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	o.Workers = min(o.Workers, o.Games)
	if o.Policy == "" {
		o.Policy = PolicyGreedy
	}
	if _, err := ParsePolicy(string(o.Policy)); err != nil {
		return o, err
	}
	if o.MaxMoves <= 0 {
		o.MaxMoves = defaultMaxMoves
	}
	if o.Output == nil {
		o.Output = os.Stderr
	}
	return o, nil
}

// Result is the outcome of one simulated game.
type Result struct {
	Seed      int64
	Score     int
	Stats     core.RunStats
	TilesLeft int
}

// Play runs one game to completion with the given seed.
func Play(cfg config.ShapefallConfig, opts Options, seed int64) (Result, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return Result{}, err
	}
	return play(cfg, opts, seed)
}

func play(cfg config.ShapefallConfig, opts Options, seed int64) (Result, error) {
	ecfg := cfg.Engine()
	grid, err := engine.New(ecfg, engine.NewRandomizer(ecfg.Kinds, seed))
	if err != nil {
		return Result{}, err
	}
	grid.PopulateCount(ecfg.StartingCount)

	res := Result{Seed: seed}
	pick := chooser(opts.Policy, seed)

	for res.Stats.Moves < opts.MaxMoves {
		target, ok := pick(grid)
		if !ok {
			break
		}

		m, outcome := grid.Interact(target.X, target.Y)
		if outcome != engine.OutcomeCleared {
			return res, fmt.Errorf("sim: seed %d: pop at %s returned %s", seed, target, outcome)
		}

		n := m.Size()
		res.Score += cfg.Points(n)
		res.Stats.Moves++
		res.Stats.TilesCleared += n
		res.Stats.LargestClear = max(res.Stats.LargestClear, n)

		grid.Settle()
		if opts.Endless {
			grid.Refill()
		}

		if grid.OccupiedCount() == 0 {
			res.Score += cfg.Rules.ClearBonus
			res.Stats.BoardCleared = true
			break
		}
	}

	res.TilesLeft = grid.OccupiedCount()
	return res, nil
}

// chooser returns the selection function for a policy. It reports false
// when no shape can be popped.
func chooser(p Policy, seed int64) func(*engine.Grid) (core.Coord, bool) {
	var rng *rand.Rand
	if p == PolicyRandom {
		rng = rand.New(rand.NewSource(seed))
	}

	return func(g *engine.Grid) (core.Coord, bool) {
		var candidates []engine.ShapeView
		for _, s := range g.Shapes() {
			if s.Size() >= g.MinMatch() {
				candidates = append(candidates, s)
			}
		}
		if len(candidates) == 0 {
			return core.Coord{}, false
		}

		best := candidates[0]
		switch p {
		case PolicyRandom:
			best = candidates[rng.Intn(len(candidates))]
		case PolicyLowest:
			for _, s := range candidates[1:] {
				if s.Cells[0].Less(best.Cells[0]) {
					best = s
				}
			}
		default:
			for _, s := range candidates[1:] {
				if s.Size() > best.Size() {
					best = s
				}
			}
		}
		return best.Cells[0], true
	}
}

// Run plays opts.Games games across opts.Workers goroutines. Results are
// ordered by seed regardless of which worker played them. A cancelled
// context stops the batch and returns ctx.Err().
func Run(ctx context.Context, cfg config.ShapefallConfig, opts Options) (*Report, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := opts.Output
	if !opts.Progress {
		out = io.Discard
	}
	bar := pb.New(opts.Games).SetWriter(out).Start()
	start := time.Now()

	results, err := runPool(ctx, opts, bar, func(seed int64) (Result, error) {
		return play(cfg, opts, seed)
	})
	bar.Finish()
	if err != nil {
		return nil, err
	}

	report := summarize(results, opts)
	report.Elapsed = time.Since(start)
	return report, nil
}

// runPool feeds seeds to opts.Workers goroutines. The first error cancels
// the batch: no further jobs are sent and queued ones are skipped.
func runPool(ctx context.Context, opts Options, bar *pb.ProgressBar, fn func(seed int64) (Result, error)) ([]Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, opts.Games)
	jobs := make(chan int, opts.Workers)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	wg.Add(opts.Workers)
	for range opts.Workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				res, err := fn(opts.Seed + int64(i))
				if err != nil {
					fail(err)
					continue
				}
				results[i] = res
				bar.Increment()
			}
		}()
	}

feed:
	for i := range opts.Games {
		select {
		case <-ctx.Done():
			fail(ctx.Err())
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
