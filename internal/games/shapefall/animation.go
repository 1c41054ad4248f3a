package shapefall

import (
	"math"

	"github.com/vovakirdan/shapefall/internal/core"
	"github.com/vovakirdan/shapefall/internal/engine"
)

// Animation constants
const (
	flashAnimationDuration = 12 // ~200ms at 60fps
	dropAnimationDuration  = 10 // ~166ms at 60fps
	flashBlinkTicks        = 3
)

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseFlash
	PhaseDrop
)

// startFlashAnimation blinks the cleared cells before the board settles.
func (g *Game) startFlashAnimation(m engine.Match) {
	g.flashCells = m.Cells
	g.flashKind = m.Kind
	g.drops = nil
	g.animPhase = PhaseFlash
	g.animTicks = 0
}

// startDropAnimation slides settled tiles from their old cells.
func (g *Game) startDropAnimation(moves []engine.Move) {
	g.flashCells = nil
	g.drops = moves
	g.animPhase = PhaseDrop
	g.animTicks = 0
}

// updateAnimation advances the animation state.
// Returns true if animation is still in progress.
func (g *Game) updateAnimation() bool {
	if g.animPhase == PhaseNone {
		return false
	}

	g.animTicks++

	var duration int
	switch g.animPhase {
	case PhaseFlash:
		duration = flashAnimationDuration
	case PhaseDrop:
		duration = dropAnimationDuration
	default:
		g.clearAnimation()
		return false
	}

	if g.animTicks >= duration {
		g.finishAnimation()
		return g.animPhase != PhaseNone
	}
	return true
}

// finishAnimation completes the current animation phase.
func (g *Game) finishAnimation() {
	if g.animPhase == PhaseFlash {
		moves := g.grid.Settle()
		if g.mode == ModeEndless {
			g.grid.Refill()
		}
		if len(moves) > 0 {
			g.startDropAnimation(moves)
			return
		}
	}

	g.clearAnimation()
	g.afterSettle()
}

func (g *Game) clearAnimation() {
	g.animPhase = PhaseNone
	g.animTicks = 0
	g.flashCells = nil
	g.drops = nil
}

// flashVisible reports whether flashing cells are drawn this tick.
func (g *Game) flashVisible() bool {
	return (g.animTicks/flashBlinkTicks)%2 == 0
}

// dropProgress returns the eased progress of the drop phase.
func (g *Game) dropProgress() float64 {
	t := float64(g.animTicks) / float64(dropAnimationDuration)
	if t > 1.0 {
		t = 1.0
	}
	return easeInQuad(t)
}

// easeInQuad accelerates like a falling tile.
func easeInQuad(t float64) float64 {
	return t * t
}

// dropRow returns the row a dropping tile is drawn on.
func dropRow(m engine.Move, progress float64) int {
	y := float64(m.From.Y) + float64(m.To.Y-m.From.Y)*progress
	return int(math.Round(y))
}

// dropping returns the move for the tile resting at c, if it is still falling.
func (g *Game) dropping(c core.Coord) (engine.Move, bool) {
	if g.animPhase != PhaseDrop {
		return engine.Move{}, false
	}
	for _, m := range g.drops {
		if m.To == c {
			return m, true
		}
	}
	return engine.Move{}, false
}
