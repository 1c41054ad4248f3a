package core

// Action is a player intent, decoupled from the key or click that caused it.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionSelect  // pop the shape under the cursor
	ActionBack    // leave to the menu
	ActionRestart // new board, same mode
	ActionQuit
	ActionPause
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Select", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame collects everything the player did during one tick.
type InputFrame struct {
	actions uint16

	// Pointer is the screen cell of a click this tick, if any.
	// Games map it to their own coordinates.
	Pointer *Coord
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame { return InputFrame{} }

// Set marks a as triggered this tick.
func (f *InputFrame) Set(a Action) {
	if a != ActionNone && a < actionCount {
		f.actions |= 1 << a
	}
}

// Click records a press at screen cell (x, y).
func (f *InputFrame) Click(x, y int) {
	p := C(x, y)
	f.Pointer = &p
}

// Has reports whether a was triggered this tick.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.actions&(1<<a) != 0
}

// Empty reports whether nothing happened this tick.
func (f InputFrame) Empty() bool {
	return f.actions == 0 && f.Pointer == nil
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

// Clone returns a copy that does not share the pointer cell.
func (f InputFrame) Clone() InputFrame {
	if f.Pointer != nil {
		p := *f.Pointer
		f.Pointer = &p
	}
	return f
}
