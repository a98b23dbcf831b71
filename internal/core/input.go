package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionJump           // Space - jump or hover, depending on the biome
	ActionPause          // P, Escape
	ActionConfirm        // Enter - continue after a level is cleared
	ActionBack           // B - back to menu
	ActionRestart        // R - new game after game over
	ActionQuit           // Q, Ctrl+C
	ActionSave           // F5
	ActionLoad           // F9
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state for one simulation tick.
//
// Actions holds key-down edges that happened this tick, Held the keys that
// are currently down, and Released the key-up edges. A press sets both the
// edge and the held flag so a single frame can carry a tap.
type InputFrame struct {
	Actions  map[Action]bool
	Held     map[Action]bool
	Released map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions:  make(map[Action]bool),
		Held:     make(map[Action]bool),
		Released: make(map[Action]bool),
	}
}

// Set marks a key-down edge for the action; the action also counts as held.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Hold(a)
}

// Hold marks the action as held without a key-down edge.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Release marks a key-up edge for the action.
func (f *InputFrame) Release(a Action) {
	if f.Released == nil {
		f.Released = make(map[Action]bool)
	}
	f.Released[a] = true
	delete(f.Held, a)
}

// Has returns true if the action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// IsHeld returns true if the action is currently down.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a] || f.Actions[a]
}

// WasReleased returns true if the action was released this frame.
func (f InputFrame) WasReleased(a Action) bool {
	return f.Released[a]
}

// Clear resets edges and held state for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Held)
	clear(f.Released)
}

// ClearEdges drops pressed/released edges but keeps held keys.
func (f *InputFrame) ClearEdges() {
	clear(f.Actions)
	clear(f.Released)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	for k, v := range f.Held {
		c.Held[k] = v
	}
	for k, v := range f.Released {
		c.Released[k] = v
	}
	return c
}
