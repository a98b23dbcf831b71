package tui

import (
	"time"

	"github.com/vovakirdan/biome-crossing/internal/core"
)

// Terminals report key presses and auto-repeats but never releases.
// A fresh press counts as held long enough to bridge the repeat delay;
// each repeat then only extends the hold by a short window.
const (
	pressHold  = 500 * time.Millisecond
	repeatHold = 120 * time.Millisecond
)

// holdable lists the actions whose held state matters to the simulation.
var holdable = map[core.Action]bool{
	core.ActionUp:    true,
	core.ActionDown:  true,
	core.ActionLeft:  true,
	core.ActionRight: true,
	core.ActionJump:  true,
}

// holdTracker turns a stream of key presses into per-tick input frames with
// held state and synthesized release edges.
type holdTracker struct {
	tick    int
	press   int // ticks a fresh press stays held
	repeat  int // ticks a repeat extends the hold
	until   map[core.Action]int
	pending core.InputFrame
}

func newHoldTracker(tickRate int) holdTracker {
	if tickRate <= 0 {
		tickRate = 60
	}
	return holdTracker{
		press:   ticksFor(pressHold, tickRate),
		repeat:  ticksFor(repeatHold, tickRate),
		until:   make(map[core.Action]int),
		pending: core.NewInputFrame(),
	}
}

func ticksFor(d time.Duration, tickRate int) int {
	n := int(d * time.Duration(tickRate) / time.Second)
	if n < 1 {
		n = 1
	}
	return n
}

// Press records a key press. A press of an action that is already held is
// treated as auto-repeat and produces no new edge.
func (h *holdTracker) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if !holdable[a] {
		h.pending.Set(a)
		return
	}
	if until, held := h.until[a]; held {
		h.until[a] = max(until, h.tick+h.repeat)
		return
	}
	h.pending.Set(a)
	h.until[a] = h.tick + h.press
}

// Frame advances one tick and returns the input for it.
func (h *holdTracker) Frame() core.InputFrame {
	h.tick++
	frame := h.pending.Clone()
	h.pending.Clear()

	for a, until := range h.until {
		if until < h.tick {
			frame.Release(a)
			delete(h.until, a)
			continue
		}
		frame.Hold(a)
	}
	return frame
}

// Reset drops every held key without emitting releases.
func (h *holdTracker) Reset() {
	clear(h.until)
	h.pending.Clear()
}
