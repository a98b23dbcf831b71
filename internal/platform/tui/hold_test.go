package tui

import (
	"testing"

	"github.com/vovakirdan/biome-crossing/internal/core"
)

func TestHoldTrackerPressIsEdgeAndHeld(t *testing.T) {
	h := newHoldTracker(60)
	h.Press(core.ActionRight)

	f := h.Frame()
	if !f.Has(core.ActionRight) || !f.IsHeld(core.ActionRight) {
		t.Fatalf("first frame = %+v, expected edge and held", f)
	}

	f = h.Frame()
	if f.Has(core.ActionRight) {
		t.Error("edge repeated on the second frame")
	}
	if !f.IsHeld(core.ActionRight) {
		t.Error("key no longer held on the second frame")
	}
}

func TestHoldTrackerSynthesizesRelease(t *testing.T) {
	h := newHoldTracker(60)
	h.Press(core.ActionJump)

	released := 0
	for i := 1; i <= h.press+2; i++ {
		f := h.Frame()
		if f.WasReleased(core.ActionJump) {
			released = i
			if f.IsHeld(core.ActionJump) {
				t.Error("released key still held")
			}
		}
	}
	if released != h.press+1 {
		t.Errorf("released on frame %d, expected %d", released, h.press+1)
	}

	if f := h.Frame(); f.WasReleased(core.ActionJump) {
		t.Error("release reported twice")
	}
}

func TestHoldTrackerRepeatExtendsWithoutEdge(t *testing.T) {
	h := newHoldTracker(60)
	h.Press(core.ActionUp)

	// Auto-repeat every ~3 ticks well past the initial hold window.
	for i := 1; i <= h.press*3; i++ {
		if i%3 == 0 {
			h.Press(core.ActionUp)
		}
		f := h.Frame()
		if i > 1 && f.Has(core.ActionUp) {
			t.Fatalf("repeat produced an edge on frame %d", i)
		}
		if !f.IsHeld(core.ActionUp) {
			t.Fatalf("held key dropped on frame %d", i)
		}
	}

	// Repeats stop: the key lapses after the short repeat window.
	lapsed := false
	for i := 0; i < h.repeat+2; i++ {
		if h.Frame().WasReleased(core.ActionUp) {
			lapsed = true
		}
	}
	if !lapsed {
		t.Error("key not released after repeats stopped")
	}
}

func TestHoldTrackerTapActions(t *testing.T) {
	h := newHoldTracker(60)
	h.Press(core.ActionPause)
	h.Press(core.ActionNone)

	f := h.Frame()
	if !f.Has(core.ActionPause) {
		t.Fatal("pause edge missing")
	}
	if h.Frame().IsHeld(core.ActionPause) {
		t.Error("pause should not be held past its frame")
	}
}

func TestHoldTrackerReset(t *testing.T) {
	h := newHoldTracker(60)
	h.Press(core.ActionLeft)
	h.Reset()

	f := h.Frame()
	if f.IsHeld(core.ActionLeft) || f.WasReleased(core.ActionLeft) {
		t.Errorf("reset tracker still reports the key: %+v", f)
	}
}

func TestTicksFor(t *testing.T) {
	tests := []struct {
		rate int
		want int
	}{
		{60, 30},
		{30, 15},
		{1, 1},
	}
	for _, tc := range tests {
		if got := ticksFor(pressHold, tc.rate); got != tc.want {
			t.Errorf("ticksFor(%v, %d) = %d, expected %d", pressHold, tc.rate, got, tc.want)
		}
	}
}
