// Package tui provides the Bubble Tea host for the crossing biomes.
// It runs the fixed-rate tick loop, emulates held keys, draws the screen
// buffer and serves sessions over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Loop identifies the tick chain so a model ignores ticks left over from a
// previous game in the same program.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

var loops atomic.Uint64

// nextLoop returns a fresh tick chain ID.
func nextLoop() uint64 {
	return loops.Add(1)
}

// tickCmd schedules the next simulation tick at the given rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
