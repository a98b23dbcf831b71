// Package registry maps biome IDs to game factories. Each game package
// registers its biomes from init, so hosts only need a blank import.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/biome-crossing/internal/core"
)

// Game is one playable biome. Implementations are pure simulation: the host
// owns timing, key handling and the terminal.
type Game interface {
	// ID is the stable key used on the command line, in level files and in save slots.
	ID() string
	Title() string

	// Reset starts a fresh round. It is called before the first Step and on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances exactly one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a screen the host has already cleared.
	Render(dst *core.Screen)

	State() core.GameState
}

// Saver is implemented by games whose live state can be written to a save
// slot and restored. A failed LoadState leaves the running game untouched.
type Saver interface {
	SaveState() ([]byte, error)
	LoadState(data []byte) error
}

// GameInfo describes a registered game for menus and listings.
type GameInfo struct {
	ID      string
	Title   string
	Summary string // one line shown under the title, may be empty
}

// Factory returns a new, not yet Reset, game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries []entry // kept sorted by ID
)

// Register adds a game. It panics on an empty or duplicate ID, which can
// only happen through a programming error in an init function.
func Register(info GameInfo, f Factory) {
	if info.ID == "" || f == nil {
		panic("registry: Register needs an ID and a factory")
	}
	if info.Title == "" {
		info.Title = info.ID
	}

	mu.Lock()
	defer mu.Unlock()

	i, found := slices.BinarySearchFunc(entries, info.ID, func(e entry, id string) int {
		return strings.Compare(e.info.ID, id)
	})
	if found {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries = slices.Insert(entries, i, entry{info: info, factory: f})
}

// List returns every registered game, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, bool) {
	e, ok := find(id)
	return e.info, ok
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := find(id)
	return ok
}

// Create returns a new instance of the game registered as id.
func Create(id string) (Game, error) {
	e, ok := find(id)
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

func find(id string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()

	i, found := slices.BinarySearchFunc(entries, id, func(e entry, id string) int {
		return strings.Compare(e.info.ID, id)
	})
	if !found {
		return entry{}, false
	}
	return entries[i], true
}
