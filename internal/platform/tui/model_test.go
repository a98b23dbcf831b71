package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/biome-crossing/internal/core"
	"github.com/vovakirdan/biome-crossing/internal/games/crossing"
	"github.com/vovakirdan/biome-crossing/internal/levels"
	"github.com/vovakirdan/biome-crossing/internal/registry"
	"github.com/vovakirdan/biome-crossing/internal/storage"
)

func newTestModel(t *testing.T, biome string, store *storage.Store) Model {
	t.Helper()
	game, err := registry.Create(biome)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", biome, err)
	}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5})
	m.Init()
	return m
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func ticks(m Model, n int) Model {
	for i := 0; i < n; i++ {
		m = send(m, TickMsg{Loop: m.loop})
	}
	return m
}

func roundOf(t *testing.T, m Model) *crossing.Round {
	t.Helper()
	g, ok := m.game.(*crossing.Game)
	if !ok || g.Round() == nil {
		t.Fatal("model is not running a crossing round")
	}
	return g.Round()
}

// start dismisses the story card of the first level.
func start(m Model) Model {
	m = send(m, runeKey('n'))
	return ticks(m, 1)
}

func TestModelHeldKeyMovesUntilLapse(t *testing.T) {
	m := start(newTestModel(t, "river", nil))
	r := roundOf(t, m)
	y0 := r.Player().Pos.Y

	m = send(m, runeKey('w'))
	m = ticks(m, 10)
	if r.Player().Pos.Y >= y0 {
		t.Fatalf("y = %v, expected the player to move up from %v", r.Player().Pos.Y, y0)
	}

	// No repeats arrive, so the hold lapses and the player stops.
	m = ticks(m, 40)
	y1 := r.Player().Pos.Y
	ticks(m, 5)
	if r.Player().Pos.Y != y1 {
		t.Errorf("player kept moving after the key lapsed: %v -> %v", y1, r.Player().Pos.Y)
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m := start(newTestModel(t, "river", nil))
	r := roundOf(t, m)
	before := r.Ticks()

	m = send(m, TickMsg{Loop: m.loop + 1000})
	if r.Ticks() != before {
		t.Error("tick from another loop advanced the round")
	}
	ticks(m, 1)
	if r.Ticks() != before+1 {
		t.Errorf("ticks = %d, expected %d", r.Ticks(), before+1)
	}
}

func TestModelSaveAndLoadSlot(t *testing.T) {
	store := openStore(t)
	m := start(newTestModel(t, "space", store))
	r := roundOf(t, m)

	m = send(m, runeKey('s'))
	m = ticks(m, 20)
	want := r.Snapshot().Hash()

	m = send(m, tea.KeyMsg{Type: tea.KeyF5})
	if m.Notice() != "Game saved" {
		t.Fatalf("notice after save = %q", m.Notice())
	}
	if _, err := store.LoadSlot("space", storage.DefaultSlot); err != nil {
		t.Fatalf("slot not written: %v", err)
	}

	m = ticks(m, 30)
	m = send(m, tea.KeyMsg{Type: tea.KeyF9})
	if m.Notice() != "Game loaded" {
		t.Fatalf("notice after load = %q", m.Notice())
	}
	if r.Snapshot().Hash() != want {
		t.Error("load did not restore the saved round")
	}
}

func TestModelLoadWithoutSave(t *testing.T) {
	m := start(newTestModel(t, "squid", openStore(t)))
	m = send(m, tea.KeyMsg{Type: tea.KeyF9})
	if m.Notice() != "No saved game" {
		t.Errorf("notice = %q, expected No saved game", m.Notice())
	}

	m = start(newTestModel(t, "squid", nil))
	m = send(m, tea.KeyMsg{Type: tea.KeyF5})
	if m.Notice() != "Saving is not available" {
		t.Errorf("notice without store = %q", m.Notice())
	}
}

func TestModelNoticeExpires(t *testing.T) {
	m := start(newTestModel(t, "river", nil))
	m.setNotice("hello")
	if !strings.Contains(m.View(), "hello") {
		t.Fatal("notice not drawn")
	}
	m = ticks(m, m.noticeTTL)
	if m.Notice() != "" {
		t.Errorf("notice still shown after its duration: %q", m.Notice())
	}
}

func TestModelRecordsFinishedRunOnce(t *testing.T) {
	store := openStore(t)
	m := start(newTestModel(t, "river", store))
	r := roundOf(t, m)

	// Drop the player into open water on its last life.
	p := r.Player()
	p.Lives = 1
	p.Pos = core.V(400, 560)
	m = ticks(m, 1)
	if r.State() != crossing.StateGameOver || !m.GameState().GameOver {
		t.Fatalf("state = %v, expected game over", r.State())
	}
	m = ticks(m, 10)

	runs, err := store.TopRuns("river", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(runs))
	}
	if runs[0].LevelsCleared != 0 || runs[0].Won {
		t.Errorf("run = %+v", runs[0])
	}

	// Restart clears the flag so the next finished round is recorded too.
	m = send(m, runeKey('r'))
	m = ticks(m, 1)
	if m.GameState().GameOver {
		t.Error("restart did not start a new round")
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	m := start(newTestModel(t, "river", nil))

	m = send(m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back accepted while playing")
	}

	m = send(m, runeKey('p'))
	m = ticks(m, 1)
	m = send(m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back ignored while paused")
	}
}

func TestModelReloadsLevelsAfterRound(t *testing.T) {
	m := ticks(start(newTestModel(t, "river", nil)), 3)

	m = send(m, LevelsChangedMsg(levels.Change{ID: "space"}))
	if m.reload {
		t.Fatal("change to another biome scheduled a reload")
	}

	m = send(m, LevelsChangedMsg(levels.Change{ID: "river"}))
	if !m.reload {
		t.Fatal("reload not scheduled while playing")
	}
	if roundOf(t, m).Ticks() == 0 {
		t.Error("round was reset mid-play")
	}

	// Restart after the round picks up the new files.
	p := roundOf(t, m).Player()
	p.Lives = 1
	p.Pos = core.V(400, 560)
	m = ticks(m, 1)
	m = send(m, runeKey('r'))
	if m.reload || m.Notice() != "Levels reloaded" {
		t.Errorf("reload=%v notice=%q after restart", m.reload, m.Notice())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, "river", nil)
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}
