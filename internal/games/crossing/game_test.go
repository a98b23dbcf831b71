package crossing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/biome-crossing/internal/core"
	"github.com/vovakirdan/biome-crossing/internal/registry"
)

func newTestGame(t *testing.T, b Biome) *Game {
	t.Helper()
	g := New(b)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99})
	if g.Err() != nil {
		t.Fatalf("Reset() failed: %v", g.Err())
	}
	return g
}

func confirm() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	return in
}

func TestBiomesRegistered(t *testing.T) {
	for _, b := range Biomes {
		if !registry.Exists(b.ID()) {
			t.Errorf("biome %q not registered", b.ID())
		}
		g, err := registry.Create(b.ID())
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", b.ID(), err)
		}
		if g.Title() != b.Title() {
			t.Errorf("Title() = %q, expected %q", g.Title(), b.Title())
		}
		if info, _ := registry.Lookup(b.ID()); info.Summary == "" {
			t.Errorf("%q registered without a summary", b.ID())
		}
		if _, ok := g.(registry.Saver); !ok {
			t.Errorf("%q does not implement registry.Saver", b.ID())
		}
	}
}

func TestParseBiome(t *testing.T) {
	for _, b := range Biomes {
		got, err := ParseBiome(b.ID())
		if err != nil || got != b {
			t.Errorf("ParseBiome(%q) = %v, %v", b.ID(), got, err)
		}
	}
	if _, err := ParseBiome("desert"); err == nil {
		t.Error("ParseBiome(desert) succeeded")
	}
}

func TestGameStoryCardHoldsSimulation(t *testing.T) {
	g := newTestGame(t, River)
	tick0 := g.Round().Ticks()

	g.Step(core.NewInputFrame())
	if g.Round().Ticks() != tick0 {
		t.Fatal("simulation ran behind the story card")
	}

	g.Step(confirm())
	g.Step(core.NewInputFrame())
	if g.Round().Ticks() != tick0+1 {
		t.Errorf("ticks = %d, expected %d after dismissing the card", g.Round().Ticks(), tick0+1)
	}
}

func TestGameAdvancesLevelsAndRestarts(t *testing.T) {
	g := newTestGame(t, River)
	g.Step(confirm())

	r := g.Round()
	emptyField(r)
	r.player.Pos = core.V(770, 300)
	g.Step(core.NewInputFrame())
	if r.State() != StateWon {
		t.Fatalf("state = %v, expected won", r.State())
	}

	res := g.Step(confirm())
	if r.Level() != 1 || !strings.Contains(res.Notice, "Level 2") {
		t.Errorf("level=%d notice=%q after confirm", r.Level(), res.Notice)
	}
	if res.State.Level != 2 {
		t.Errorf("State.Level = %d, expected 2", res.State.Level)
	}

	g.Step(confirm()) // story card
	emptyField(r)
	r.player.Pos = core.V(770, 300)
	g.Step(core.NewInputFrame())
	g.Step(confirm())
	if r.State() != StateComplete || !g.State().Won {
		t.Fatalf("state = %v, expected complete", r.State())
	}

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	g.Step(restart)
	if r.State() != StatePlaying || r.Level() != 0 {
		t.Errorf("restart: state=%v level=%d", r.State(), r.Level())
	}
}

func TestGameSaveLoadState(t *testing.T) {
	g := newTestGame(t, Space)
	g.Step(confirm())
	in := core.NewInputFrame()
	in.Hold(core.ActionDown)
	for i := 0; i < 40; i++ {
		g.Step(in)
	}

	data, err := g.SaveState()
	if err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}
	want := g.Snapshot().Hash()

	for i := 0; i < 40; i++ {
		g.Step(in)
	}
	if err := g.LoadState(data); err != nil {
		t.Fatalf("LoadState() failed: %v", err)
	}
	if g.Snapshot().Hash() != want {
		t.Error("LoadState() did not restore the saved round")
	}

	before := g.Snapshot().Hash()
	if err := g.LoadState(nil); !errors.Is(err, ErrNoSave) {
		t.Errorf("LoadState(nil) = %v, expected ErrNoSave", err)
	}
	if g.Snapshot().Hash() != before {
		t.Error("failed load changed the round")
	}

	other := newTestGame(t, River)
	if err := other.LoadState(data); !errors.Is(err, ErrSaveMismatch) {
		t.Errorf("loading a space save into river = %v, expected ErrSaveMismatch", err)
	}
}

func TestGameLevelsDirOverride(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`title: Short River
levels:
  - name: Puddle
    platforms:
      - {row: 2, col: 3, left_bound: 1, right_bound: 6, speed: 30}
`)
	if err := os.WriteFile(filepath.Join(dir, "river.yaml"), data, 0o600); err != nil {
		t.Fatal(err)
	}
	SetLevelsDir(dir)
	defer SetLevelsDir("")

	g := newTestGame(t, River)
	if g.Round().Levels() != 1 || g.Round().LevelName() != "Puddle" {
		t.Errorf("override not used: levels=%d name=%q", g.Round().Levels(), g.Round().LevelName())
	}
}

func TestGameBrokenLevelsFailReset(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "squid.yaml"), []byte("levels: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetLevelsDir(dir)
	defer SetLevelsDir("")

	g := New(Squid)
	g.Reset(core.DefaultConfig())
	if g.Err() == nil {
		t.Fatal("Reset() accepted an empty level set")
	}
	if !g.State().GameOver {
		t.Error("failed game should report game over")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Cannot start") {
		t.Error("failure not rendered")
	}
}

func TestGameRender(t *testing.T) {
	for _, b := range Biomes {
		t.Run(b.ID(), func(t *testing.T) {
			g := newTestGame(t, b)
			screen := core.NewScreen(80, 24)

			g.Render(screen)
			if !strings.Contains(screen.String(), "Enter to start") {
				t.Error("story card missing")
			}

			g.Step(confirm())
			g.Render(screen)
			out := screen.String()
			if !strings.Contains(screen.Row(0), b.Title()) {
				t.Errorf("HUD missing title: %q", screen.Row(0))
			}
			if !strings.Contains(out, "@") {
				t.Error("player not drawn")
			}
			if !strings.Contains(out, "=") {
				t.Error("platforms not drawn")
			}
			if b == Squid && !strings.Contains(out, "[D]") {
				t.Error("sentinel not drawn")
			}
		})
	}
}

func TestActionModeNamesParse(t *testing.T) {
	for _, a := range []ActionMode{ActionJump, ActionHoverHold, ActionHoverToggle, ActionNone} {
		if got := parseActionMode(a.String()); got != a {
			t.Errorf("parseActionMode(%q) = %v, expected %v", a.String(), got, a)
		}
	}
	if got := parseActionMode("cartwheel"); got != ActionJump {
		t.Errorf("unknown action = %v, expected jump", got)
	}
}
