package registry

import (
	"testing"

	"github.com/vovakirdan/biome-crossing/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

// withEmptyRegistry swaps in a clean registry for the duration of a test.
func withEmptyRegistry(t *testing.T) {
	t.Helper()
	saved := entries
	entries = nil
	t.Cleanup(func() { entries = saved })
}

func register(id string) {
	Register(GameInfo{ID: id, Title: "Stub " + id}, func() Game { return stubGame{id: id} })
}

func TestListIsSortedByID(t *testing.T) {
	withEmptyRegistry(t)
	for _, id := range []string{"squid", "river", "space"} {
		register(id)
	}

	got := List()
	want := []string{"river", "space", "squid"}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d games, want %d", len(got), len(want))
	}
	for i, info := range got {
		if info.ID != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, info.ID, want[i])
		}
	}
}

func TestCreateAndLookup(t *testing.T) {
	withEmptyRegistry(t)
	register("river")

	g, err := Create("river")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "river" {
		t.Errorf("ID() = %q, want river", g.ID())
	}
	info, ok := Lookup("river")
	if !ok || info.Title != "Stub river" {
		t.Errorf("Lookup() = %+v, %v", info, ok)
	}

	if _, err := Create("lava"); err == nil {
		t.Error("Create() of an unknown ID should fail")
	}
	if Exists("lava") {
		t.Error("Exists() reported an unknown ID")
	}
}

func TestRegisterDefaultsTitle(t *testing.T) {
	withEmptyRegistry(t)
	Register(GameInfo{ID: "bare"}, func() Game { return stubGame{id: "bare"} })

	if info, _ := Lookup("bare"); info.Title != "bare" {
		t.Errorf("Title = %q, want the ID", info.Title)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		info GameInfo
		f    Factory
	}{
		{"duplicate", GameInfo{ID: "river"}, func() Game { return stubGame{} }},
		{"empty id", GameInfo{}, func() Game { return stubGame{} }},
		{"nil factory", GameInfo{ID: "space"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEmptyRegistry(t)
			register("river")
			defer func() {
				if recover() == nil {
					t.Error("Register() did not panic")
				}
			}()
			Register(tt.info, tt.f)
		})
	}
}
