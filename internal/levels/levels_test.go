package levels

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var testGrid = Grid{Columns: 6, Rows: 3}

func TestBuiltinSets(t *testing.T) {
	tests := []struct {
		id        string
		levels    int
		needCoins []int
		enemies   []int
	}{
		{"river", 2, []int{0, 0}, []int{2, 1}},
		{"space", 2, []int{4, 4}, []int{0, 2}},
		{"squid", 2, []int{4, 6}, []int{2, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			s, err := Builtin(tc.id)
			if err != nil {
				t.Fatalf("Builtin(%q) failed: %v", tc.id, err)
			}
			if err := s.Validate(testGrid); err != nil {
				t.Fatalf("built-in set does not validate: %v", err)
			}
			if s.Len() != tc.levels {
				t.Fatalf("Len() = %d, expected %d", s.Len(), tc.levels)
			}
			for i, l := range s.Levels {
				if l.NeedCoins != tc.needCoins[i] {
					t.Errorf("level %d NeedCoins = %d, expected %d", i, l.NeedCoins, tc.needCoins[i])
				}
				if len(l.Enemies) != tc.enemies[i] {
					t.Errorf("level %d enemies = %d, expected %d", i, len(l.Enemies), tc.enemies[i])
				}
				if l.TotalCoins() < l.NeedCoins {
					t.Errorf("level %d quota %d exceeds available coins %d", i, l.NeedCoins, l.TotalCoins())
				}
			}
		})
	}
}

func TestBuiltinIDs(t *testing.T) {
	ids := BuiltinIDs()
	expected := []string{"river", "space", "squid"}
	if len(ids) != len(expected) {
		t.Fatalf("BuiltinIDs() = %v", ids)
	}
	for i := range ids {
		if ids[i] != expected[i] {
			t.Errorf("BuiltinIDs()[%d] = %q, expected %q", i, ids[i], expected[i])
		}
	}
}

func TestLevelValidate(t *testing.T) {
	good := PlatformSpec{Row: 1, Col: 2, LeftBound: 1, RightBound: 3, Speed: 60}

	tests := []struct {
		name   string
		mutate func(*Level)
	}{
		{"no platforms", func(l *Level) { l.Platforms = nil }},
		{"row zero", func(l *Level) { l.Platforms[0].Row = 0 }},
		{"row too high", func(l *Level) { l.Platforms[0].Row = 4 }},
		{"col too high", func(l *Level) { l.Platforms[0].Col = 7 }},
		{"bounds reversed", func(l *Level) { l.Platforms[0].LeftBound, l.Platforms[0].RightBound = 4, 2 }},
		{"bounds equal", func(l *Level) { l.Platforms[0].RightBound = 1 }},
		{"zero speed", func(l *Level) { l.Platforms[0].Speed = 0 }},
		{"negative coins", func(l *Level) { l.Platforms[0].Coins = -1 }},
		{"negative quota", func(l *Level) { l.NeedCoins = -2 }},
		{"quota above coins", func(l *Level) { l.Platforms[0].Coins = 3; l.NeedCoins = 4 }},
		{"negative enemy speed", func(l *Level) { l.Enemies = []EnemySpec{{X: 1, Y: 1, Speed: -5}} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := Level{Platforms: []PlatformSpec{good}}
			tc.mutate(&l)
			if err := l.Validate(testGrid); !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("Validate() = %v, expected ErrInvalidLevel", err)
			}
		})
	}

	if err := (Level{Platforms: []PlatformSpec{good}}).Validate(testGrid); err != nil {
		t.Errorf("valid level rejected: %v", err)
	}
	exact := good
	exact.Coins = 4
	if err := (Level{NeedCoins: 4, Platforms: []PlatformSpec{exact}}).Validate(testGrid); err != nil {
		t.Errorf("quota equal to the coins rejected: %v", err)
	}
}

func TestLoaderOverride(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`title: Custom River
levels:
  - name: Only
    platforms:
      - {row: 2, col: 3, left_bound: 1, right_bound: 6, speed: 30}
`)
	if err := os.WriteFile(filepath.Join(dir, "river.yaml"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir, testGrid)
	s, err := l.Load("river")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s.ID != "river" || s.Title != "Custom River" || s.Len() != 1 {
		t.Errorf("override not applied: %+v", s)
	}

	// No override for space: built-in is used.
	s, err = l.Load("space")
	if err != nil {
		t.Fatalf("Load(space) failed: %v", err)
	}
	if s.Source != "builtin" {
		t.Errorf("Source = %q, expected builtin", s.Source)
	}
}

func TestLoaderRejectsBrokenOverride(t *testing.T) {
	dir := t.TempDir()
	data := []byte("levels:\n  - platforms:\n      - {row: 9, col: 1, left_bound: 1, right_bound: 2, speed: 1}\n")
	if err := os.WriteFile(filepath.Join(dir, "squid.yaml"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader(dir, testGrid).Load("squid")
	if !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Load() = %v, expected ErrInvalidLevel", err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	valid := []byte("levels:\n  - platforms:\n      - {row: 1, col: 1, left_bound: 1, right_bound: 2, speed: 1}\n")
	for _, name := range []string{"b.yaml", "a.yml"} {
		if err := os.WriteFile(filepath.Join(dir, name), valid, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("levels: {"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	sets, err := NewLoader(dir, testGrid).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(sets) != 2 || sets[0].ID != "a" || sets[1].ID != "b" {
		t.Errorf("LoadAll() = %+v", sets)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := NewWatcher(ctx, dir)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "river.yaml"), []byte("levels: []"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-w.Events:
		if c.ID != "river" {
			t.Errorf("change ID = %q, expected river", c.ID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w, err := NewWatcher(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	cancel()

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("expected Events to be closed after cancel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	_ = w.Close()
}
