package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveSlot("river", "a", 1, []byte("{}")); err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if _, err := store.LoadSlot("river", "a"); err != nil {
		t.Errorf("slot lost after reopen: %v", err)
	}
}

func TestStoreSaveAndLoadSlot(t *testing.T) {
	store := openTestStore(t)

	payload := []byte(`{"biome":"space","level":1}`)
	id, err := store.SaveSlot("space", "", 1, payload)
	if err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("SaveSlot() id = %q, expected a UUID", id)
	}

	got, err := store.LoadSlot("space", DefaultSlot)
	if err != nil {
		t.Fatalf("LoadSlot() failed: %v", err)
	}
	if got.ID != id || got.Level != 1 || got.Slot != DefaultSlot {
		t.Errorf("LoadSlot() = %+v", got)
	}
	if !bytes.Equal(got.Payload, payload) {
		t.Errorf("payload = %q, expected %q", got.Payload, payload)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}
}

func TestStoreSaveSlotReplaces(t *testing.T) {
	store := openTestStore(t)

	first, err := store.SaveSlot("river", "main", 0, []byte("one"))
	if err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}
	second, err := store.SaveSlot("river", "main", 1, []byte("two"))
	if err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}
	if first == second {
		t.Error("overwrite reused the slot ID")
	}

	slots, err := store.ListSlots("river")
	if err != nil {
		t.Fatalf("ListSlots() failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("Expected 1 slot after overwrite, got %d", len(slots))
	}

	got, _ := store.LoadSlot("river", "main")
	if string(got.Payload) != "two" || got.Level != 1 {
		t.Errorf("slot holds %q at level %d, expected the second save", got.Payload, got.Level)
	}
}

func TestStoreSlotsAreScopedByBiome(t *testing.T) {
	store := openTestStore(t)

	store.SaveSlot("river", "main", 0, []byte("r"))
	store.SaveSlot("squid", "main", 0, []byte("s"))
	store.SaveSlot("squid", "backup", 1, []byte("s2"))

	tests := []struct {
		biome string
		want  int
	}{
		{"river", 1},
		{"squid", 2},
		{"space", 0},
		{"", 3},
	}
	for _, tc := range tests {
		slots, err := store.ListSlots(tc.biome)
		if err != nil {
			t.Fatalf("ListSlots(%q) failed: %v", tc.biome, err)
		}
		if len(slots) != tc.want {
			t.Errorf("ListSlots(%q) = %d slots, expected %d", tc.biome, len(slots), tc.want)
		}
		for _, s := range slots {
			if s.Payload != nil {
				t.Errorf("ListSlots(%q) returned a payload", tc.biome)
			}
		}
	}
}

func TestStoreMissingSlot(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LoadSlot("river", "nope"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("LoadSlot() = %v, expected ErrSlotNotFound", err)
	}
	if err := store.DeleteSlot("river", "nope"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("DeleteSlot() = %v, expected ErrSlotNotFound", err)
	}
}

func TestStoreDeleteSlot(t *testing.T) {
	store := openTestStore(t)

	store.SaveSlot("space", "main", 0, []byte("x"))
	if err := store.DeleteSlot("space", "main"); err != nil {
		t.Fatalf("DeleteSlot() failed: %v", err)
	}
	if _, err := store.LoadSlot("space", "main"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("slot still present after delete: %v", err)
	}
}

func TestStoreTopRunsOrder(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Biome: "river", LevelsCleared: 1, Coins: 0},
		{Biome: "river", LevelsCleared: 2, Coins: 3, Won: true},
		{Biome: "river", LevelsCleared: 1, Coins: 5},
		{Biome: "space", LevelsCleared: 2, Coins: 9, Won: true},
	}
	for _, r := range runs {
		if _, err := store.RecordRun(r); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("river", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 river runs, got %d", len(top))
	}
	if top[0].LevelsCleared != 2 || !top[0].Won {
		t.Errorf("best run = %+v, expected the won run", top[0])
	}
	if top[1].Coins != 5 || top[2].Coins != 0 {
		t.Errorf("ties not broken by coins: %+v", top)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.RecordRun(Run{Biome: "squid", LevelsCleared: i})
	}

	top, err := store.TopRuns("squid", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(top))
	}
	if top[0].LevelsCleared != 4 || top[2].LevelsCleared != 2 {
		t.Errorf("Runs not in expected order: %+v", top)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.RecordRun(Run{Biome: "river", LevelsCleared: 1})
	store.RecordRun(Run{Biome: "space", LevelsCleared: 1})

	if err := store.ClearRuns("river"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	river, _ := store.TopRuns("river", 10)
	if len(river) != 0 {
		t.Errorf("Expected 0 river runs after clear, got %d", len(river))
	}
	space, _ := store.TopRuns("space", 10)
	if len(space) != 1 {
		t.Error("space runs should not be affected by clearing river")
	}
}

func TestStoreBiomeStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetBiomeStats("river")
	if err != nil {
		t.Fatalf("GetBiomeStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.RecordRun(Run{Biome: "river", LevelsCleared: 2, Coins: 4, Won: true})
	store.RecordRun(Run{Biome: "river", LevelsCleared: 1, Coins: 1})
	store.RecordRun(Run{Biome: "squid", LevelsCleared: 0})

	st, err := store.GetBiomeStats("river")
	if err != nil {
		t.Fatalf("GetBiomeStats() failed: %v", err)
	}
	if st.Runs != 2 || st.Wins != 1 || st.BestLevels != 2 || st.TotalCoins != 5 {
		t.Errorf("river stats = %+v", st)
	}

	all, err := store.GetAllBiomeStats()
	if err != nil {
		t.Fatalf("GetAllBiomeStats() failed: %v", err)
	}
	if len(all) != 2 || all["squid"] == nil || all["squid"].Runs != 1 {
		t.Errorf("all stats = %+v", all)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
