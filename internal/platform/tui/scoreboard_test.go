package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/biome-crossing/internal/storage"
)

func sendBoard(m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	next, _ := m.Update(msg)
	return next.(ScoreboardModel)
}

func TestScoreboardLoadsRunsPerBiome(t *testing.T) {
	store := openStore(t)
	store.RecordRun(storage.Run{Biome: "river", LevelsCleared: 1, Coins: 4})
	store.RecordRun(storage.Run{Biome: "river", LevelsCleared: 3, Coins: 9, Won: true})
	store.RecordRun(storage.Run{Biome: "squid", LevelsCleared: 2})

	m := NewScoreboardModel(store, 100, 30)
	if m.biomes[m.cursor].ID != "river" {
		t.Fatalf("first biome = %q, want river", m.biomes[m.cursor].ID)
	}
	if len(m.runs) != 2 || m.runs[0].LevelsCleared != 3 {
		t.Fatalf("river runs = %+v, want the 3-level run first", m.runs)
	}
	if m.stats == nil || m.stats.Wins != 1 {
		t.Errorf("river stats = %+v, want one win", m.stats)
	}

	m = sendBoard(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.biomes[m.cursor].ID != "space" || len(m.runs) != 0 {
		t.Errorf("after tab: biome %q with %d runs, want space with none", m.biomes[m.cursor].ID, len(m.runs))
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty biome should show the empty hint")
	}
}

func TestScoreboardBiomeCursorWraps(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 24)

	m = sendBoard(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.biomes[m.cursor].ID; got != "squid" {
		t.Errorf("prev from first = %q, want squid", got)
	}
	m = sendBoard(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.biomes[m.cursor].ID; got != "river" {
		t.Errorf("next from last = %q, want river", got)
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := sendBoard(NewScoreboardModel(nil, 80, 24), runeKey('b'))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back without quitting")
	}

	m = sendBoard(NewScoreboardModel(nil, 80, 24), runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}
