package crossing

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/biome-crossing/internal/config"
	"github.com/vovakirdan/biome-crossing/internal/core"
	"github.com/vovakirdan/biome-crossing/internal/levels"
	"github.com/vovakirdan/biome-crossing/internal/registry"
)

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset string
	levelsDir        string
)

// SetConfigPath sets a custom crossing.yaml path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLevelsDir sets a directory whose <biome>.yaml files override the built-in levels.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// Game adapts a Round to the registry.Game interface.
type Game struct {
	biome   Biome
	round   *Round
	rt      core.RuntimeConfig
	err     error
	story   bool // narrative card shown, waiting for Confirm
	notice  string
	lastEv  Event
	cfgFrom string
}

// New creates a game for biome b. Reset must be called before Step.
func New(b Biome) *Game {
	return &Game{biome: b}
}

func init() {
	for _, b := range Biomes {
		info := registry.GameInfo{ID: b.ID(), Title: b.Title(), Summary: b.Summary()}
		registry.Register(info, func() registry.Game {
			return New(b)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.biome.ID() }

// Title returns the display name.
func (g *Game) Title() string { return g.biome.Title() }

// Reset loads configuration and levels and starts a new round.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.err = nil
	g.notice = ""

	cfg, source, err := config.LoadCrossing(configPath)
	if err != nil {
		cfg, source = config.DefaultCrossingConfig(), "builtin"
	}
	g.cfgFrom = source
	config.ApplyPreset(&cfg, config.ParsePreset(difficultyPreset))

	grid := levels.Grid{Columns: cfg.World.Columns, Rows: len(cfg.World.Lanes)}
	set, err := levels.NewLoader(levelsDir, grid).Load(g.biome.ID())
	if err != nil {
		g.fail(err)
		return
	}

	r, err := NewRound(TraitsFor(g.biome, cfg), cfg, set, rt.Seed)
	if err != nil {
		g.fail(err)
		return
	}
	g.round = r
	g.story = r.Story() != ""
}

func (g *Game) fail(err error) {
	g.err = err
	g.round = nil
	g.notice = err.Error()
}

// Err returns the error from the last Reset, if any.
func (g *Game) Err() error { return g.err }

// ConfigSource reports where the tuning config came from.
func (g *Game) ConfigSource() string { return g.cfgFrom }

// Round exposes the underlying round.
func (g *Game) Round() *Round { return g.round }

// LastEvent returns the event of the most recent tick.
func (g *Game) LastEvent() Event { return g.lastEv }

// Step advances one tick and translates round transitions into notices.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.notice = ""
	g.lastEv = Event{}
	if g.round == nil {
		return core.StepResult{State: g.State()}
	}
	r := g.round

	if g.story {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.story = false
		}
		return core.StepResult{State: g.State()}
	}

	switch r.State() {
	case StateWon:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			if r.NextLevel() {
				g.story = r.Story() != ""
				g.notice = fmt.Sprintf("Level %d: %s", r.Level()+1, r.LevelName())
			} else {
				g.notice = "Every level cleared!"
			}
		}
		return core.StepResult{State: g.State(), Notice: g.notice}
	case StateGameOver, StateComplete:
		if in.Has(core.ActionRestart) {
			r.NewGame()
			g.story = r.Story() != ""
		}
		return core.StepResult{State: g.State(), Notice: g.notice}
	}

	ev := r.Update(g.rt.DT(), in)
	g.lastEv = ev
	switch {
	case ev.Kind == EventGameOver:
		g.notice = "Game over"
	case ev.Kind == EventWon:
		g.notice = "Level cleared"
	case ev.NeedCoins:
		g.notice = fmt.Sprintf("You still need %d coins!", r.NeedCoins()-r.Player().Coins)
	case ev.LifeLost:
		g.notice = fmt.Sprintf("Life lost, %d left", r.Player().Lives)
	}
	return core.StepResult{State: g.State(), Notice: g.notice}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{GameOver: true}
	}
	r := g.round
	return core.GameState{
		Score:    r.Player().Coins,
		Level:    r.Level() + 1,
		GameOver: r.State() == StateGameOver,
		Won:      r.State() == StateComplete,
		Paused:   r.State() == StatePaused,
	}
}

// Snapshot returns the render snapshot of the current round.
func (g *Game) Snapshot() Snapshot {
	if g.round == nil {
		return Snapshot{Biome: g.biome}
	}
	return g.round.Snapshot()
}

// SaveState encodes the round for a save slot.
func (g *Game) SaveState() ([]byte, error) {
	if g.round == nil {
		return nil, errors.New("crossing: no round to save")
	}
	return Encode(g.round.Save())
}

// LoadState restores a round from a save slot. On error the round keeps running.
func (g *Game) LoadState(data []byte) error {
	if g.round == nil {
		return errors.New("crossing: no round to load into")
	}
	s, err := Decode(data)
	if err != nil {
		return err
	}
	if err := g.round.Load(s); err != nil {
		return err
	}
	g.story = false
	return nil
}
