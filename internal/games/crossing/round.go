package crossing

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/biome-crossing/internal/config"
	"github.com/vovakirdan/biome-crossing/internal/core"
	"github.com/vovakirdan/biome-crossing/internal/levels"
)

// RoundState is the lifecycle state of a round.
type RoundState int

const (
	StatePlaying RoundState = iota
	StatePaused
	StateGameOver
	StateWon      // level cleared, NextLevel pending
	StateComplete // every level of the set cleared
)

func (s RoundState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	case StateWon:
		return "won"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// EventKind is the state transition produced by a tick, if any.
type EventKind int

const (
	EventNone EventKind = iota
	EventPaused
	EventResumed
	EventGameOver
	EventWon
)

// Event summarizes what happened during one Update.
type Event struct {
	Kind      EventKind
	Damaged   bool // damage was applied
	LifeLost  bool
	Shot      bool // the sentinel fired
	NeedCoins bool // far edge reached without the quota, reported once per level
	Coins     int  // coins collected this tick
}

// Round owns every entity of the current level and runs the fixed-step pass.
type Round struct {
	cfg        config.CrossingConfig
	traits     Traits
	set        levels.Set
	difficulty *config.DifficultyManager
	seed       int64
	rng        *rand.Rand

	level     int
	state     RoundState
	player    *Player
	platforms []Platform
	hoppers   []Hopper
	sentinel  *Sentinel

	coinNotice bool // quota notice already shown; never re-armed for the lifetime of the round
	ticks      uint64
}

// NewRound validates the set and loads its first level.
func NewRound(traits Traits, cfg config.CrossingConfig, set levels.Set, seed int64) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid := levels.Grid{Columns: cfg.World.Columns, Rows: len(cfg.World.Lanes)}
	if err := set.Validate(grid); err != nil {
		return nil, err
	}
	r := &Round{
		cfg:        cfg,
		traits:     traits,
		set:        set,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		seed:       seed,
	}
	r.NewGame()
	return r, nil
}

// NewGame restarts from the first level with a fresh player.
func (r *Round) NewGame() {
	r.rng = rand.New(rand.NewSource(r.seed))
	r.ticks = 0
	r.loadLevel(0)
}

func (r *Round) loadLevel(idx int) {
	lvl := r.set.Levels[idx]
	scale := r.difficulty.SpeedScale(idx)

	r.level = idx
	r.state = StatePlaying
	r.player = newPlayer(r.cfg, r.traits)

	r.platforms = make([]Platform, 0, len(lvl.Platforms))
	for _, spec := range lvl.Platforms {
		r.platforms = append(r.platforms, newPlatform(spec, r.cfg.World, r.cfg.Platform, scale, r.rng))
	}
	r.hoppers = make([]Hopper, 0, len(lvl.Enemies))
	for _, spec := range lvl.Enemies {
		r.hoppers = append(r.hoppers, newHopper(spec, r.traits.HopperMode, r.cfg.Hopper, r.cfg.World.Height, scale, r.rng))
	}
	r.sentinel = nil
	if r.traits.Sentinel {
		r.sentinel = newSentinel(r.cfg.Sentinel)
	}
}

// NextLevel loads the following level. At the end of the set the round is
// marked complete and false is returned.
func (r *Round) NextLevel() bool {
	if r.level+1 >= r.set.Len() {
		r.state = StateComplete
		return false
	}
	r.loadLevel(r.level + 1)
	return true
}

// TogglePause switches between playing and paused. Other states are left alone.
func (r *Round) TogglePause() EventKind {
	switch r.state {
	case StatePlaying:
		r.state = StatePaused
		return EventPaused
	case StatePaused:
		r.state = StatePlaying
		return EventResumed
	}
	return EventNone
}

// Update runs one tick.
func (r *Round) Update(dt float64, in core.InputFrame) Event {
	var ev Event
	switch r.state {
	case StateGameOver, StateWon, StateComplete:
		return ev
	}
	if in.Has(core.ActionPause) {
		ev.Kind = r.TogglePause()
		return ev
	}
	if r.state == StatePaused {
		return ev
	}
	r.ticks++

	p := r.player
	r.applyAction(in)

	for i := range r.platforms {
		r.platforms[i].Update(dt)
	}
	for i := range r.hoppers {
		r.hoppers[i].Update(dt, r.platforms)
	}
	if r.sentinel != nil {
		r.sentinel.Update(dt)
	}
	ResolvePlatformCollisions(r.platforms, r.cfg.Platform)

	coins := p.Coins
	intent := IntentFrom(in)
	if r.traits.Locomotion == LocomotionThrust {
		p.UpdateThrust(dt, intent, r.platforms)
	} else {
		p.UpdateGround(dt, intent, r.platforms)
	}
	if r.traits.Hover {
		p.UpdateHover(dt)
	}
	ev.Coins = p.Coins - coins

	r.applyHazards(&ev)

	if p.Dead {
		r.state = StateGameOver
		ev.Kind = EventGameOver
		return ev
	}

	if p.Pos.X >= r.cfg.World.Width-r.cfg.World.WinMargin {
		if !r.traits.CoinGate || p.Coins >= r.NeedCoins() {
			r.state = StateWon
			ev.Kind = EventWon
		} else if !r.coinNotice {
			r.coinNotice = true
			ev.NeedCoins = true
		}
	}
	return ev
}

func (r *Round) applyAction(in core.InputFrame) {
	p := r.player
	switch r.traits.Action {
	case ActionJump:
		if in.Has(core.ActionJump) {
			p.StartJump()
		}
	case ActionHoverHold:
		if in.Has(core.ActionJump) {
			p.SetHover(true)
		}
		if in.WasReleased(core.ActionJump) {
			p.SetHover(false)
		}
	case ActionHoverToggle:
		if in.Has(core.ActionJump) {
			p.ToggleHover()
		}
	}
}

// applyHazards checks the strip, enemy contact and the sentinel, in that order.
func (r *Round) applyHazards(ev *Event) {
	p := r.player
	damage := func(amount float64) {
		health, lives := p.Health, p.Lives
		ev.LifeLost = p.Damage(amount) || ev.LifeLost
		ev.Damaged = ev.Damaged || p.Health != health || p.Lives != lives
	}

	exposed := !p.Jumping && !p.Hover.Active && p.Attached == NoPlatform && r.InStrip(p.Pos.X)

	if r.traits.StripHazard && exposed {
		damage(p.Health)
	}

	if !p.Jumping {
		for i := range r.hoppers {
			if p.Touches(r.hoppers[i].Body) {
				damage(r.traits.ContactDamage)
			}
		}
	}

	if r.sentinel != nil && exposed && r.sentinel.IsLooking() && r.moving() {
		amount := r.cfg.Sentinel.BaseDamage + p.Health/r.cfg.Sentinel.HealthDivisor
		health, lives := p.Health, p.Lives
		if r.sentinel.ShootPlayer(p, amount) {
			ev.Shot = true
			ev.Damaged = ev.Damaged || p.Health != health || p.Lives != lives
			ev.LifeLost = ev.LifeLost || p.Lives != lives
		}
	}
}

func (r *Round) moving() bool {
	v := r.player.Vel
	return math.Abs(v.X) >= r.cfg.Sentinel.MotionX || math.Abs(v.Y) >= r.cfg.Sentinel.MotionY
}

// InStrip reports whether x lies strictly between the two banks.
func (r *Round) InStrip(x float64) bool {
	return x > r.cfg.World.LeftBank && x < r.cfg.World.Width-r.cfg.World.RightBank
}

// NeedCoins returns the coin quota of the current level.
func (r *Round) NeedCoins() int {
	if !r.traits.CoinGate {
		return 0
	}
	return r.set.Levels[r.level].NeedCoins
}

func (r *Round) State() RoundState { return r.state }
func (r *Round) Level() int { return r.level }
func (r *Round) Levels() int { return r.set.Len() }
func (r *Round) Traits() Traits { return r.traits }
func (r *Round) Player() *Player { return r.player }
func (r *Round) Platforms() []Platform { return r.platforms }
func (r *Round) Hoppers() []Hopper { return r.hoppers }
func (r *Round) Sentinel() *Sentinel { return r.sentinel }
func (r *Round) Ticks() uint64 { return r.ticks }
func (r *Round) Config() config.CrossingConfig { return r.cfg }

// Story returns the narrative key of the current level.
func (r *Round) Story() string {
	return r.set.Levels[r.level].Story
}

// LevelName returns a display name for the current level.
func (r *Round) LevelName() string {
	if name := r.set.Levels[r.level].Name; name != "" {
		return name
	}
	return fmt.Sprintf("Level %d", r.level+1)
}
