package crossing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/biome-crossing/internal/core"
)

var (
	// ErrNoSave is returned when there is nothing to load.
	ErrNoSave = errors.New("no saved game found")
	// ErrSaveMismatch is returned when a save does not fit the current level set.
	ErrSaveMismatch = errors.New("save does not match level set")
)

// SaveState is the serializable record of a live round.
type SaveState struct {
	Biome      string         `json:"biome"`
	Level      int            `json:"level"`
	CoinNotice bool           `json:"coin_notice,omitempty"`
	Ticks      uint64         `json:"ticks"`
	Player     PlayerSave     `json:"player"`
	Platforms  []PlatformSave `json:"platforms"`
	Enemies    []EnemySave    `json:"enemies"`
	Sentinel   *SentinelSave  `json:"sentinel,omitempty"`
}

type PlayerSave struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	VX            float64 `json:"vx"`
	VY            float64 `json:"vy"`
	Health        float64 `json:"health"`
	Lives         int     `json:"lives"`
	Dead          bool    `json:"dead,omitempty"`
	Coins         int     `json:"coins"`
	IsJumping     bool    `json:"isJumping"`
	JumpTime      float64 `json:"jumpTime"`
	Attached      bool    `json:"attached"`
	AttachedIndex int     `json:"attachedIndex"`
	Angle         float64 `json:"angle"`
	HoverActive   bool    `json:"hoverActive"`
	HoverFuel     float64 `json:"hoverFuel"`
	HoverTime     float64 `json:"hoverTime"`
	DamageTimer   float64 `json:"damageTimer"`
}

type PlatformSave struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"vx"`
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	LeftBound  int     `json:"leftBound"`
	RightBound int     `json:"rightBound"`
	Speed      float64 `json:"speed"`
	Coins      int     `json:"coins"`
}

type EnemySave struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	VX        float64 `json:"vx"`
	VY        float64 `json:"vy"`
	Speed     float64 `json:"speed"`
	Jumping   bool    `json:"jumping"`
	JumpTime  float64 `json:"jumpTime"`
	FlipX     bool    `json:"flipX"`
	FlipY     bool    `json:"flipY"`
	HoverTime float64 `json:"hoverTime,omitempty"`
}

type SentinelSave struct {
	FacingLeft bool    `json:"facingLeft"`
	Timer      float64 `json:"timer"`
	Shooting   bool    `json:"shooting"`
	ShootTime  float64 `json:"shootTime"`
}

// Save captures the round. A paused round saves as playing.
func (r *Round) Save() SaveState {
	p := r.player
	s := SaveState{
		Biome:      r.traits.Biome.ID(),
		Level:      r.level,
		CoinNotice: r.coinNotice,
		Ticks:      r.ticks,
		Player: PlayerSave{
			X:             p.Pos.X,
			Y:             p.Pos.Y,
			VX:            p.Vel.X,
			VY:            p.Vel.Y,
			Health:        p.Health,
			Lives:         p.Lives,
			Dead:          p.Dead,
			Coins:         p.Coins,
			IsJumping:     p.Jumping,
			JumpTime:      p.JumpTime,
			Attached:      p.Attached != NoPlatform,
			AttachedIndex: p.Attached,
			Angle:         p.Angle,
			HoverActive:   p.Hover.Active,
			HoverFuel:     p.Hover.Fuel,
			HoverTime:     p.Hover.Time,
			DamageTimer:   p.DamageTimer,
		},
		Platforms: make([]PlatformSave, 0, len(r.platforms)),
		Enemies:   make([]EnemySave, 0, len(r.hoppers)),
	}
	for _, pl := range r.platforms {
		s.Platforms = append(s.Platforms, PlatformSave{
			X: pl.Pos.X, Y: pl.Pos.Y, VX: pl.Vel.X,
			Row: pl.Row, Col: pl.Col, LeftBound: pl.LeftBound, RightBound: pl.RightBound,
			Speed: pl.Speed, Coins: pl.Coins,
		})
	}
	for _, h := range r.hoppers {
		s.Enemies = append(s.Enemies, EnemySave{
			X: h.Pos.X, Y: h.Pos.Y, VX: h.Vel.X, VY: h.Vel.Y, Speed: h.Speed,
			Jumping: h.Jumping, JumpTime: h.JumpTime, FlipX: h.FlipX, FlipY: h.FlipY,
			HoverTime: h.hoverTime,
		})
	}
	if r.sentinel != nil {
		s.Sentinel = &SentinelSave{
			FacingLeft: r.sentinel.FacingLeft,
			Timer:      r.sentinel.timer,
			Shooting:   r.sentinel.Shooting,
			ShootTime:  r.sentinel.ShootTime,
		}
	}
	return s
}

// Load replaces the round with s. Entities are rebuilt from the level table
// of s.Level and then overwritten with the saved values. On error the round
// is left untouched.
func (r *Round) Load(s SaveState) error {
	if s.Biome != r.traits.Biome.ID() {
		return fmt.Errorf("crossing: save is for biome %q, not %q: %w", s.Biome, r.traits.Biome.ID(), ErrSaveMismatch)
	}
	if s.Level < 0 || s.Level >= r.set.Len() {
		return fmt.Errorf("crossing: save level %d out of range: %w", s.Level, ErrSaveMismatch)
	}
	lvl := r.set.Levels[s.Level]
	if len(s.Platforms) != len(lvl.Platforms) || len(s.Enemies) != len(lvl.Enemies) {
		return fmt.Errorf("crossing: save has %d platforms and %d enemies, level has %d and %d: %w",
			len(s.Platforms), len(s.Enemies), len(lvl.Platforms), len(lvl.Enemies), ErrSaveMismatch)
	}
	if r.traits.Sentinel != (s.Sentinel != nil) {
		return fmt.Errorf("crossing: save sentinel presence does not match biome: %w", ErrSaveMismatch)
	}
	if err := s.validate(r); err != nil {
		return err
	}

	// Build into temporaries so a failure above cannot leave a half-loaded round.
	w := r.cfg.World
	platforms := make([]Platform, len(s.Platforms))
	for i, ps := range s.Platforms {
		platforms[i] = Platform{
			Body:       Body{Pos: core.V(ps.X, ps.Y), Vel: core.V(ps.VX, 0), Radius: r.cfg.Platform.Radius},
			Row:        ps.Row,
			Col:        ps.Col,
			LeftBound:  ps.LeftBound,
			RightBound: ps.RightBound,
			MinX:       w.ColumnX(ps.LeftBound),
			MaxX:       w.ColumnX(ps.RightBound),
			Speed:      ps.Speed,
			Coins:      ps.Coins,
		}
	}

	// The direction draw is overwritten below; keep it off the round's rng.
	scratch := rand.New(rand.NewSource(0))
	hoppers := make([]Hopper, len(s.Enemies))
	for i, es := range s.Enemies {
		h := newHopper(lvl.Enemies[i], r.traits.HopperMode, r.cfg.Hopper, w.Height, 1, scratch)
		h.Pos = core.V(es.X, es.Y)
		h.Vel = core.V(es.VX, es.VY)
		h.Speed = es.Speed
		h.Jumping = es.Jumping
		h.JumpTime = es.JumpTime
		h.FlipX = es.FlipX
		h.FlipY = es.FlipY
		h.hoverTime = es.HoverTime
		hoppers[i] = h
	}

	var sentinel *Sentinel
	if s.Sentinel != nil {
		sentinel = newSentinel(r.cfg.Sentinel)
		sentinel.FacingLeft = s.Sentinel.FacingLeft
		sentinel.timer = s.Sentinel.Timer
		sentinel.Shooting = s.Sentinel.Shooting
		sentinel.ShootTime = s.Sentinel.ShootTime
	}

	ps := s.Player
	player := newPlayer(r.cfg, r.traits)
	player.Pos = core.V(ps.X, ps.Y)
	player.Vel = core.V(ps.VX, ps.VY)
	player.Health = ps.Health
	player.Lives = ps.Lives
	player.Dead = ps.Dead || ps.Lives == 0
	player.Coins = ps.Coins
	player.Jumping = ps.IsJumping
	player.JumpTime = ps.JumpTime
	player.Attached = NoPlatform
	if ps.Attached {
		player.Attached = ps.AttachedIndex
	}
	player.Angle = ps.Angle
	player.Hover = HoverState{Active: ps.HoverActive, Fuel: ps.HoverFuel, Time: ps.HoverTime}
	player.DamageTimer = ps.DamageTimer

	r.level = s.Level
	r.coinNotice = s.CoinNotice
	r.ticks = s.Ticks
	r.player = player
	r.platforms = platforms
	r.hoppers = hoppers
	r.sentinel = sentinel
	r.state = StatePlaying
	if player.Dead {
		r.state = StateGameOver
	}
	return nil
}

func (s SaveState) validate(r *Round) error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("crossing: "+format+": %w", append(args, ErrSaveMismatch)...)
	}

	p := s.Player
	for _, v := range []float64{p.X, p.Y, p.VX, p.VY, p.Health, p.JumpTime, p.Angle, p.HoverFuel, p.HoverTime, p.DamageTimer} {
		if !finite(v) {
			return bad("player has a non-finite value")
		}
	}
	if p.Health <= 0 || p.Health > r.cfg.Player.MaxHealth {
		return bad("player health %v out of range", p.Health)
	}
	if p.Lives < 0 || p.Coins < 0 {
		return bad("player lives or coins negative")
	}
	if p.HoverFuel < 0 || p.HoverFuel > r.cfg.Hover.MaxFuel {
		return bad("hover fuel %v out of range", p.HoverFuel)
	}
	if p.JumpTime < 0 || p.JumpTime > r.cfg.Player.JumpDuration {
		return bad("jump time %v out of range", p.JumpTime)
	}
	if p.Attached && (p.AttachedIndex < 0 || p.AttachedIndex >= len(s.Platforms)) {
		return bad("attached index %d out of range", p.AttachedIndex)
	}

	grid := r.cfg.World.Columns
	for i, pl := range s.Platforms {
		if !finite(pl.X) || !finite(pl.Y) || !finite(pl.VX) || !finite(pl.Speed) {
			return bad("platform %d has a non-finite value", i)
		}
		if pl.Row < 1 || pl.Row > len(r.cfg.World.Lanes) || pl.LeftBound < 1 || pl.RightBound > grid || pl.LeftBound >= pl.RightBound {
			return bad("platform %d has invalid grid placement", i)
		}
		if pl.Coins < 0 {
			return bad("platform %d has negative coins", i)
		}
	}
	for i, e := range s.Enemies {
		if !finite(e.X) || !finite(e.Y) || !finite(e.VX) || !finite(e.VY) || !finite(e.JumpTime) || !finite(e.HoverTime) {
			return bad("enemy %d has a non-finite value", i)
		}
		if e.JumpTime < 0 || e.JumpTime > r.cfg.Hopper.JumpDuration {
			return bad("enemy %d jump time out of range", i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Encode serializes a save to JSON.
func Encode(s SaveState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("crossing: cannot encode save: %w", err)
	}
	return data, nil
}

// Decode parses a JSON save. Empty input yields ErrNoSave.
func Decode(data []byte) (SaveState, error) {
	var s SaveState
	if len(data) == 0 {
		return s, ErrNoSave
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("crossing: cannot decode save: %w", err)
	}
	return s, nil
}
