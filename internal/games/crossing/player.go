package crossing

import (
	"math"

	"github.com/vovakirdan/biome-crossing/internal/config"
	"github.com/vovakirdan/biome-crossing/internal/core"
)

// NoPlatform is the Attached value of a player riding nothing.
const NoPlatform = -1

// Intent is the held-direction state for one tick.
type Intent struct {
	Up, Down, Left, Right bool
}

// IntentFrom reads the held directions of an input frame.
func IntentFrom(in core.InputFrame) Intent {
	return Intent{
		Up:    in.IsHeld(core.ActionUp),
		Down:  in.IsHeld(core.ActionDown),
		Left:  in.IsHeld(core.ActionLeft),
		Right: in.IsHeld(core.ActionRight),
	}
}

func (i Intent) axis() (x, y float64) {
	if i.Left {
		x--
	}
	if i.Right {
		x++
	}
	if i.Up {
		y--
	}
	if i.Down {
		y++
	}
	return x, y
}

// HoverState is the fuel-gated hover sub-state.
type HoverState struct {
	Active bool
	Fuel   float64
	Time   float64
}

// Player is the state machine the round is built around.
type Player struct {
	Body
	Speed    float64
	Jumping  bool
	JumpTime float64
	Attached int // index into the round's platforms, NoPlatform when free
	Angle    float64

	Health      float64
	Lives       int
	Dead        bool
	DamageTimer float64
	Coins       int
	Hover       HoverState

	baseSpeed     float64
	spawn         core.Vec
	area          core.Bounds
	jumpDuration  float64
	jumpHeight    float64
	angularSpeed  float64
	maxHealth     float64
	damageDur     float64
	blinkInterval float64
	hover         config.HoverConfig
	thrust        config.ThrustConfig
	respawn       bool
}

func newPlayer(cfg config.CrossingConfig, traits Traits) *Player {
	pc := cfg.Player
	spawn := core.V(pc.SpawnX, pc.SpawnY)
	return &Player{
		Body:          Body{Pos: spawn, Radius: pc.Radius},
		Speed:         traits.Speed,
		Attached:      NoPlatform,
		Health:        pc.MaxHealth,
		Lives:         pc.Lives,
		Hover:         HoverState{Fuel: cfg.Hover.MaxFuel},
		baseSpeed:     traits.Speed,
		spawn:         spawn,
		area:          core.Bounds{MaxX: cfg.World.Width, MaxY: cfg.World.Height}.Inset(pc.Radius),
		jumpDuration:  pc.JumpDuration,
		jumpHeight:    pc.JumpHeight,
		angularSpeed:  pc.AngularSpeed,
		maxHealth:     pc.MaxHealth,
		damageDur:     pc.DamageDuration,
		blinkInterval: pc.BlinkInterval,
		hover:         cfg.Hover,
		thrust:        cfg.Thrust,
		respawn:       traits.RespawnOnLifeLoss,
	}
}

// UpdateGround moves the player at a fixed speed per held axis. Diagonals are
// not normalized.
func (p *Player) UpdateGround(dt float64, in Intent, platforms []Platform) {
	ax, ay := in.axis()
	p.Vel = core.V(ax*p.Speed, ay*p.Speed)
	p.ride(dt, platforms)
	p.Integrate(dt)
	p.ClampInto(p.area)
	p.tail(dt, platforms)
}

// UpdateThrust accelerates per held axis, applies friction and caps speed.
// A velocity component is zeroed when its axis hits the world edge.
func (p *Player) UpdateThrust(dt float64, in Intent, platforms []Platform) {
	ax, ay := in.axis()
	a := p.thrust.Accel * dt
	p.Vel = p.Vel.Add(core.V(ax*a, ay*a)).Mult(p.thrust.Friction)
	p.Vel.X = core.ClampF(p.Vel.X, -p.Speed, p.Speed)
	p.Vel.Y = core.ClampF(p.Vel.Y, -p.Speed, p.Speed)
	p.ride(dt, platforms)
	p.Integrate(dt)
	cx, cy := p.ClampInto(p.area)
	if cx {
		p.Vel.X = 0
	}
	if cy {
		p.Vel.Y = 0
	}
	p.tail(dt, platforms)
}

func (p *Player) ride(dt float64, platforms []Platform) {
	if p.Jumping || p.Hover.Active {
		return
	}
	if p.Attached >= 0 && p.Attached < len(platforms) {
		p.Pos.X += platforms[p.Attached].Vel.X * dt
	}
}

// tail runs the per-tick bookkeeping shared by both locomotion variants.
func (p *Player) tail(dt float64, platforms []Platform) {
	p.Angle = core.WrapAngle(p.Angle + p.angularSpeed*dt)

	if p.DamageTimer > 0 {
		p.DamageTimer = math.Max(0, p.DamageTimer-dt)
	}

	if p.Jumping {
		p.JumpTime += dt
		if p.JumpTime >= p.jumpDuration {
			p.Jumping = false
			p.JumpTime = 0
		}
	}

	if p.Jumping {
		return
	}
	if p.Attached != NoPlatform {
		if p.Attached >= len(platforms) || !p.Touches(platforms[p.Attached].Body) {
			p.Attached = NoPlatform
		}
	}
	if p.Attached == NoPlatform {
		p.TryAttach(platforms)
	}
}

// TryAttach attaches to the first overlapping platform in level order and
// collects its coins. Returns the index, or NoPlatform.
func (p *Player) TryAttach(platforms []Platform) int {
	for i := range platforms {
		if p.Touches(platforms[i].Body) {
			p.Attached = i
			p.Coins += platforms[i].TakeCoins()
			return i
		}
	}
	return NoPlatform
}

// StartJump begins a jump unless one is in progress.
func (p *Player) StartJump() bool {
	if p.Jumping {
		return false
	}
	p.Jumping = true
	p.JumpTime = 0
	p.Attached = NoPlatform
	return true
}

// JumpOffset returns the parabolic jump height, 0 when grounded.
func (p *Player) JumpOffset() float64 {
	return jumpArc(p.Jumping, p.JumpTime, p.jumpDuration, p.jumpHeight)
}

// ToggleHover switches hover on when fuel remains, or off when active.
func (p *Player) ToggleHover() {
	p.SetHover(!p.Hover.Active)
}

// SetHover forces the hover state. Activation needs fuel.
func (p *Player) SetHover(on bool) {
	switch {
	case on && !p.Hover.Active && p.Hover.Fuel > 0:
		p.Hover.Active = true
		p.Hover.Time = 0
	case !on:
		p.Hover.Active = false
	}
}

// UpdateHover drains fuel while hovering and regenerates it otherwise.
func (p *Player) UpdateHover(dt float64) {
	if p.Hover.Active {
		p.Hover.Time += dt
		p.Hover.Fuel -= p.hover.Depletion * dt
		if p.Hover.Fuel <= 0 {
			p.Hover.Fuel = 0
			p.Hover.Active = false
		}
		return
	}
	p.Hover.Fuel = math.Min(p.hover.MaxFuel, p.Hover.Fuel+p.hover.Regen*dt)
}

// HoverOffset is the damped vertical bob drawn under a hovering player.
func (p *Player) HoverOffset() float64 {
	if !p.Hover.Active {
		return 0
	}
	return p.hover.Amplitude*math.Sin(10*p.Hover.Time)/10 + p.hover.BaseOffset
}

// Damage applies amount unless the blink window is open. Returns true when a
// life was consumed.
func (p *Player) Damage(amount float64) bool {
	if p.Dead || p.DamageTimer > 0 {
		return false
	}
	p.Health -= amount
	p.DamageTimer = p.damageDur
	if p.Health > 0 {
		return false
	}

	p.Lives--
	p.Health = p.maxHealth
	if p.Lives <= 0 {
		p.Lives = 0
		p.Dead = true
	} else if p.respawn {
		p.Respawn()
	}
	return true
}

// Respawn returns the player to the spawn point. Health, lives and coins are kept.
func (p *Player) Respawn() {
	p.Pos = p.spawn
	p.Vel = core.Vec{}
	p.Speed = p.baseSpeed
	p.Jumping = false
	p.JumpTime = 0
	p.Attached = NoPlatform
	p.Hover.Active = false
	p.Hover.Time = 0
}

// Visible is false during the off phase of the damage blink.
func (p *Player) Visible() bool {
	if p.DamageTimer <= 0 || p.blinkInterval <= 0 {
		return true
	}
	phase := int((p.damageDur - p.DamageTimer) / p.blinkInterval)
	return phase%2 == 1
}

// Damaged reports whether the blink window is open.
func (p *Player) Damaged() bool {
	return p.DamageTimer > 0
}
