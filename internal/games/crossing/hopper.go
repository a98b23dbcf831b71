package crossing

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/biome-crossing/internal/config"
	"github.com/vovakirdan/biome-crossing/internal/core"
	"github.com/vovakirdan/biome-crossing/internal/levels"
)

// HopperMode selects the per-biome behavior of a patrolling enemy.
type HopperMode int

const (
	HopperGround HopperMode = iota // patrol and hop over platforms
	HopperHover                    // patrol with a sinusoidal x sway, blinking bulb
	HopperGuard                    // patrol and hop, pose flips on bounce only
)

func (m HopperMode) String() string {
	switch m {
	case HopperGround:
		return "ground"
	case HopperHover:
		return "hover"
	case HopperGuard:
		return "guard"
	default:
		return "unknown"
	}
}

// Hopper is an enemy patrolling vertically across the world.
type Hopper struct {
	Body
	Speed    float64
	Mode     HopperMode
	Jumping  bool
	JumpTime float64
	FlipX    bool
	FlipY    bool
	BulbOn   bool

	jumpDuration float64
	jumpHeight   float64
	detectRange  float64

	animTimer    float64
	flipInterval float64
	bulbTimer    float64
	bulbInterval float64

	homeX     float64
	hoverTime float64
	hoverAmp  float64
	hoverFreq float64

	minY, maxY float64
}

func newHopper(spec levels.EnemySpec, mode HopperMode, hc config.HopperConfig, worldH, speedScale float64, rng *rand.Rand) Hopper {
	speed := spec.Speed * speedScale
	vy := speed
	if rng.Intn(2) == 0 {
		vy = -speed
	}
	return Hopper{
		Body: Body{
			Pos:    core.V(spec.X, spec.Y),
			Vel:    core.V(0, vy),
			Radius: hc.Radius,
		},
		Speed:        speed,
		Mode:         mode,
		jumpDuration: hc.JumpDuration,
		jumpHeight:   hc.JumpHeight,
		detectRange:  hc.DetectionRange,
		flipInterval: hc.FlipInterval,
		bulbInterval: hc.BulbInterval,
		homeX:        spec.X,
		hoverAmp:     hc.HoverAmplitude,
		hoverFreq:    hc.HoverFrequency,
		minY:         0,
		maxY:         worldH,
	}
}

// Update advances timers, decides on an anticipatory hop and integrates the
// vertical patrol.
func (h *Hopper) Update(dt float64, platforms []Platform) {
	if h.Jumping {
		h.JumpTime += dt
		if h.JumpTime >= h.jumpDuration {
			h.Jumping = false
			h.JumpTime = 0
		}
	}

	if h.Mode == HopperHover {
		h.bulbTimer += dt
		if h.bulbTimer >= h.bulbInterval {
			h.bulbTimer -= h.bulbInterval
			h.BulbOn = !h.BulbOn
		}
	} else {
		h.animTimer += dt
		if h.animTimer >= h.flipInterval {
			h.animTimer -= h.flipInterval
			h.FlipX = !h.FlipX
		}
	}

	if h.Mode != HopperHover && !h.Jumping && h.approaching(dt, platforms) {
		h.Jumping = true
		h.JumpTime = 0
	}

	h.Pos.Y += h.Vel.Y * dt
	if h.Pos.Y-h.Radius < h.minY {
		h.Pos.Y = h.minY + h.Radius
		h.Vel.Y = math.Abs(h.Vel.Y)
		h.FlipY = !h.FlipY
	} else if h.Pos.Y+h.Radius > h.maxY {
		h.Pos.Y = h.maxY - h.Radius
		h.Vel.Y = -math.Abs(h.Vel.Y)
		h.FlipY = !h.FlipY
	}

	if h.Mode == HopperHover {
		h.hoverTime += dt
		h.Pos.X = h.homeX + h.hoverAmp*math.Sin(h.hoverFreq*h.hoverTime)
	}
}

// approaching reports whether the hopper will reach a platform lane within
// the detection range before the next tick.
func (h *Hopper) approaching(dt float64, platforms []Platform) bool {
	for i := range platforms {
		p := &platforms[i]
		if math.Abs(h.Pos.X-p.Pos.X) > p.Radius {
			continue
		}
		switch {
		case h.Vel.Y > 0 && h.Pos.Y < p.Pos.Y:
			if p.Pos.Y-h.Pos.Y <= h.detectRange+h.Vel.Y*dt {
				return true
			}
		case h.Vel.Y < 0 && h.Pos.Y > p.Pos.Y:
			if h.Pos.Y-p.Pos.Y <= h.detectRange-h.Vel.Y*dt {
				return true
			}
		}
	}
	return false
}

// JumpOffset returns the parabolic hop height, 0 when grounded.
func (h *Hopper) JumpOffset() float64 {
	return jumpArc(h.Jumping, h.JumpTime, h.jumpDuration, h.jumpHeight)
}

// Mirrored selects which of the two mirrored sprite placements to draw.
func (h *Hopper) Mirrored() bool {
	if h.Mode == HopperGuard {
		return h.FlipY
	}
	return h.FlipX != h.FlipY
}

// jumpArc is 4h·t(1−t) over normalized time t.
func jumpArc(jumping bool, elapsed, duration, height float64) float64 {
	if !jumping || duration <= 0 {
		return 0
	}
	t := core.ClampF(elapsed/duration, 0, 1)
	return 4 * height * t * (1 - t)
}
