package crossing

import (
	"math/rand"

	"github.com/vovakirdan/biome-crossing/internal/config"
	"github.com/vovakirdan/biome-crossing/internal/core"
	"github.com/vovakirdan/biome-crossing/internal/levels"
)

// Platform is a raft patrolling between two column-derived x bounds.
type Platform struct {
	Body
	Row        int
	Col        int
	LeftBound  int
	RightBound int
	MinX       float64 // x of the left bound column midpoint
	MaxX       float64 // x of the right bound column midpoint
	Speed      float64
	Coins      int
}

// newPlatform places a platform from its level descriptor. The initial
// direction is drawn from rng.
func newPlatform(spec levels.PlatformSpec, w config.WorldConfig, pc config.PlatformConfig, speedScale float64, rng *rand.Rand) Platform {
	speed := spec.Speed * speedScale
	vx := speed
	if rng.Intn(2) == 0 {
		vx = -speed
	}
	return Platform{
		Body: Body{
			Pos:    core.V(w.ColumnX(spec.Col), w.Lanes[spec.Row-1]),
			Vel:    core.V(vx, 0),
			Radius: pc.Radius,
		},
		Row:        spec.Row,
		Col:        spec.Col,
		LeftBound:  spec.LeftBound,
		RightBound: spec.RightBound,
		MinX:       w.ColumnX(spec.LeftBound),
		MaxX:       w.ColumnX(spec.RightBound),
		Speed:      speed,
		Coins:      spec.Coins,
	}
}

// Update moves the platform and applies clamp-then-reflect at its bounds.
func (p *Platform) Update(dt float64) {
	p.Pos.X += p.Vel.X * dt
	p.ReflectX(p.MinX, p.MaxX)
}

// TakeCoins empties the platform and returns what it carried.
func (p *Platform) TakeCoins() int {
	n := p.Coins
	p.Coins = 0
	return n
}
