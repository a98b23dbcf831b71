// Package crossing implements the obstacle-crossing simulation: moving
// platforms over a hazard strip, patrolling enemies, a motion-detecting guard
// and the player state machine, run as one fixed-step round per biome.
//
// Everything in this package is deterministic for a given seed and input
// sequence. Nothing here draws or plays sound; hosts read Snapshot values.
package crossing

import (
	"github.com/vovakirdan/biome-crossing/internal/core"
)

// Body is the kinematic state shared by every entity.
type Body struct {
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
}

// Circle returns the collision shape of the body.
func (b Body) Circle() core.Circle {
	return core.Circle{Center: b.Pos, Radius: b.Radius}
}

// Touches reports whether two bodies overlap.
func (b Body) Touches(o Body) bool {
	return b.Circle().Overlaps(o.Circle())
}

// Integrate advances the position by one step of the current velocity.
func (b *Body) Integrate(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Mult(dt))
}

// ReflectX clamps x so the body stays radius away from both bounds and points
// vx away from whichever bound was violated. Returns true when a bound was hit.
func (b *Body) ReflectX(minX, maxX float64) bool {
	switch {
	case b.Pos.X-b.Radius < minX:
		b.Pos.X = minX + b.Radius
		if b.Vel.X < 0 {
			b.Vel.X = -b.Vel.X
		}
		return true
	case b.Pos.X+b.Radius > maxX:
		b.Pos.X = maxX - b.Radius
		if b.Vel.X > 0 {
			b.Vel.X = -b.Vel.X
		}
		return true
	}
	return false
}

// ClampInto keeps the center inside area and reports which axes were clamped.
func (b *Body) ClampInto(area core.Bounds) (clampedX, clampedY bool) {
	if b.Pos.X < area.MinX {
		b.Pos.X, clampedX = area.MinX, true
	} else if b.Pos.X > area.MaxX {
		b.Pos.X, clampedX = area.MaxX, true
	}
	if b.Pos.Y < area.MinY {
		b.Pos.Y, clampedY = area.MinY, true
	} else if b.Pos.Y > area.MaxY {
		b.Pos.Y, clampedY = area.MaxY, true
	}
	return clampedX, clampedY
}
