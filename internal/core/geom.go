// Package core provides fundamental types shared by the simulation and the
// terminal host. It must never import Bubble Tea or any rendering backend so
// that game logic stays pure and testable.
package core

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec is a 2D vector in world units (pixels of the 800x600 playfield).
type Vec = cp.Vector

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Rect is an axis-aligned cell rectangle, used by the screen buffer for boxes and fills.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Circle is a circular collision shape.
type Circle struct {
	Center Vec
	Radius float64
}

// Overlaps reports whether the centers are closer than the sum of the radii.
func (c Circle) Overlaps(o Circle) bool {
	return c.Center.Distance(o.Center) < c.Radius+o.Radius
}

// Bounds is an axis-aligned region in world units.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Inset shrinks the bounds by m on every side.
func (b Bounds) Inset(m float64) Bounds {
	return Bounds{MinX: b.MinX + m, MinY: b.MinY + m, MaxX: b.MaxX - m, MaxY: b.MaxY - m}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// WrapAngle maps an angle into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
