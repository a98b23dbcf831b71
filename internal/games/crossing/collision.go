package crossing

import (
	"github.com/vovakirdan/biome-crossing/internal/config"
	"github.com/vovakirdan/biome-crossing/internal/core"
)

// ResolvePlatformCollisions separates every pair of platforms that came within
// contact distance. Converging pairs have both vx inverted; every overlapping
// pair also gets a soft positional push along the contact normal: each
// platform moves by overlap*Correction. Returns the number of pairs whose velocities were inverted.
func ResolvePlatformCollisions(ps []Platform, pc config.PlatformConfig) int {
	flips := 0
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			a, b := &ps[i], &ps[j]

			contact := a.Radius + b.Radius + pc.Padding
			dist := a.Pos.Distance(b.Pos)
			if dist >= contact {
				continue
			}

			if converging(a, b) {
				a.Vel.X = -a.Vel.X
				b.Vel.X = -b.Vel.X
				flips++
			}

			var normal core.Vec
			if dist < pc.MinSeparation {
				// Coincident centers: push apart horizontally.
				dist = pc.MinSeparation
				normal = core.V(1, 0)
			} else {
				normal = b.Pos.Sub(a.Pos).Mult(1 / dist)
			}

			shift := normal.Mult((contact - dist) * pc.Correction)
			a.Pos = a.Pos.Sub(shift)
			b.Pos = b.Pos.Add(shift)
		}
	}
	return flips
}

// converging reports whether two platforms move horizontally toward each other
// with opposite velocity signs.
func converging(a, b *Platform) bool {
	if a.Vel.X*b.Vel.X >= 0 {
		return false
	}
	dx := b.Pos.X - a.Pos.X
	if dx == 0 {
		return true
	}
	return dx*a.Vel.X > 0
}
