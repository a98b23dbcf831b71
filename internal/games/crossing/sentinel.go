package crossing

import (
	"github.com/vovakirdan/biome-crossing/internal/config"
	"github.com/vovakirdan/biome-crossing/internal/core"
)

// Sentinel is the stationary guard. While it faces left it watches the strip.
type Sentinel struct {
	Body
	FacingLeft bool
	Shooting   bool
	ShootTime  float64

	timer         float64
	timeToTurn    float64
	shootDuration float64
}

func newSentinel(sc config.SentinelConfig) *Sentinel {
	return &Sentinel{
		Body:          Body{Pos: core.V(sc.X, sc.Y), Radius: sc.Radius},
		timeToTurn:    sc.TimeToTurn,
		shootDuration: sc.ShootDuration,
	}
}

// Update flips the facing every timeToTurn and expires a running shot.
func (s *Sentinel) Update(dt float64) {
	s.timer += dt
	if s.timer >= s.timeToTurn {
		s.timer -= s.timeToTurn
		s.FacingLeft = !s.FacingLeft
	}
	if s.Shooting {
		s.ShootTime += dt
		if s.ShootTime >= s.shootDuration {
			s.Shooting = false
		}
	}
}

// IsLooking reports whether the sentinel is watching.
func (s *Sentinel) IsLooking() bool {
	return s.FacingLeft
}

// ShootPlayer damages p unless a shot is already in flight.
func (s *Sentinel) ShootPlayer(p *Player, damage float64) bool {
	if s.Shooting {
		return false
	}
	p.Damage(damage)
	s.Shooting = true
	s.ShootTime = 0
	return true
}
