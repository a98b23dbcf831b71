package crossing

import (
	"fmt"
	"hash/fnv"
)

// PlayerView is the render pose of the player.
type PlayerView struct {
	X, Y        float64
	Radius      float64
	Angle       float64
	JumpOffset  float64
	HoverOffset float64
	Hovering    bool
	Visible     bool
	Attached    int
}

// PlatformView is the render pose of a platform.
type PlatformView struct {
	X, Y   float64
	Radius float64
	Coins  int
}

// HopperView is the render pose of an enemy.
type HopperView struct {
	X, Y       float64
	Radius     float64
	JumpOffset float64
	Mirrored   bool
	BulbOn     bool
}

// SentinelView is the render pose of the guard.
type SentinelView struct {
	X, Y     float64
	Radius   float64
	Looking  bool
	Shooting bool
}

// Stats are the HUD values.
type Stats struct {
	Health    float64
	MaxHealth float64
	Lives     int
	Coins     int
	NeedCoins int
	Fuel      float64
	MaxFuel   float64
	Level     int // 0-based
	Levels    int
}

// Snapshot is a read-only copy of everything a host draws for one frame.
type Snapshot struct {
	Biome     Biome
	State     RoundState
	Tick      uint64
	Player    PlayerView
	Platforms []PlatformView
	Hoppers   []HopperView
	Sentinel  *SentinelView
	Stats     Stats
}

// Snapshot copies the current poses and stats.
func (r *Round) Snapshot() Snapshot {
	p := r.player
	s := Snapshot{
		Biome: r.traits.Biome,
		State: r.state,
		Tick:  r.ticks,
		Player: PlayerView{
			X:           p.Pos.X,
			Y:           p.Pos.Y,
			Radius:      p.Radius,
			Angle:       p.Angle,
			JumpOffset:  p.JumpOffset(),
			HoverOffset: p.HoverOffset(),
			Hovering:    p.Hover.Active,
			Visible:     p.Visible(),
			Attached:    p.Attached,
		},
		Platforms: make([]PlatformView, len(r.platforms)),
		Hoppers:   make([]HopperView, len(r.hoppers)),
		Stats: Stats{
			Health:    p.Health,
			MaxHealth: p.maxHealth,
			Lives:     p.Lives,
			Coins:     p.Coins,
			NeedCoins: r.NeedCoins(),
			Fuel:      p.Hover.Fuel,
			MaxFuel:   r.cfg.Hover.MaxFuel,
			Level:     r.level,
			Levels:    r.set.Len(),
		},
	}
	for i, pl := range r.platforms {
		s.Platforms[i] = PlatformView{X: pl.Pos.X, Y: pl.Pos.Y, Radius: pl.Radius, Coins: pl.Coins}
	}
	for i := range r.hoppers {
		h := &r.hoppers[i]
		s.Hoppers[i] = HopperView{
			X:          h.Pos.X,
			Y:          h.Pos.Y,
			Radius:     h.Radius,
			JumpOffset: h.JumpOffset(),
			Mirrored:   h.Mirrored(),
			BulbOn:     h.BulbOn,
		}
	}
	if r.sentinel != nil {
		s.Sentinel = &SentinelView{
			X:        r.sentinel.Pos.X,
			Y:        r.sentinel.Pos.Y,
			Radius:   r.sentinel.Radius,
			Looking:  r.sentinel.IsLooking(),
			Shooting: r.sentinel.Shooting,
		}
	}
	return s
}

// Hash returns a deterministic hash of the snapshot for replay comparison.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "B:%d;S:%d;T:%d;", s.Biome, s.State, s.Tick)

	p := s.Player
	fmt.Fprintf(h, "P:%.6f,%.6f,%.6f,%t,%d;", p.X, p.Y, p.Angle, p.Hovering, p.Attached)

	fmt.Fprintf(h, "L:")
	for _, pl := range s.Platforms {
		fmt.Fprintf(h, "%.6f,%.6f,%d|", pl.X, pl.Y, pl.Coins)
	}

	fmt.Fprintf(h, ";E:")
	for _, e := range s.Hoppers {
		fmt.Fprintf(h, "%.6f,%.6f,%.6f,%t|", e.X, e.Y, e.JumpOffset, e.Mirrored)
	}

	if s.Sentinel != nil {
		fmt.Fprintf(h, ";G:%t,%t", s.Sentinel.Looking, s.Sentinel.Shooting)
	}

	st := s.Stats
	fmt.Fprintf(h, ";H:%.6f,%d,%d,%.6f,%d", st.Health, st.Lives, st.Coins, st.Fuel, st.Level)

	return h.Sum64()
}
