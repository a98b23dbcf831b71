// Package config provides YAML-based tuning for the crossing simulation:
// world geometry, entity parameters, per-biome rules and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// CrossingConfig contains every tunable used by the simulation.
type CrossingConfig struct {
	World      WorldConfig           `yaml:"world"`
	Player     PlayerConfig          `yaml:"player"`
	Thrust     ThrustConfig          `yaml:"thrust"`
	Hover      HoverConfig           `yaml:"hover"`
	Platform   PlatformConfig        `yaml:"platform"`
	Hopper     HopperConfig          `yaml:"hopper"`
	Sentinel   SentinelConfig        `yaml:"sentinel"`
	Biomes     map[string]BiomeRules `yaml:"biomes"`
	Difficulty DifficultyConfig      `yaml:"difficulty"`
}

// WorldConfig describes the playfield. All values are in world pixels.
type WorldConfig struct {
	Width     float64   `yaml:"width"`
	Height    float64   `yaml:"height"`
	LeftBank  float64   `yaml:"left_bank"`  // safe strip on the left
	RightBank float64   `yaml:"right_bank"` // safe strip on the right
	Columns   int       `yaml:"columns"`    // lane cells across the hazard strip
	Lanes     []float64 `yaml:"lanes"`      // y coordinate of each platform row
	WinMargin float64   `yaml:"win_margin"` // win once x >= width - win_margin
}

// CellWidth returns the width of one lane cell.
func (w WorldConfig) CellWidth() float64 {
	if w.Columns <= 0 {
		return 0
	}
	return (w.Width - w.LeftBank - w.RightBank) / float64(w.Columns)
}

// ColumnX returns the x coordinate of the midpoint of a 1-based column.
func (w WorldConfig) ColumnX(col int) float64 {
	return w.LeftBank + (float64(col)-0.5)*w.CellWidth()
}

// PlayerConfig defines the player body and its state machine timings.
type PlayerConfig struct {
	Radius         float64 `yaml:"radius"`
	SpawnX         float64 `yaml:"spawn_x"`
	SpawnY         float64 `yaml:"spawn_y"`
	JumpDuration   float64 `yaml:"jump_duration"`
	JumpHeight     float64 `yaml:"jump_height"`
	AngularSpeed   float64 `yaml:"angular_speed"` // rad/s
	MaxHealth      float64 `yaml:"max_health"`
	Lives          int     `yaml:"lives"`
	DamageDuration float64 `yaml:"damage_duration"` // blink/invulnerability window
	BlinkInterval  float64 `yaml:"blink_interval"`
}

// ThrustConfig defines the accelerometer-like locomotion.
type ThrustConfig struct {
	Accel    float64 `yaml:"accel"`
	Friction float64 `yaml:"friction"` // velocity multiplier applied every tick
}

// HoverConfig defines the fuel-gated hover.
type HoverConfig struct {
	MaxFuel    float64 `yaml:"max_fuel"`
	Depletion  float64 `yaml:"depletion"` // fuel per second while active
	Regen      float64 `yaml:"regen"`     // fuel per second while inactive
	Amplitude  float64 `yaml:"amplitude"`
	BaseOffset float64 `yaml:"base_offset"`
}

// PlatformConfig defines the rafts and their pairwise resolution.
type PlatformConfig struct {
	Radius        float64 `yaml:"radius"`
	Padding       float64 `yaml:"padding"`
	Correction    float64 `yaml:"correction"`
	MinSeparation float64 `yaml:"min_separation"`
}

// HopperConfig defines the patrolling enemies.
type HopperConfig struct {
	Radius         float64 `yaml:"radius"`
	JumpDuration   float64 `yaml:"jump_duration"`
	JumpHeight     float64 `yaml:"jump_height"`
	DetectionRange float64 `yaml:"detection_range"`
	FlipInterval   float64 `yaml:"flip_interval"`
	BulbInterval   float64 `yaml:"bulb_interval"`
	HoverAmplitude float64 `yaml:"hover_amplitude"`
	HoverFrequency float64 `yaml:"hover_frequency"`
}

// SentinelConfig defines the motion-detecting guard.
type SentinelConfig struct {
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Radius        float64 `yaml:"radius"`
	TimeToTurn    float64 `yaml:"time_to_turn"`
	ShootDuration float64 `yaml:"shoot_duration"`
	MotionX       float64 `yaml:"motion_x"` // speed threshold, px/s
	MotionY       float64 `yaml:"motion_y"`
	BaseDamage    float64 `yaml:"base_damage"`
	HealthDivisor float64 `yaml:"health_divisor"`
}

// BiomeRules holds the per-biome knobs that are numbers rather than behavior.
type BiomeRules struct {
	Speed         float64 `yaml:"speed"`
	ContactDamage float64 `yaml:"contact_damage"`
	Action        string  `yaml:"action"` // jump, hover_hold, hover_toggle, none
}

// Rules returns the rules for a biome id, falling back to the defaults.
func (c CrossingConfig) Rules(biome string) BiomeRules {
	if r, ok := c.Biomes[biome]; ok {
		return r
	}
	return DefaultCrossingConfig().Biomes[biome]
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks that every physical quantity is usable.
func (c CrossingConfig) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"player.radius", c.Player.Radius},
		{"player.jump_duration", c.Player.JumpDuration},
		{"player.max_health", c.Player.MaxHealth},
		{"player.damage_duration", c.Player.DamageDuration},
		{"platform.radius", c.Platform.Radius},
		{"platform.min_separation", c.Platform.MinSeparation},
		{"hopper.radius", c.Hopper.Radius},
		{"hopper.jump_duration", c.Hopper.JumpDuration},
		{"hopper.flip_interval", c.Hopper.FlipInterval},
		{"hopper.bulb_interval", c.Hopper.BulbInterval},
		{"sentinel.radius", c.Sentinel.Radius},
		{"sentinel.time_to_turn", c.Sentinel.TimeToTurn},
		{"sentinel.shoot_duration", c.Sentinel.ShootDuration},
		{"sentinel.health_divisor", c.Sentinel.HealthDivisor},
		{"hover.max_fuel", c.Hover.MaxFuel},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v: %w", p.name, p.v, ErrInvalid)
		}
	}

	if c.World.Columns <= 0 {
		return fmt.Errorf("config: world.columns must be positive: %w", ErrInvalid)
	}
	if len(c.World.Lanes) == 0 {
		return fmt.Errorf("config: world.lanes must not be empty: %w", ErrInvalid)
	}
	if c.World.LeftBank+c.World.RightBank >= c.World.Width {
		return fmt.Errorf("config: banks leave no hazard strip: %w", ErrInvalid)
	}
	if c.Player.Lives <= 0 {
		return fmt.Errorf("config: player.lives must be positive: %w", ErrInvalid)
	}
	if c.Thrust.Friction <= 0 || c.Thrust.Friction > 1 {
		return fmt.Errorf("config: thrust.friction must be in (0, 1], got %v: %w", c.Thrust.Friction, ErrInvalid)
	}

	for id, r := range c.Biomes {
		if r.Speed <= 0 {
			return fmt.Errorf("config: biomes.%s.speed must be positive: %w", id, ErrInvalid)
		}
		if r.ContactDamage <= 0 {
			return fmt.Errorf("config: biomes.%s.contact_damage must be positive: %w", id, ErrInvalid)
		}
		switch r.Action {
		case "", "jump", "hover_hold", "hover_toggle", "none":
		default:
			return fmt.Errorf("config: biomes.%s.action %q is unknown: %w", id, r.Action, ErrInvalid)
		}
	}
	return nil
}
