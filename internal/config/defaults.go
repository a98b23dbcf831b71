package config

import (
	_ "embed"
)

//go:embed defaults/crossing.yaml
var defaultCrossingYAML []byte

// DefaultCrossingConfig returns the built-in tuning. It mirrors
// defaults/crossing.yaml and is used when the embedded file cannot be parsed.
func DefaultCrossingConfig() CrossingConfig {
	return CrossingConfig{
		World: WorldConfig{
			Width:     800,
			Height:    600,
			LeftBank:  100,
			RightBank: 100,
			Columns:   6,
			Lanes:     []float64{200, 300, 400},
			WinMargin: 40,
		},
		Player: PlayerConfig{
			Radius:         12,
			SpawnX:         50,
			SpawnY:         300,
			JumpDuration:   0.5,
			JumpHeight:     40,
			AngularSpeed:   2.0,
			MaxHealth:      100,
			Lives:          3,
			DamageDuration: 1.0,
			BlinkInterval:  0.1,
		},
		Thrust: ThrustConfig{
			Accel:    1200,
			Friction: 0.85,
		},
		Hover: HoverConfig{
			MaxFuel:    100,
			Depletion:  25,
			Regen:      10,
			Amplitude:  20,
			BaseOffset: 10,
		},
		Platform: PlatformConfig{
			Radius:        25,
			Padding:       0.5,
			Correction:    0.25,
			MinSeparation: 0.1,
		},
		Hopper: HopperConfig{
			Radius:         20,
			JumpDuration:   0.6,
			JumpHeight:     30,
			DetectionRange: 40,
			FlipInterval:   0.3,
			BulbInterval:   0.5,
			HoverAmplitude: 30,
			HoverFrequency: 2,
		},
		Sentinel: SentinelConfig{
			X:             400,
			Y:             60,
			Radius:        30,
			TimeToTurn:    3,
			ShootDuration: 0.5,
			MotionX:       9,
			MotionY:       12,
			BaseDamage:    10,
			HealthDivisor: 3,
		},
		Biomes: map[string]BiomeRules{
			"river": {Speed: 200, ContactDamage: 35, Action: "jump"},
			"space": {Speed: 100, ContactDamage: 35, Action: "hover_hold"},
			"squid": {Speed: 100, ContactDamage: 10, Action: "none"},
		},
		Difficulty: DifficultyConfig{
			Enabled:         false,
			InitialLevel:    0,
			SpeedMultiplier: 0.5,
			MaxAtLevel:      3,
		},
	}
}
