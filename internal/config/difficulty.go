package config

import "math"

// DifficultyConfig scales platform and enemy speeds as the player advances
// through a level set.
type DifficultyConfig struct {
	Enabled         bool    `yaml:"enabled"`
	InitialLevel    float64 `yaml:"initial_level"`    // 0.0 = easy, 1.0 = hard
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to the speed scale at max difficulty
	MaxAtLevel      int     `yaml:"max_at_level"`     // level index at which max difficulty is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset; unknown values mean "use the config".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *CrossingConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Player.DamageDuration *= 1.5
	case DifficultyHard:
		cfg.Player.Lives = 2
	}
}

// DifficultyManager derives the speed scale for a level index.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

// Level returns the difficulty (0.0 to 1.0) for a 0-based level index.
func (d *DifficultyManager) Level(levelIdx int) float64 {
	if !d.cfg.Enabled {
		return d.cfg.InitialLevel
	}
	maxAt := float64(d.cfg.MaxAtLevel)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(levelIdx)/maxAt, 0, 1)
	return d.cfg.InitialLevel + progress*(1.0-d.cfg.InitialLevel)
}

// SpeedScale returns the multiplier applied to level-table speeds.
func (d *DifficultyManager) SpeedScale(levelIdx int) float64 {
	if !d.cfg.Enabled {
		return 1.0
	}
	return 1.0 + d.Level(levelIdx)*d.cfg.SpeedMultiplier
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
