package crossing

import (
	"fmt"

	"github.com/vovakirdan/biome-crossing/internal/config"
)

// Biome selects one of the three rule sets.
type Biome int

const (
	River Biome = iota
	Space
	Squid
)

// Biomes lists every biome in menu order.
var Biomes = []Biome{River, Space, Squid}

// ID returns the identifier used for config, level files and the registry.
func (b Biome) ID() string {
	switch b {
	case River:
		return "river"
	case Space:
		return "space"
	case Squid:
		return "squid"
	default:
		return "unknown"
	}
}

// Title returns the display name.
func (b Biome) Title() string {
	switch b {
	case River:
		return "River Crossing"
	case Space:
		return "Space Crossing"
	case Squid:
		return "Squid Crossing"
	default:
		return "Unknown"
	}
}

// Summary is the one-line pitch shown in the biome menu.
func (b Biome) Summary() string {
	switch b {
	case River:
		return "Ride the logs, mind the crocodiles"
	case Space:
		return "Thrust across the void between drifting rocks"
	case Squid:
		return "Freeze when the doll turns around"
	default:
		return ""
	}
}

func (b Biome) String() string { return b.ID() }

// ParseBiome maps an identifier to a biome.
func ParseBiome(id string) (Biome, error) {
	for _, b := range Biomes {
		if b.ID() == id {
			return b, nil
		}
	}
	return 0, fmt.Errorf("crossing: unknown biome %q", id)
}

// Locomotion selects the player movement model.
type Locomotion int

const (
	LocomotionGround Locomotion = iota // direct velocity from held keys
	LocomotionThrust                   // acceleration with friction
)

func (l Locomotion) String() string {
	if l == LocomotionThrust {
		return "thrust"
	}
	return "ground"
}

// ActionMode selects what the action key does.
type ActionMode int

const (
	ActionJump        ActionMode = iota
	ActionHoverHold                     // press activates, release deactivates
	ActionHoverToggle                   // each press toggles
	ActionNone
)

func (a ActionMode) String() string {
	switch a {
	case ActionHoverHold:
		return "hover_hold"
	case ActionHoverToggle:
		return "hover_toggle"
	case ActionNone:
		return "none"
	default:
		return "jump"
	}
}

func parseActionMode(s string) ActionMode {
	switch s {
	case "hover_hold":
		return ActionHoverHold
	case "hover_toggle":
		return ActionHoverToggle
	case "none":
		return ActionNone
	default:
		return ActionJump
	}
}

// Traits parameterizes a round with the behavior of one biome.
type Traits struct {
	Biome             Biome
	Locomotion        Locomotion
	Action            ActionMode
	Speed             float64
	ContactDamage     float64
	StripHazard       bool // unattached, grounded players in the strip drown
	Sentinel          bool // a guard shoots players moving while watched
	CoinGate          bool // winning needs the level quota
	Hover             bool
	HopperMode        HopperMode
	RespawnOnLifeLoss bool
}

// TraitsFor derives the traits of b from the configuration.
func TraitsFor(b Biome, cfg config.CrossingConfig) Traits {
	rules := cfg.Rules(b.ID())
	t := Traits{
		Biome:             b,
		Action:            parseActionMode(rules.Action),
		Speed:             rules.Speed,
		ContactDamage:     rules.ContactDamage,
		RespawnOnLifeLoss: true,
	}
	switch b {
	case River:
		t.Locomotion = LocomotionGround
		t.StripHazard = true
		t.HopperMode = HopperGround
	case Space:
		t.Locomotion = LocomotionThrust
		t.StripHazard = true
		t.CoinGate = true
		t.HopperMode = HopperHover
	case Squid:
		t.Locomotion = LocomotionThrust
		t.Sentinel = true
		t.CoinGate = true
		t.HopperMode = HopperGuard
	}
	t.Hover = t.Action == ActionHoverHold || t.Action == ActionHoverToggle
	return t
}
