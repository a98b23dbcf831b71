// Package levels provides the static level tables for each biome: the
// platform and enemy descriptors plus the coin quota. Sets are read from YAML,
// either the embedded built-ins or a user directory.
package levels

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is wrapped by every validation failure.
var ErrInvalidLevel = errors.New("invalid level")

// PlatformSpec describes one raft. Row, Col and the bounds are 1-based.
type PlatformSpec struct {
	Row        int     `yaml:"row"`
	Col        int     `yaml:"col"`
	LeftBound  int     `yaml:"left_bound"`
	RightBound int     `yaml:"right_bound"`
	Speed      float64 `yaml:"speed"` // px/s
	Coins      int     `yaml:"coins"`
}

// EnemySpec describes one patrolling enemy.
type EnemySpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Speed float64 `yaml:"speed"` // vertical patrol speed, px/s
}

// Level is one entry of a set.
type Level struct {
	Name      string         `yaml:"name"`
	Story     string         `yaml:"story"` // narrative beat key, opaque to the simulation
	NeedCoins int            `yaml:"need_coins"`
	Platforms []PlatformSpec `yaml:"platforms"`
	Enemies   []EnemySpec    `yaml:"enemies"`
}

// Set is the ordered list of levels for one biome.
type Set struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	Levels []Level `yaml:"levels"`
	Source string  `yaml:"-"`
}

// Len returns the number of levels.
func (s Set) Len() int {
	return len(s.Levels)
}

// Grid holds the dimensions a set is validated against.
type Grid struct {
	Columns int
	Rows    int
}

// Validate checks every descriptor against the grid.
func (s Set) Validate(g Grid) error {
	if len(s.Levels) == 0 {
		return fmt.Errorf("levels: set %q has no levels: %w", s.ID, ErrInvalidLevel)
	}
	for i, l := range s.Levels {
		if err := l.Validate(g); err != nil {
			return fmt.Errorf("levels: set %q level %d: %w", s.ID, i+1, err)
		}
	}
	return nil
}

// Validate checks one level against the grid.
func (l Level) Validate(g Grid) error {
	if len(l.Platforms) == 0 {
		return fmt.Errorf("no platforms: %w", ErrInvalidLevel)
	}
	if l.NeedCoins < 0 {
		return fmt.Errorf("need_coins %d is negative: %w", l.NeedCoins, ErrInvalidLevel)
	}

	inCols := func(v int) bool { return v >= 1 && v <= g.Columns }
	for i, p := range l.Platforms {
		switch {
		case p.Row < 1 || p.Row > g.Rows:
			return fmt.Errorf("platform %d: row %d outside 1..%d: %w", i, p.Row, g.Rows, ErrInvalidLevel)
		case !inCols(p.Col):
			return fmt.Errorf("platform %d: col %d outside 1..%d: %w", i, p.Col, g.Columns, ErrInvalidLevel)
		case !inCols(p.LeftBound) || !inCols(p.RightBound):
			return fmt.Errorf("platform %d: bounds %d..%d outside 1..%d: %w", i, p.LeftBound, p.RightBound, g.Columns, ErrInvalidLevel)
		case p.LeftBound >= p.RightBound:
			return fmt.Errorf("platform %d: left bound %d not below right bound %d: %w", i, p.LeftBound, p.RightBound, ErrInvalidLevel)
		case p.Speed <= 0:
			return fmt.Errorf("platform %d: speed must be positive: %w", i, ErrInvalidLevel)
		case p.Coins < 0:
			return fmt.Errorf("platform %d: coins must not be negative: %w", i, ErrInvalidLevel)
		}
	}

	for i, e := range l.Enemies {
		if e.Speed < 0 {
			return fmt.Errorf("enemy %d: speed must not be negative: %w", i, ErrInvalidLevel)
		}
	}

	if total := l.TotalCoins(); l.NeedCoins > total {
		return fmt.Errorf("need_coins %d exceeds the %d coins on the platforms: %w", l.NeedCoins, total, ErrInvalidLevel)
	}
	return nil
}

// TotalCoins returns the coins available in the level.
func (l Level) TotalCoins() int {
	n := 0
	for _, p := range l.Platforms {
		n += p.Coins
	}
	return n
}
