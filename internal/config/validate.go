package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every schema or consistency failure.
var ErrInvalidConfig = errors.New("invalid config")

// RequiredClasses are the class ids every configuration must define.
var RequiredClasses = []string{"warrior", "mage", "rogue"}

// Validate checks cross-field invariants the schema cannot express:
// authored cells are in bounds, nothing interactive sits on an obstacle,
// treasures are unique and every class is present.
func Validate(cfg QuestConfig) error {
	w := cfg.World
	if w.Size < 1 {
		return fmt.Errorf("%w: world size %d", ErrInvalidConfig, w.Size)
	}

	inBounds := func(x, y int) bool {
		return x >= 0 && x < w.Size && y >= 0 && y < w.Size
	}

	blocked := make(map[Cell]bool, len(w.Obstacles))
	for _, o := range w.Obstacles {
		if !inBounds(o.X, o.Y) {
			return fmt.Errorf("%w: obstacle (%d,%d) out of bounds", ErrInvalidConfig, o.X, o.Y)
		}
		if o.Kind != "tree" && o.Kind != "rock" {
			return fmt.Errorf("%w: obstacle (%d,%d) has kind %q", ErrInvalidConfig, o.X, o.Y, o.Kind)
		}
		blocked[Cell{X: o.X, Y: o.Y}] = true
	}

	if !inBounds(w.Start.X, w.Start.Y) || blocked[w.Start] {
		return fmt.Errorf("%w: start (%d,%d) is not walkable", ErrInvalidConfig, w.Start.X, w.Start.Y)
	}

	for _, t := range w.Traps {
		if !inBounds(t.X, t.Y) || blocked[t] {
			return fmt.Errorf("%w: trap (%d,%d) is not walkable", ErrInvalidConfig, t.X, t.Y)
		}
	}

	if len(w.Treasures) == 0 {
		return fmt.Errorf("%w: world has no treasures", ErrInvalidConfig)
	}
	seen := make(map[Cell]bool, len(w.Treasures))
	for _, t := range w.Treasures {
		if !inBounds(t.X, t.Y) || blocked[t] {
			return fmt.Errorf("%w: treasure (%d,%d) is not walkable", ErrInvalidConfig, t.X, t.Y)
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate treasure at (%d,%d)", ErrInvalidConfig, t.X, t.Y)
		}
		seen[t] = true
	}

	for _, a := range w.Animals {
		if !inBounds(a.X, a.Y) || blocked[Cell{X: a.X, Y: a.Y}] {
			return fmt.Errorf("%w: animal %q at (%d,%d) is not walkable", ErrInvalidConfig, a.Kind, a.X, a.Y)
		}
		if a.Axis != "x" && a.Axis != "y" {
			return fmt.Errorf("%w: animal %q has axis %q", ErrInvalidConfig, a.Kind, a.Axis)
		}
		if a.Dir != 1 && a.Dir != -1 {
			return fmt.Errorf("%w: animal %q has dir %d", ErrInvalidConfig, a.Kind, a.Dir)
		}
	}

	for _, id := range RequiredClasses {
		cl, ok := cfg.Class(id)
		if !ok {
			return fmt.Errorf("%w: class %q is missing", ErrInvalidConfig, id)
		}
		if cl.Health <= 0 {
			return fmt.Errorf("%w: class %q has health %d", ErrInvalidConfig, id, cl.Health)
		}
		if cl.Mana > cl.ManaCap {
			return fmt.Errorf("%w: class %q starts above its mana cap", ErrInvalidConfig, id)
		}
	}

	if m := cfg.Abilities.Rogue.Mode; m != DashDiagonal && m != DashFacing {
		return fmt.Errorf("%w: rogue dash mode %q", ErrInvalidConfig, m)
	}

	t := cfg.Timers
	if t.CooldownTick <= 0 || t.ManaRegen <= 0 || t.Patrol <= 0 || t.TrapWarning <= 0 || t.DeathReset < 0 {
		return fmt.Errorf("%w: timer intervals must be positive", ErrInvalidConfig)
	}

	return nil
}
