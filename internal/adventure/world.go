// Package adventure implements the grid adventure: a character explores an
// authored map, avoids traps, collects treasures and uses a class ability.
//
// The package is pure simulation. A Session owns the world, one run and a
// virtual-clock Scheduler; the platform layer feeds it inputs and elapsed
// time and renders its Snapshot.
package adventure

import (
	"fmt"

	"github.com/vovakirdan/realmquest/internal/config"
	"github.com/vovakirdan/realmquest/internal/core"
)

// ObstacleKind is the cosmetic kind of an impassable cell.
type ObstacleKind string

const (
	ObstacleTree ObstacleKind = "tree"
	ObstacleRock ObstacleKind = "rock"
)

// Obstacle is a static impassable cell.
type Obstacle struct {
	Pos  core.Point
	Kind ObstacleKind
}

// Treasure is a collectible cell. Its Key identifies it in a run's collected set.
type Treasure struct {
	Pos core.Point
	Key string
}

// Axis is the line an animal patrols along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Animal is a cosmetic patrolling entity. It never affects the player.
type Animal struct {
	Kind string
	Pos  core.Point
	Axis Axis
	Dir  int // +1 or -1 along Axis
}

// World is the static, authored part of the game. It never mutates at runtime;
// animal positions live in the run state.
type World struct {
	Size      int
	Start     core.Point
	Obstacles []Obstacle
	Traps     []core.Point
	Treasures []Treasure
	Animals   []Animal // Initial placements
}

// TreasureKey formats a cell as the "{x}-{y}" key used for collected treasures.
func TreasureKey(p core.Point) string {
	return fmt.Sprintf("%d-%d", p.X, p.Y)
}

// NewWorld builds a World from configuration. The configuration is expected
// to have passed config.Validate.
func NewWorld(cfg config.WorldConfig) *World {
	w := &World{
		Size:  cfg.Size,
		Start: core.Pt(cfg.Start.X, cfg.Start.Y),
	}

	for _, o := range cfg.Obstacles {
		w.Obstacles = append(w.Obstacles, Obstacle{Pos: core.Pt(o.X, o.Y), Kind: ObstacleKind(o.Kind)})
	}
	for _, t := range cfg.Traps {
		w.Traps = append(w.Traps, core.Pt(t.X, t.Y))
	}
	for _, t := range cfg.Treasures {
		p := core.Pt(t.X, t.Y)
		w.Treasures = append(w.Treasures, Treasure{Pos: p, Key: TreasureKey(p)})
	}
	for _, a := range cfg.Animals {
		axis := AxisX
		if a.Axis == "y" {
			axis = AxisY
		}
		w.Animals = append(w.Animals, Animal{Kind: a.Kind, Pos: core.Pt(a.X, a.Y), Axis: axis, Dir: a.Dir})
	}

	return w
}

// InBounds reports whether p lies on the grid.
func (w *World) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < w.Size && p.Y >= 0 && p.Y < w.Size
}

// Clamp moves p onto the grid, axis by axis.
func (w *World) Clamp(p core.Point) core.Point {
	return core.Pt(core.Clamp(p.X, 0, w.Size-1), core.Clamp(p.Y, 0, w.Size-1))
}

// IsObstacle reports whether p is impassable.
// The obstacle set is small and fixed, so a linear scan is fine.
func (w *World) IsObstacle(p core.Point) bool {
	_, ok := w.ObstacleAt(p)
	return ok
}

// ObstacleAt returns the obstacle occupying p, if any.
func (w *World) ObstacleAt(p core.Point) (Obstacle, bool) {
	for _, o := range w.Obstacles {
		if o.Pos == p {
			return o, true
		}
	}
	return Obstacle{}, false
}

// IsTrap reports whether p holds a trap.
func (w *World) IsTrap(p core.Point) bool {
	for _, t := range w.Traps {
		if t == p {
			return true
		}
	}
	return false
}

// FindTreasureAt returns the treasure authored at p, collected or not.
func (w *World) FindTreasureAt(p core.Point) (Treasure, bool) {
	for _, t := range w.Treasures {
		if t.Pos == p {
			return t, true
		}
	}
	return Treasure{}, false
}

// stepAnimal advances an animal one cell along its axis. Hitting the grid edge
// or an obstacle reverses its direction and it waits in place for that tick.
func (w *World) stepAnimal(a Animal) Animal {
	delta := core.Pt(a.Dir, 0)
	if a.Axis == AxisY {
		delta = core.Pt(0, a.Dir)
	}

	next := a.Pos.Add(delta)
	if !w.InBounds(next) || w.IsObstacle(next) {
		a.Dir = -a.Dir
		return a
	}
	a.Pos = next
	return a
}
