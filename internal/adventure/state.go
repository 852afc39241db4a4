package adventure

import (
	"sort"
	"time"

	"github.com/vovakirdan/realmquest/internal/core"
)

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusNotStarted Status = iota
	StatusPlaying
	StatusWon
	StatusDead
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Unit movement directions. Screen coordinates: y grows downward.
var (
	North = core.Pt(0, -1)
	South = core.Pt(0, 1)
	West  = core.Pt(-1, 0)
	East  = core.Pt(1, 0)
)

func isUnitDirection(d core.Point) bool {
	return d == North || d == South || d == West || d == East
}

// RunState is the mutable state of one run, from Start to death or reset.
type RunState struct {
	ID        string
	Profile   Profile
	Position  core.Point
	Facing    core.Point // Direction of the last successful move
	Health    int
	MaxHealth int
	Mana      int
	ManaCap   int
	Score     int
	Collected map[string]struct{}
	Cooldown  int // Seconds until the special ability is usable
	TrapWarn  bool
	Won       bool
	Animals   []Animal
	StartedAt time.Duration
}

func newRunState(id string, p Profile, w *World, now time.Duration) *RunState {
	animals := make([]Animal, len(w.Animals))
	copy(animals, w.Animals)

	return &RunState{
		ID:        id,
		Profile:   p,
		Position:  w.Start,
		Facing:    East,
		Health:    p.Class.BaseHealth,
		MaxHealth: p.Class.BaseHealth,
		Mana:      p.Class.BaseMana,
		ManaCap:   p.Class.ManaCap,
		Collected: make(map[string]struct{}),
		Animals:   animals,
		StartedAt: now,
	}
}

// HasCollected reports whether the treasure with the given key was picked up.
func (r *RunState) HasCollected(key string) bool {
	_, ok := r.Collected[key]
	return ok
}

// collectedKeys returns the collected set in a stable order.
func (r *RunState) collectedKeys() []string {
	keys := make([]string, 0, len(r.Collected))
	for k := range r.Collected {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RejectReason explains why an input left the state unchanged.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectNotPlaying
	RejectInvalidDirection
	RejectBlocked
	RejectEdge
	RejectNoProfile
	RejectCooldown
	RejectNoMana
	RejectNoTarget
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectNotPlaying:
		return "not playing"
	case RejectInvalidDirection:
		return "invalid direction"
	case RejectBlocked:
		return "blocked"
	case RejectEdge:
		return "edge of the map"
	case RejectNoProfile:
		return "no class profile"
	case RejectCooldown:
		return "ability on cooldown"
	case RejectNoMana:
		return "not enough mana"
	case RejectNoTarget:
		return "no target in range"
	default:
		return "unknown"
	}
}

// Result is returned by every input. A rejected input never mutates state.
type Result struct {
	Applied bool
	Reason  RejectReason
}

func applied() Result {
	return Result{Applied: true}
}

func rejected(reason RejectReason) Result {
	return Result{Reason: reason}
}
