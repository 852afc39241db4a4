package adventure

import (
	"time"

	"github.com/vovakirdan/realmquest/internal/core"
)

// Snapshot is a read-only copy of the observable session state.
type Snapshot struct {
	Status         Status
	RunID          string
	Player         string
	Race           string
	Class          ClassID
	Icon           rune
	Position       core.Point
	Facing         core.Point
	Health         int
	MaxHealth      int
	Mana           int
	ManaCap        int
	Score          int
	Collected      []string // Sorted treasure keys
	TotalTreasures int
	Cooldown       int
	TrapWarning    bool
	Won            bool
	Animals        []Animal
	Elapsed        time.Duration
}

// Playing reports whether a run is active and accepting input.
func (s Snapshot) Playing() bool {
	return s.Status == StatusPlaying || s.Status == StatusWon
}

// Snapshot copies the current state. With no run, only Status and
// TotalTreasures are set.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Status:         s.status,
		TotalTreasures: len(s.world.Treasures),
	}

	run := s.run
	if run == nil {
		return snap
	}

	snap.RunID = run.ID
	snap.Player = run.Profile.Name
	snap.Race = run.Profile.Race
	snap.Class = run.Profile.Class.ID
	snap.Icon = run.Profile.Class.Icon
	snap.Position = run.Position
	snap.Facing = run.Facing
	snap.Health = run.Health
	snap.MaxHealth = run.MaxHealth
	snap.Mana = run.Mana
	snap.ManaCap = run.ManaCap
	snap.Score = run.Score
	snap.Collected = run.collectedKeys()
	snap.Cooldown = run.Cooldown
	snap.TrapWarning = run.TrapWarn
	snap.Won = run.Won
	snap.Animals = append([]Animal(nil), run.Animals...)
	snap.Elapsed = s.sched.Now() - run.StartedAt
	return snap
}
