package adventure

import (
	"github.com/vovakirdan/realmquest/internal/core"
)

// Event is something the presentation layer may want to surface.
// Session.Events drains them in the order they happened.
type Event interface {
	adventureEvent()
}

// RunStartedEvent is emitted when Start begins a run.
type RunStartedEvent struct {
	RunID string
	Class ClassID
}

func (RunStartedEvent) adventureEvent() {}

// TreasureCollectedEvent is emitted once per treasure per run.
type TreasureCollectedEvent struct {
	Key   string
	Pos   core.Point
	Score int // Score after the pickup
}

func (TreasureCollectedEvent) adventureEvent() {}

// TrapTriggeredEvent is emitted each time the player enters a trap cell.
type TrapTriggeredEvent struct {
	Pos    core.Point
	Damage int
	Health int // Health after the damage
}

func (TrapTriggeredEvent) adventureEvent() {}

// TrapWarningClearedEvent is emitted when the trap warning expires.
type TrapWarningClearedEvent struct{}

func (TrapWarningClearedEvent) adventureEvent() {}

// AbilityUsedEvent is emitted when a special ability resolves.
type AbilityUsedEvent struct {
	Class    ClassID
	Hit      bool // False when the ability found nothing to act on
	Cooldown int
}

func (AbilityUsedEvent) adventureEvent() {}

// WonEvent is emitted when the last treasure is collected.
type WonEvent struct {
	Score int
}

func (WonEvent) adventureEvent() {}

// DiedEvent is emitted when health reaches zero. The run is torn down
// after the configured death-reset delay.
type DiedEvent struct {
	Pos   core.Point
	Score int
}

func (DiedEvent) adventureEvent() {}

// RunEndedEvent is emitted when a run is torn down, for any reason.
type RunEndedEvent struct {
	Summary core.RunSummary
}

func (RunEndedEvent) adventureEvent() {}
