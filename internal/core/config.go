package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; the adventure world is authored, so it only feeds run IDs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// TickDuration returns the simulated time covered by one Step call.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the current run has ended (death)
	Paused   bool // Whether the game is paused
	Playing  bool // Whether a run is in progress
}

// RunOutcome describes how a run finished.
type RunOutcome string

const (
	OutcomeWon       RunOutcome = "won"
	OutcomeDead      RunOutcome = "dead"
	OutcomeAbandoned RunOutcome = "abandoned"
)

// RunSummary is reported once per run when it ends, for persistence.
type RunSummary struct {
	RunID          string
	PlayerName     string
	Race           string
	ClassID        string
	Score          int
	Treasures      int
	TotalTreasures int
	Outcome        RunOutcome
	Duration       time.Duration
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Ended is non-nil on the tick a run finished.
	Ended *RunSummary
}
