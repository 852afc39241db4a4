// Package registry provides a global registry for game factories.
// Games register themselves in init() functions so the platform can create
// them by id without importing concrete packages.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/realmquest/internal/core"
)

// Game is the fixed-tick interface between a simulation and the platform.
// Games hold no terminal or Bubble Tea state; the platform maps keys to
// actions, drives the ticks and paints the screen buffer.
type Game interface {
	// ID returns a unique identifier, used by the CLI and score storage.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset initializes or restarts the game for the given screen and tick rate.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input and advances the simulation one tick.
	// StepResult.Ended is set on the tick a run finished.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current score and status flags.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
