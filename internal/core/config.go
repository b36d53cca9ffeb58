package core

import "time"

// DefaultTickInterval is the stabilization period used when nothing overrides it.
const DefaultTickInterval = 100 * time.Millisecond

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Simulation period; 0 lets the game config decide
	Seed         int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickInterval: 0,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventSwap         EventKind = iota // A swap gesture was validated
	EventReshuffle                     // The board had no legal move and was re-rolled
	EventLevelCleared                  // A campaign target was reached
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventSwap:
		return "swap"
	case EventReshuffle:
		return "reshuffle"
	case EventLevelCleared:
		return "level_cleared"
	default:
		return "unknown"
	}
}

// Event is emitted by Game.Step so the platform can log or journal it.
// Tick is the game's simulation tick at the moment the event happened.
type Event struct {
	Kind      EventKind
	Tick      uint64
	From      int
	To        int
	Committed bool
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
