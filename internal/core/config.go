package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int    // Current score (distance traveled)
	Coins     int    // Coins collected this run
	Level     int    // Level being played, 0 while in the menu
	Phase     string // Lifecycle phase name (idle, running, ...)
	GameOver  bool   // Whether the run ended in failure and was finalized
	Completed bool   // Whether the level was completed and finalized
	Paused    bool   // Whether the game is paused
	InMenu    bool   // Whether the game sits in its level menu
}

// Ended reports whether the run reached a finalized terminal state.
func (s GameState) Ended() bool {
	return s.GameOver || s.Completed
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
