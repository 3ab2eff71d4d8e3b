package core

import "time"

// RuntimeConfig contains configuration passed to a front-end session at start.
type RuntimeConfig struct {
	ScreenW    int           // Screen width in characters
	ScreenH    int           // Screen height in characters
	StepTime   time.Duration // Duration of the move animation between two boards
	Colorblind bool          // Start with the colorblind palette
	Profile    string        // Save-data profile the session records completions under
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		StepTime:   125 * time.Millisecond,
		Colorblind: true,
		Profile:    "local",
	}
}
