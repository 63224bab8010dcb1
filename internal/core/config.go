package core

import "time"

// RuntimeConfig contains host-level settings shared by every game session.
type RuntimeConfig struct {
	ScreenW       int           // Screen width in characters (terminal hosts)
	ScreenH       int           // Screen height in characters (terminal hosts)
	FPS           int           // Frame callbacks per second requested from the host
	Seed          int64         // RNG seed; 0 means derive from the clock
	MaxFrameDelta time.Duration // Upper bound for a single frame delta
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:       80,
		ScreenH:       24,
		FPS:           30,
		Seed:          0,
		MaxFrameDelta: 250 * time.Millisecond,
	}
}

// FrameInterval returns the wall-clock period between host frames.
func (c RuntimeConfig) FrameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}
