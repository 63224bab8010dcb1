package gravityballs

import "github.com/vovakirdan/keinplan-arcade/internal/core"

// Snapshot captures the game state for tests and debugging.
type Snapshot struct {
	Score     int
	Level     int
	Lives     int
	Over      bool
	Balls     []core.Vec3
	Targets   int
	Obstacles int
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Score:     g.score,
		Level:     g.level,
		Lives:     g.lives,
		Over:      g.over,
		Targets:   len(g.targets),
		Obstacles: len(g.obstacles),
	}
	for _, b := range g.balls {
		s.Balls = append(s.Balls, b.pos)
	}
	return s
}
