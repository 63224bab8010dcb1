package cuberacer

import "github.com/vovakirdan/keinplan-arcade/internal/core"

// Snapshot captures the game state for tests and debugging.
type Snapshot struct {
	Score       int
	Total       int
	Level       int
	Lives       int
	Over        bool
	Pos         core.Vec3
	VelY        float64
	Checkpoints int
	Walls       int
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Score:       g.score,
		Total:       g.Total(),
		Level:       g.level,
		Lives:       g.lives,
		Over:        g.over,
		Pos:         g.pos,
		VelY:        g.velY,
		Checkpoints: len(g.points),
		Walls:       len(g.walls),
	}
}
