package spaceshooter

import "github.com/vovakirdan/keinplan-arcade/internal/core"

// Snapshot captures the game state for tests and debugging.
type Snapshot struct {
	Score     int
	Wave      int
	Health    int
	Over      bool
	Pos       core.Vec3
	Spawned   int
	Enemies   int
	Bullets   int
	Shots     int
	Asteroids int
	PowerUps  int
	Speed     bool
	Damage    bool
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Score:     g.score,
		Wave:      g.wave,
		Health:    g.health,
		Over:      g.over,
		Pos:       g.pos,
		Spawned:   g.spawned,
		Enemies:   len(g.enemies),
		Bullets:   len(g.bullets),
		Shots:     len(g.shots),
		Asteroids: len(g.asteroids),
		PowerUps:  len(g.powerUps),
		Speed:     g.speedBoosted(),
		Damage:    g.damageBoosted(),
	}
}
