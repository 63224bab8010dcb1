// Package cuberacer implements a maze race: steer a cube through a field of
// walls, dodge cones and collect checkpoints before the time bonus runs out.
package cuberacer

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/keinplan-arcade/internal/config"
	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/game"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

// Kind is the registry key of this game.
const Kind = "cube-racer"

type marker struct {
	h   scene.Handle
	pos core.Vec3
}

// Game implements the cube racer.
type Game struct {
	game.Base
	cfg config.CubeRacerConfig

	player    scene.Handle
	pos       core.Vec3
	velY      float64
	walls     []marker
	obstacles []marker
	points    []marker
	particles *game.Particles

	score     int
	lastTotal int
	level     int
	lives     int
	over      bool
}

// New creates a cube racer.
func New(cfg config.CubeRacerConfig, deps game.Deps) *Game {
	return &Game{Base: game.Base{Deps: deps}, cfg: cfg}
}

// Register adds the game to r.
func Register(r *registry.Registry, cfg config.CubeRacerConfig) {
	r.Register(Kind, func(d game.Deps) game.Variant { return New(cfg, d) })
}

func (g *Game) Kind() string  { return Kind }
func (g *Game) Title() string { return "Cube Racer" }

func (g *Game) View() scene.View {
	return scene.TopDown(g.cfg.Maze.HalfSize + 2)
}

func (g *Game) Status() string {
	return fmt.Sprintf("checkpoints %d/%d  bonus %d",
		g.cfg.Checkpoints.Count-len(g.points), g.cfg.Checkpoints.Count, g.timeBonus())
}

// Init builds the maze and places the player at the origin.
func (g *Game) Init() {
	g.Setup()
	g.particles = game.NewParticles(g.Objects)
	g.walls, g.obstacles, g.points = nil, nil, nil
	g.score, g.level, g.lives, g.over = 0, 1, g.cfg.Lives, false
	g.lastTotal = -1

	g.buildMaze()
	g.placeObstacles()
	g.placeCheckpoints()
	g.pos = core.V3(0, g.cfg.Player.GroundY, 0)
	g.velY = 0
	g.player = g.Objects.Add(core.KindPlayer, g.pos)

	g.Emit(events.LivesUpdate{Lives: g.lives})
	g.emitTotal()
}

func (g *Game) buildMaze() {
	m := g.cfg.Maze
	if m.Spacing <= 0 {
		return
	}
	for x := -m.HalfSize; x <= m.HalfSize; x += m.Spacing {
		for z := -m.HalfSize; z <= m.HalfSize; z += m.Spacing {
			if g.Rand.Float64() >= m.WallChance {
				continue
			}
			p := core.V3(x, g.cfg.Player.GroundY, z)
			if math.Hypot(x, z) <= m.SafeRadius {
				continue
			}
			g.walls = append(g.walls, marker{h: g.Objects.Add(core.KindWall, p), pos: p})
		}
	}
}

// randomOutsideSpawn picks a point in the square of the given half size that
// keeps clear of the spawn point.
func (g *Game) randomOutsideSpawn(half, y, clearance float64) core.Vec3 {
	p := core.V3(g.RandRange(-half, half), y, g.RandRange(-half, half))
	for range 16 {
		if math.Hypot(p.X, p.Z) > clearance {
			return p
		}
		p = core.V3(g.RandRange(-half, half), y, g.RandRange(-half, half))
	}
	// Push straight out along x as a last resort.
	p.X = math.Copysign(clearance+1, p.X)
	return p
}

func (g *Game) placeObstacles() {
	o := g.cfg.Obstacles
	clearance := g.cfg.Maze.SafeRadius + o.HitRadius
	for range o.Count {
		p := g.randomOutsideSpawn(o.HalfRange, 0.5, clearance)
		g.obstacles = append(g.obstacles, marker{h: g.Objects.Add(core.KindObstacle, p), pos: p})
	}
}

func (g *Game) placeCheckpoints() {
	c := g.cfg.Checkpoints
	for _, m := range g.points {
		g.Objects.Remove(m.h)
	}
	g.points = g.points[:0]
	for range c.Count {
		p := g.randomOutsideSpawn(c.HalfRange, 0.1, c.Radius)
		g.points = append(g.points, marker{h: g.Objects.Add(core.KindCheckpoint, p), pos: p})
	}
}

// Update advances the race by dt.
func (g *Game) Update(dt time.Duration, in core.Intent) {
	if g.over || !g.Advance(dt) {
		return
	}
	sec := dt.Seconds()
	pl := g.cfg.Player

	g.pos.X += in.MoveX * pl.Speed * sec
	g.pos.Z += in.MoveY * pl.Speed * sec

	if in.Jump && g.onGround() {
		g.velY = pl.JumpForce
	}
	g.velY += pl.Gravity * sec
	g.pos.Y += g.velY * sec
	if g.overFloor() && g.pos.Y < pl.GroundY {
		g.pos.Y = pl.GroundY
		g.velY = 0
	}

	g.pushOutOfWalls()
	g.Objects.Move(g.player, g.pos)

	if g.hitObstacle() {
		g.loseLife()
	}
	g.collectCheckpoints()
	g.particles.Update(dt)

	if g.over {
		return
	}
	if g.pos.Y < g.cfg.FallY {
		g.finish()
		return
	}
	g.emitTotal()
}

// onGround reports whether the cube rests on the floor.
func (g *Game) onGround() bool {
	return g.overFloor() && g.pos.Y <= g.cfg.Player.GroundY
}

// overFloor reports whether the cube is above the maze floor. Off the edge
// there is nothing to land on.
func (g *Game) overFloor() bool {
	edge := g.cfg.Maze.HalfSize + g.cfg.Maze.Spacing/2
	return math.Abs(g.pos.X) <= edge && math.Abs(g.pos.Z) <= edge
}

func (g *Game) pushOutOfWalls() {
	m := g.cfg.Maze
	for _, w := range g.walls {
		d := core.V3(g.pos.X-w.pos.X, 0, g.pos.Z-w.pos.Z)
		if d.Len() >= m.WallRadius {
			continue
		}
		g.pos = g.pos.Add(d.Normalize().Scale(m.Pushback))
	}
}

func (g *Game) hitObstacle() bool {
	r := g.cfg.Obstacles.HitRadius
	for _, o := range g.obstacles {
		if math.Hypot(g.pos.X-o.pos.X, g.pos.Z-o.pos.Z) < r && g.pos.Y-o.pos.Y < 1.5 {
			return true
		}
	}
	return false
}

func (g *Game) loseLife() {
	g.lives--
	g.Emit(events.LivesUpdate{Lives: g.lives})
	g.particles.Burst(g.Rand, g.pos, g.cfg.Particles.Count, g.cfg.Particles.Speed, g.cfg.Particles.Lifetime)
	if g.lives <= 0 {
		g.finish()
		return
	}
	g.pos = core.V3(0, g.cfg.Player.GroundY, 0)
	g.velY = 0
	g.Objects.Move(g.player, g.pos)
}

func (g *Game) collectCheckpoints() {
	if g.over {
		return
	}
	c := g.cfg.Checkpoints
	kept := g.points[:0]
	for _, p := range g.points {
		if g.pos.Dist(p.pos) >= c.Radius {
			kept = append(kept, p)
			continue
		}
		g.Objects.Remove(p.h)
		g.score += c.Points
		g.particles.Burst(g.Rand, p.pos, g.cfg.Particles.Count, g.cfg.Particles.Speed, g.cfg.Particles.Lifetime)
	}
	g.points = kept

	if len(g.points) == 0 {
		g.score += c.LevelBonus
		g.level++
		g.Emit(events.LevelUpdate{Level: g.level})
		g.Log().Debug("level complete", "level", g.level, "score", g.score)
		g.placeCheckpoints()
	}
}

// timeBonus decays linearly to zero over the bonus window of game time.
func (g *Game) timeBonus() int {
	tb := g.cfg.TimeBonus
	left := max(tb.Window-g.Clock.Now(), 0)
	return int(math.Floor(left.Seconds() * tb.PerSecond))
}

// Total is the displayed score: points plus the remaining time bonus.
func (g *Game) Total() int {
	return g.score + g.timeBonus()
}

func (g *Game) emitTotal() {
	if t := g.Total(); t != g.lastTotal {
		g.lastTotal = t
		g.Emit(events.ScoreUpdate{Score: t})
	}
}

func (g *Game) finish() {
	if g.over {
		return
	}
	g.over = true
	total := g.Total()
	g.lastTotal = total
	g.Emit(events.ScoreUpdate{Score: total})
	g.Emit(events.GameOver{FinalScore: total})
}

// Cleanup removes every entity; safe to call twice.
func (g *Game) Cleanup() {
	if g.particles != nil {
		g.particles.Clear()
	}
	g.Teardown()
	g.walls, g.obstacles, g.points = nil, nil, nil
}
