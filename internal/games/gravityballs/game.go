// Package gravityballs implements a tilting arena where balls fall from the
// sky and have to be steered into targets around the rim.
package gravityballs

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
const Kind = "gravity-balls"

type ball struct {
	h      scene.Handle
	pos    core.Vec3
	vel    core.Vec3
	age    time.Duration
	scored bool
}

type fixture struct {
	h   scene.Handle
	pos core.Vec3
}

// Game implements the gravity balls arena.
type Game struct {
	game.Base
	cfg config.GravityBallsConfig

	balls     []*ball
	targets   []fixture
	obstacles []fixture
	walls     []core.Box
	particles *game.Particles

	spawn game.Cooldown
	drop  game.Cooldown

	score int
	level int
	lives int
	over  bool

	camAngle float64
	camDist  float64
}

// New creates a gravity balls game.
func New(cfg config.GravityBallsConfig, deps game.Deps) *Game {
	return &Game{Base: game.Base{Deps: deps}, cfg: cfg}
}

// Register adds the game to r.
func Register(r *registry.Registry, cfg config.GravityBallsConfig) {
	r.Register(Kind, func(d game.Deps) game.Variant { return New(cfg, d) })
}

func (g *Game) Kind() string  { return Kind }
func (g *Game) Title() string { return "Gravity Balls" }

func (g *Game) View() scene.View {
	return scene.TopDown(g.cfg.Arena.HalfSize + 1)
}

func (g *Game) Status() string {
	return fmt.Sprintf("balls %d  targets %d  cam %.0f°/%.0f",
		len(g.balls), len(g.targets), math.Mod(g.camAngle*180/math.Pi, 360), g.camDist)
}

// Init builds the arena for level 1.
func (g *Game) Init() {
	g.Setup()
	g.particles = game.NewParticles(g.Objects)
	g.balls = nil
	g.targets = nil
	g.obstacles = nil
	g.score, g.level, g.lives, g.over = 0, 1, g.cfg.Lives, false
	g.camAngle, g.camDist = 0, g.cfg.Camera.Distance
	g.spawn = game.Cooldown{Period: g.cfg.Balls.Interval}
	g.drop = game.Cooldown{Period: g.cfg.Balls.DropCooldown}

	g.buildWalls()
	g.placeObstacles()
	g.placeTargets()
	g.Emit(events.LivesUpdate{Lives: g.lives})
}

func (g *Game) buildWalls() {
	a := g.cfg.Arena
	half, t, h := a.HalfSize, a.WallThickness/2, a.WallHeight/2
	g.walls = []core.Box{
		{Center: core.V3(half, h, 0), Half: core.V3(t, h, half)},
		{Center: core.V3(-half, h, 0), Half: core.V3(t, h, half)},
		{Center: core.V3(0, h, half), Half: core.V3(half, h, t)},
		{Center: core.V3(0, h, -half), Half: core.V3(half, h, t)},
	}
	// Wall markers every 2 units so renderers can draw the rim.
	for x := -half; x <= half; x += 2 {
		g.Objects.Add(core.KindWall, core.V3(x, 0, half))
		g.Objects.Add(core.KindWall, core.V3(x, 0, -half))
	}
	for z := -half + 2; z < half; z += 2 {
		g.Objects.Add(core.KindWall, core.V3(half, 0, z))
		g.Objects.Add(core.KindWall, core.V3(-half, 0, z))
	}
}

func (g *Game) ringPoint(r config.RingPlacement, y float64) core.Vec3 {
	angle := g.Rand.Float64() * 2 * math.Pi
	radius := g.RandRange(r.MinRadius, r.MaxRadius)
	return core.V3(math.Cos(angle)*radius, y, math.Sin(angle)*radius)
}

func (g *Game) placeObstacles() {
	for _, o := range g.obstacles {
		g.Objects.Remove(o.h)
	}
	g.obstacles = g.obstacles[:0]
	for range g.cfg.Obstacles.Base + g.level {
		p := g.ringPoint(g.cfg.Obstacles, 1)
		g.obstacles = append(g.obstacles, fixture{h: g.Objects.Add(core.KindObstacle, p), pos: p})
	}
}

func (g *Game) placeTargets() {
	for _, t := range g.targets {
		g.Objects.Remove(t.h)
	}
	g.targets = g.targets[:0]
	for range g.cfg.Targets.Base + g.level {
		p := g.ringPoint(g.cfg.Targets, g.cfg.Physics.FloorY)
		g.targets = append(g.targets, fixture{h: g.Objects.Add(core.KindTarget, p), pos: p})
	}
}

func (g *Game) spawnBall() {
	b := g.cfg.Balls
	p := core.V3(0, b.Height, 0)
	v := core.V3(g.RandRange(-b.MaxSpeed, b.MaxSpeed), 0, g.RandRange(-b.MaxSpeed, b.MaxSpeed))
	g.balls = append(g.balls, &ball{h: g.Objects.Add(core.KindBall, p), pos: p, vel: v})
}

// Update advances the arena by dt.
func (g *Game) Update(dt time.Duration, in core.Intent) {
	if g.over || !g.Advance(dt) {
		return
	}
	sec := dt.Seconds()
	now := g.Clock.Now()

	g.camAngle += sec * g.cfg.Camera.RotateSpeed
	g.camDist = core.ClampF(g.camDist-float64(in.Zoom), g.cfg.Camera.MinDistance, g.cfg.Camera.MaxDistance)

	if g.spawn.Try(now) {
		g.spawnBall()
	}
	if in.Action && g.drop.Try(now) {
		g.spawnBall()
	}

	tilt := core.V3(in.MoveX, 0, in.MoveY).Scale(g.cfg.Physics.Tilt * sec)

	kept := g.balls[:0]
	for _, b := range g.balls {
		b.age += dt
		integrate(b, sec, tilt, g.cfg.Physics)
		g.collideFloor(b)
		g.collideWalls(b)
		g.collideObstacles(b)
		g.collideTargets(b)

		if g.expired(b) {
			g.Objects.Remove(b.h)
			if !b.scored {
				g.loseLife()
			}
			continue
		}
		g.Objects.Move(b.h, b.pos)
		kept = append(kept, b)
	}
	g.balls = kept

	if !g.over && len(g.targets) == 0 {
		g.levelUp()
	}
	g.particles.Update(dt)
}

// integrate applies one tick: gravity, then friction, then motion.
func integrate(b *ball, sec float64, tilt core.Vec3, p config.BallPhysics) {
	b.vel = b.vel.Add(tilt)
	b.vel.Y += p.Gravity * sec
	b.vel = b.vel.Scale(p.Friction)
	b.pos = b.pos.Add(b.vel.Scale(sec))
}

func (g *Game) collideFloor(b *ball) {
	p := g.cfg.Physics
	if b.pos.Y > p.FloorY {
		return
	}
	b.pos.Y = p.FloorY
	b.vel.Y *= -p.Damping
	b.vel.X *= p.Damping
	b.vel.Z *= p.Damping
	if math.Abs(b.vel.Y) > 2 {
		g.particles.Burst(g.Rand, b.pos, 3, g.cfg.Particles.Speed/2, g.cfg.Particles.Lifetime/2)
	}
}

func (g *Game) collideWalls(b *ball) {
	for _, w := range g.walls {
		if !w.Contains(b.pos) {
			continue
		}
		dir := b.pos.Sub(w.Center)
		dir.Y = 0
		b.pos = b.pos.Add(dir.Normalize().Scale(g.cfg.Arena.WallPush))
		b.vel = b.vel.Scale(-g.cfg.Physics.Damping)
	}
}

func (g *Game) collideObstacles(b *ball) {
	o := g.cfg.Obstacles
	for _, ob := range g.obstacles {
		if b.pos.Dist(ob.pos) >= o.HitRadius {
			continue
		}
		n := b.pos.Sub(ob.pos).Normalize()
		b.pos = b.pos.Add(n.Scale(o.Push))
		b.vel = b.vel.Reflect(n).Scale(g.cfg.Physics.Damping)
	}
}

func (g *Game) collideTargets(b *ball) {
	kept := g.targets[:0]
	for _, t := range g.targets {
		if b.pos.Dist(t.pos) >= g.cfg.Targets.HitRadius {
			kept = append(kept, t)
			continue
		}
		g.Objects.Remove(t.h)
		b.scored = true
		g.addScore(g.cfg.Scoring.Target)
		g.particles.Burst(g.Rand, t.pos, g.cfg.Particles.Count, g.cfg.Particles.Speed, g.cfg.Particles.Lifetime)
	}
	g.targets = kept
}

func (g *Game) expired(b *ball) bool {
	return b.age > g.cfg.Balls.Lifetime ||
		b.pos.Len() > g.cfg.Balls.MaxDistance ||
		b.pos.Y < g.cfg.Balls.MinY
}

func (g *Game) addScore(n int) {
	g.score += n
	g.Emit(events.ScoreUpdate{Score: g.score})
}

func (g *Game) loseLife() {
	if g.over {
		return
	}
	g.lives--
	g.Emit(events.LivesUpdate{Lives: g.lives})
	if g.lives <= 0 {
		g.over = true
		g.Log().Debug("out of lives", "score", g.score, "level", g.level)
		g.Emit(events.GameOver{FinalScore: g.score})
	}
}

func (g *Game) levelUp() {
	g.level++
	g.addScore(g.cfg.Scoring.LevelBonus)
	g.Emit(events.LevelUpdate{Level: g.level})
	g.placeObstacles()
	g.placeTargets()
	g.particles.Burst(g.Rand, core.V3(0, 2, 0), g.cfg.Particles.Count*2, g.cfg.Particles.Speed, g.cfg.Particles.Lifetime)
}

// Cleanup removes every entity; safe to call twice.
func (g *Game) Cleanup() {
	if g.particles != nil {
		g.particles.Clear()
	}
	g.Teardown()
	g.balls, g.targets, g.obstacles = nil, nil, nil
}
