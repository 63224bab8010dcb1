// Package spaceshooter implements a wave shooter: enemies dive in from deep
// space, asteroids drift through the field and destroyed enemies drop
// power-ups.
package spaceshooter

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/keinplan-arcade/internal/config"
	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/game"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

// Kind is the registry key of this game.
const Kind = "space-shooter"

// Contact radii.
const (
	bulletHitRadius  = 1.5
	playerHitRadius  = 1.5
	ramRadius        = 2.0
	pickupRadius     = 1.5
	asteroidHitSlack = 0.5
)

// Asteroid field bounds; leaving one side re-enters from the other.
const (
	wrapX     = 35.0
	wrapY     = 25.0
	wrapFarZ  = 60.0
	wrapNearZ = -30.0
	reenterZ  = 10.0
	refarZ    = 50.0
)

var enemyKinds = [...]core.EntityKind{core.KindFighter, core.KindBomber, core.KindInterceptor}

var powerUpKinds = [...]core.EntityKind{core.KindPowerUpHealth, core.KindPowerUpSpeed, core.KindPowerUpDamage}

type enemy struct {
	h      scene.Handle
	kind   core.EntityKind
	pos    core.Vec3
	health int
	points int
	fire   game.Cooldown
	dead   bool
}

type bullet struct {
	h      scene.Handle
	pos    core.Vec3
	damage int
	spent  bool
}

type asteroid struct {
	h     scene.Handle
	pos   core.Vec3
	vel   core.Vec3
	size  float64
	split bool
}

type powerUp struct {
	h     scene.Handle
	kind  core.EntityKind
	pos   core.Vec3
	taken bool
}

// Game implements the space shooter.
type Game struct {
	game.Base
	cfg config.SpaceShooterConfig

	player    scene.Handle
	pos       core.Vec3
	health    int
	fire      game.Cooldown
	bullets   []*bullet
	shots     []*bullet
	enemies   []*enemy
	asteroids []*asteroid
	powerUps  []*powerUp
	particles *game.Particles

	speedUntil  time.Duration
	damageUntil time.Duration

	score   int
	wave    int
	spawned int
	over    bool
}

// New creates a space shooter.
func New(cfg config.SpaceShooterConfig, deps game.Deps) *Game {
	return &Game{Base: game.Base{Deps: deps}, cfg: cfg}
}

// Register adds the game to r.
func Register(r *registry.Registry, cfg config.SpaceShooterConfig) {
	r.Register(Kind, func(d game.Deps) game.Variant { return New(cfg, d) })
}

func (g *Game) Kind() string  { return Kind }
func (g *Game) Title() string { return "Space Shooter" }

func (g *Game) View() scene.View {
	return scene.Front(wrapX, wrapY)
}

func (g *Game) Status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "wave %d  hp %d  enemies %d", g.wave, g.health, len(g.enemies))
	if g.speedBoosted() {
		b.WriteString("  SPEED")
	}
	if g.damageBoosted() {
		b.WriteString("  DAMAGE")
	}
	return b.String()
}

// Init places the ship, seeds the asteroid belt and launches wave 1.
func (g *Game) Init() {
	g.Setup()
	g.particles = game.NewParticles(g.Objects)
	g.bullets, g.shots, g.enemies, g.asteroids, g.powerUps = nil, nil, nil, nil, nil
	g.score, g.wave, g.spawned, g.over = 0, 0, 0, false
	g.speedUntil, g.damageUntil = 0, 0

	p := g.cfg.Player
	g.pos = core.V3(0, 0, p.Z)
	g.health = p.Health
	g.fire = game.Cooldown{Period: p.FireCooldown}
	g.player = g.Objects.Add(core.KindPlayer, g.pos)

	for range g.cfg.Asteroids.Initial {
		g.spawnAsteroid()
	}
	g.scheduleAsteroids(0)
	g.Emit(events.HealthUpdate{Health: g.health})
	g.startWave(0)
	// The first enemy of wave 1 is due now.
	g.Sched.RunDue(g.Clock.Now())
}

// startWave schedules the enemies of the next wave starting at t and the
// wave after it.
func (g *Game) startWave(t time.Duration) {
	g.wave++
	g.Emit(events.LevelUpdate{Level: g.wave})
	w := g.cfg.Waves
	n := w.Base + g.wave
	for i := range n {
		g.Sched.At(t+time.Duration(i)*w.Interval, func(time.Duration) { g.spawnEnemy() })
	}
	g.Sched.At(t+time.Duration(n)*w.Interval+w.Pause, g.startWave)
	g.Log().Debug("wave", "n", g.wave, "enemies", n, "at", t)
}

func (g *Game) scheduleAsteroids(t time.Duration) {
	g.Sched.At(t+g.cfg.Asteroids.Interval, func(at time.Duration) {
		g.spawnAsteroid()
		g.scheduleAsteroids(at)
	})
}

func (g *Game) enemyType(k core.EntityKind) config.EnemyType {
	switch k {
	case core.KindBomber:
		return g.cfg.Enemies.Bomber
	case core.KindInterceptor:
		return g.cfg.Enemies.Interceptor
	default:
		return g.cfg.Enemies.Fighter
	}
}

func (g *Game) spawnEnemy() {
	if g.over {
		return
	}
	e := g.cfg.Enemies
	k := enemyKinds[g.Rand.Intn(len(enemyKinds))]
	t := g.enemyType(k)
	pos := core.V3(g.RandRange(-15, 15), g.RandRange(10, 20), g.RandRange(5, 15))
	jitter := time.Duration(g.Rand.Float64() * float64(e.FireJitter))
	g.enemies = append(g.enemies, &enemy{
		h:      g.Objects.Add(k, pos),
		kind:   k,
		pos:    pos,
		health: t.Health,
		points: t.Points,
		fire:   game.Cooldown{Period: e.FireMin + jitter},
	})
	g.spawned++
}

func (g *Game) spawnAsteroid() {
	a := g.cfg.Asteroids
	size := g.RandRange(a.MinSize, a.MaxSize)
	pos := core.V3(g.RandRange(-30, 30), g.RandRange(-20, 20), g.RandRange(10, 50))
	vel := core.V3(g.RandRange(-2, 2), g.RandRange(-2, 2), g.RandRange(-3, -1))
	g.addAsteroid(pos, vel, size)
}

func (g *Game) addAsteroid(pos, vel core.Vec3, size float64) {
	g.asteroids = append(g.asteroids, &asteroid{
		h:    g.Objects.Add(core.KindAsteroid, pos),
		pos:  pos,
		vel:  vel,
		size: size,
	})
}

// Update advances the battle by dt.
func (g *Game) Update(dt time.Duration, in core.Intent) {
	if g.over || !g.Advance(dt) {
		return
	}
	sec := dt.Seconds()

	g.updatePlayer(sec, in)
	g.updateEnemies(sec)
	g.updateBullets(sec)
	g.updateAsteroids(sec)
	g.updatePowerUps(sec)
	g.collide()
	g.particles.Update(dt)
	g.sweep()
}

func (g *Game) speedBoosted() bool  { return g.Clock.Now() < g.speedUntil }
func (g *Game) damageBoosted() bool { return g.Clock.Now() < g.damageUntil }

func (g *Game) updatePlayer(sec float64, in core.Intent) {
	p := g.cfg.Player
	speed := p.Speed
	if g.speedBoosted() {
		speed *= g.cfg.PowerUps.SpeedMult
	}
	g.pos.X = core.ClampF(g.pos.X+in.MoveX*speed*sec, -p.LimitX, p.LimitX)
	g.pos.Y = core.ClampF(g.pos.Y+in.MoveY*speed*sec, -p.LimitY, p.LimitY)
	g.Objects.Move(g.player, g.pos)

	if in.Action && g.fire.Try(g.Clock.Now()) {
		dmg := g.cfg.Bullets.Damage
		if g.damageBoosted() {
			dmg = int(float64(dmg) * g.cfg.PowerUps.DamageMult)
		}
		pos := g.pos.Add(core.V3(0, 0, 2))
		g.bullets = append(g.bullets, &bullet{h: g.Objects.Add(core.KindBullet, pos), pos: pos, damage: dmg})
	}
}

func (g *Game) updateEnemies(sec float64) {
	e := g.cfg.Enemies
	now := g.Clock.Now()
	for _, en := range g.enemies {
		en.pos.Z -= e.Speed * sec
		g.Objects.Move(en.h, en.pos)
		if en.fire.Try(now) {
			pos := en.pos.Sub(core.V3(0, 0, 1))
			g.shots = append(g.shots, &bullet{
				h:      g.Objects.Add(core.KindEnemyBullet, pos),
				pos:    pos,
				damage: g.cfg.Bullets.EnemyDamage,
			})
		}
		if en.pos.Z < e.MinZ {
			en.dead = true
		}
	}
}

func (g *Game) updateBullets(sec float64) {
	b := g.cfg.Bullets
	for _, bl := range g.bullets {
		bl.pos.Z += b.Speed * sec
		g.Objects.Move(bl.h, bl.pos)
		if bl.pos.Z > b.MaxZ {
			bl.spent = true
		}
	}
	for _, s := range g.shots {
		s.pos.Z -= b.Speed * sec
		g.Objects.Move(s.h, s.pos)
		if s.pos.Z < b.EnemyMinZ {
			s.spent = true
		}
	}
}

// wrap returns v brought back inside the field.
func wrap(v core.Vec3) core.Vec3 {
	switch {
	case v.X > wrapX:
		v.X = -wrapX
	case v.X < -wrapX:
		v.X = wrapX
	}
	switch {
	case v.Y > wrapY:
		v.Y = -wrapY
	case v.Y < -wrapY:
		v.Y = wrapY
	}
	switch {
	case v.Z > wrapFarZ:
		v.Z = reenterZ
	case v.Z < wrapNearZ:
		v.Z = refarZ
	}
	return v
}

func (g *Game) updateAsteroids(sec float64) {
	for _, a := range g.asteroids {
		a.pos = wrap(a.pos.Add(a.vel.Scale(sec)))
		g.Objects.Move(a.h, a.pos)
	}
}

func (g *Game) updatePowerUps(sec float64) {
	step := g.cfg.PowerUps.Drift * sec
	for _, p := range g.powerUps {
		d := g.pos.Sub(p.pos)
		if d.Len() <= step {
			p.pos = g.pos
		} else {
			p.pos = p.pos.Add(d.Normalize().Scale(step))
		}
		g.Objects.Move(p.h, p.pos)
	}
}

func (g *Game) collide() {
	for _, bl := range g.bullets {
		for _, en := range g.enemies {
			if bl.spent || en.dead || bl.pos.Dist(en.pos) >= bulletHitRadius {
				continue
			}
			bl.spent = true
			g.hitEnemy(en, bl.damage)
		}
	}

	for _, s := range g.shots {
		if !s.spent && s.pos.Dist(g.pos) < playerHitRadius {
			s.spent = true
			g.hitPlayer(s.damage)
		}
	}

	for _, en := range g.enemies {
		if !en.dead && g.pos.Dist(en.pos) < ramRadius {
			g.hitPlayer(g.cfg.Enemies.CollisionDamage)
			g.hitEnemy(en, g.cfg.Enemies.RamDamage)
		}
	}

	var debris []*asteroid
	for _, bl := range g.bullets {
		for _, a := range g.asteroids {
			if bl.spent || a.split || bl.pos.Dist(a.pos) >= a.size+asteroidHitSlack {
				continue
			}
			bl.spent = true
			a.split = true
			debris = append(debris, a)
		}
	}
	for _, a := range debris {
		g.breakAsteroid(a)
	}

	for _, p := range g.powerUps {
		if !p.taken && p.pos.Dist(g.pos) < pickupRadius {
			p.taken = true
			g.applyPowerUp(p.kind)
		}
	}
}

func (g *Game) hitEnemy(en *enemy, damage int) {
	en.health -= damage
	if en.health > 0 {
		return
	}
	en.dead = true
	g.score += en.points
	g.Emit(events.ScoreUpdate{Score: g.score})
	g.burst(en.pos)
	if g.Rand.Float64() < g.cfg.PowerUps.DropChance {
		k := powerUpKinds[g.Rand.Intn(len(powerUpKinds))]
		g.powerUps = append(g.powerUps, &powerUp{h: g.Objects.Add(k, en.pos), kind: k, pos: en.pos})
	}
}

func (g *Game) hitPlayer(damage int) {
	if g.over {
		return
	}
	g.health = max(g.health-damage, 0)
	g.Emit(events.HealthUpdate{Health: g.health})
	if g.health == 0 {
		g.over = true
		g.burst(g.pos)
		g.Log().Debug("ship destroyed", "wave", g.wave, "score", g.score)
		g.Emit(events.GameOver{FinalScore: g.score})
	}
}

func (g *Game) breakAsteroid(a *asteroid) {
	c := g.cfg.Asteroids
	g.burst(a.pos)
	if a.size <= c.SplitSize || g.Rand.Float64() >= c.SplitChance {
		return
	}
	for range c.Debris {
		off := core.V3(g.RandRange(-2, 2), g.RandRange(-2, 2), g.RandRange(-2, 2))
		vel := core.V3(g.RandRange(-3, 3), g.RandRange(-3, 3), g.RandRange(-2, 2))
		g.addAsteroid(a.pos.Add(off), vel, a.size*c.DebrisScale)
	}
}

func (g *Game) applyPowerUp(k core.EntityKind) {
	pu := g.cfg.PowerUps
	now := g.Clock.Now()
	switch k {
	case core.KindPowerUpHealth:
		g.health = min(g.health+pu.Health, g.cfg.Player.Health)
		g.Emit(events.HealthUpdate{Health: g.health})
	case core.KindPowerUpSpeed:
		g.speedUntil = now + pu.Duration
	case core.KindPowerUpDamage:
		g.damageUntil = now + pu.Duration
	}
}

func (g *Game) burst(p core.Vec3) {
	c := g.cfg.Particles
	g.particles.Burst(g.Rand, p, c.Count, c.Speed, c.Lifetime)
}

// sweep drops everything marked during this tick.
func (g *Game) sweep() {
	g.bullets = sweepBullets(g.Objects, g.bullets)
	g.shots = sweepBullets(g.Objects, g.shots)

	enemies := g.enemies[:0]
	for _, en := range g.enemies {
		if en.dead {
			g.Objects.Remove(en.h)
			continue
		}
		enemies = append(enemies, en)
	}
	clear(g.enemies[len(enemies):])
	g.enemies = enemies

	asteroids := g.asteroids[:0]
	for _, a := range g.asteroids {
		if a.split {
			g.Objects.Remove(a.h)
			continue
		}
		asteroids = append(asteroids, a)
	}
	clear(g.asteroids[len(asteroids):])
	g.asteroids = asteroids

	powerUps := g.powerUps[:0]
	for _, p := range g.powerUps {
		if p.taken {
			g.Objects.Remove(p.h)
			continue
		}
		powerUps = append(powerUps, p)
	}
	clear(g.powerUps[len(powerUps):])
	g.powerUps = powerUps
}

func sweepBullets(objs *game.Objects, list []*bullet) []*bullet {
	kept := list[:0]
	for _, b := range list {
		if b.spent {
			objs.Remove(b.h)
			continue
		}
		kept = append(kept, b)
	}
	clear(list[len(kept):])
	return kept
}

// Health returns the ship's hull points.
func (g *Game) Health() int { return g.health }

// Cleanup removes every entity; safe to call twice.
func (g *Game) Cleanup() {
	if g.particles != nil {
		g.particles.Clear()
	}
	g.Teardown()
	g.bullets, g.shots, g.enemies, g.asteroids, g.powerUps = nil, nil, nil, nil, nil
}
