package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

type particle struct {
	h   scene.Handle
	pos core.Vec3
	vel core.Vec3
	ttl time.Duration
}

// Particles are short-lived cosmetic entities. They never affect scoring.
type Particles struct {
	objs    *Objects
	list    []particle
	Gravity float64
}

// NewParticles creates a particle set that registers entities through objs.
func NewParticles(objs *Objects) *Particles {
	return &Particles{objs: objs, Gravity: -9.8}
}

// Burst spawns n particles at p moving outward at up to speed.
func (ps *Particles) Burst(rng *rand.Rand, p core.Vec3, n int, speed float64, ttl time.Duration) {
	for range n {
		theta := rng.Float64() * 2 * math.Pi
		phi := rng.Float64() * math.Pi
		s := speed * (0.5 + rng.Float64()/2)
		vel := core.V3(
			math.Sin(phi)*math.Cos(theta)*s,
			math.Abs(math.Cos(phi))*s,
			math.Sin(phi)*math.Sin(theta)*s,
		)
		h := ps.objs.Add(core.KindParticle, p)
		ps.list = append(ps.list, particle{h: h, pos: p, vel: vel, ttl: ttl})
	}
}

// Update moves particles and removes expired ones.
func (ps *Particles) Update(dt time.Duration) {
	sec := dt.Seconds()
	kept := ps.list[:0]
	for _, p := range ps.list {
		p.ttl -= dt
		if p.ttl <= 0 {
			ps.objs.Remove(p.h)
			continue
		}
		p.vel.Y += ps.Gravity * sec
		p.pos = p.pos.Add(p.vel.Scale(sec))
		ps.objs.Move(p.h, p.pos)
		kept = append(kept, p)
	}
	ps.list = kept
}

func (ps *Particles) Len() int { return len(ps.list) }

// Clear removes every particle.
func (ps *Particles) Clear() {
	for _, p := range ps.list {
		ps.objs.Remove(p.h)
	}
	ps.list = nil
}
