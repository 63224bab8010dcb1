// Package game defines the contract every minigame implements and the small
// helpers they share: an entity registry over the scene, a clock with
// deadlines, cooldowns and cosmetic particles.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

// Simulatable is the lifecycle the session drives.
//
// Init builds the world. Update advances it by dt using this frame's intent
// and is never called while paused. Cleanup removes every entity the game
// added and may be called more than once.
type Simulatable interface {
	Init()
	Update(dt time.Duration, in core.Intent)
	Pause()
	Resume()
	Cleanup()
}

// Variant is a Simulatable the hosts can list and display.
type Variant interface {
	Simulatable
	Kind() string
	Title() string
	// View tells renderers how to flatten the world.
	View() scene.View
	// Status is a one-line HUD summary of game-specific state.
	Status() string
}

// Deps are the collaborators injected into a minigame at construction.
// Factories must tolerate a zero Deps; the registry builds one to read the
// title and never calls Init on it.
type Deps struct {
	Scene  scene.Scene
	Bus    *events.Bus
	Rand   *rand.Rand
	Logger *log.Logger
}

// Log returns the injected logger or a discarding one.
func (d Deps) Log() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

// Base carries the state every minigame needs. Games embed it.
type Base struct {
	Deps
	Objects *Objects
	Clock   Clock
	Sched   Scheduler
	paused  bool
}

// Setup resets the clock and scheduler and binds a fresh entity registry.
// Called from Init.
func (b *Base) Setup() {
	if b.Objects != nil {
		b.Objects.Release()
	}
	if b.Rand == nil {
		b.Rand = rand.New(rand.NewSource(1))
	}
	b.Objects = NewObjects(b.Scene)
	b.Clock = Clock{}
	b.Sched.Reset()
	b.paused = false
}

func (b *Base) Pause()  { b.paused = true }
func (b *Base) Resume() { b.paused = false }

// Paused reports whether the game is paused.
func (b *Base) Paused() bool { return b.paused }

// Advance moves the game clock forward and fires due deadlines.
// It returns false while paused, in which case nothing happens.
func (b *Base) Advance(dt time.Duration) bool {
	if b.paused || b.Objects == nil {
		return false
	}
	if dt < 0 {
		dt = 0
	}
	b.Clock.Advance(dt)
	b.Sched.RunDue(b.Clock.Now())
	return true
}

// After schedules fn d after the current game time.
func (b *Base) After(d time.Duration, fn func(at time.Duration)) TaskID {
	return b.Sched.At(b.Clock.Now()+d, fn)
}

// Teardown cancels pending deadlines and releases every entity.
func (b *Base) Teardown() {
	b.Sched.Reset()
	if b.Objects != nil {
		b.Objects.Release()
	}
}

// Emit publishes e when a bus is attached.
func (b *Base) Emit(e events.Event) {
	if b.Bus != nil {
		b.Bus.Publish(e)
	}
}

// RandRange returns a uniform value in [lo, hi).
func (b *Base) RandRange(lo, hi float64) float64 {
	return lo + b.Rand.Float64()*(hi-lo)
}
