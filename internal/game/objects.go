package game

import (
	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

// Objects tracks the entities one game has placed in the scene so they can
// all be removed exactly once.
type Objects struct {
	scene scene.Scene
	live  map[scene.Handle]core.EntityKind
}

// NewObjects creates a registry over s. A nil scene is allowed; handles are
// then never issued.
func NewObjects(s scene.Scene) *Objects {
	return &Objects{scene: s, live: make(map[scene.Handle]core.EntityKind)}
}

// Add places an entity and remembers it.
func (o *Objects) Add(kind core.EntityKind, pos core.Vec3) scene.Handle {
	if o.scene == nil {
		return 0
	}
	h := o.scene.Add(kind, pos)
	o.live[h] = kind
	return h
}

// Remove deletes h from the scene if this registry still owns it.
func (o *Objects) Remove(h scene.Handle) {
	if _, ok := o.live[h]; !ok {
		return
	}
	delete(o.live, h)
	o.scene.Remove(h)
}

func (o *Objects) Move(h scene.Handle, pos core.Vec3) {
	if _, ok := o.live[h]; ok {
		o.scene.SetPosition(h, pos)
	}
}

func (o *Objects) Show(h scene.Handle, visible bool) {
	if _, ok := o.live[h]; ok {
		o.scene.SetVisible(h, visible)
	}
}

// Kind returns the kind h was added with.
func (o *Objects) Kind(h scene.Handle) (core.EntityKind, bool) {
	k, ok := o.live[h]
	return k, ok
}

// Len returns the number of owned entities.
func (o *Objects) Len() int {
	return len(o.live)
}

// Release removes every owned entity. Safe to call repeatedly.
func (o *Objects) Release() {
	for h := range o.live {
		o.scene.Remove(h)
	}
	clear(o.live)
}
