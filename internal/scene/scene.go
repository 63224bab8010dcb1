// Package scene is the boundary between games and whatever draws them.
// Games only add, move, hide and remove tagged entities; hosts read the
// in-memory Graph and project it onto their output.
package scene

import (
	"sort"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
)

// Handle identifies an entity in a scene. Zero is never issued.
type Handle uint32

// Scene is what a minigame is allowed to do with the renderer.
type Scene interface {
	Add(kind core.EntityKind, pos core.Vec3) Handle
	Remove(h Handle)
	SetPosition(h Handle, pos core.Vec3)
	SetVisible(h Handle, visible bool)
}

// Entity is a read-only view of a scene entry.
type Entity struct {
	Handle  Handle
	Kind    core.EntityKind
	Pos     core.Vec3
	Visible bool
}

// Graph is the in-memory Scene used by every host.
type Graph struct {
	entities map[Handle]*Entity
	next     Handle
	stale    int
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{entities: make(map[Handle]*Entity)}
}

func (g *Graph) Add(kind core.EntityKind, pos core.Vec3) Handle {
	g.next++
	h := g.next
	g.entities[h] = &Entity{Handle: h, Kind: kind, Pos: pos, Visible: true}
	return h
}

// Remove deletes an entity. Removing an unknown handle is counted as stale
// and otherwise ignored.
func (g *Graph) Remove(h Handle) {
	if _, ok := g.entities[h]; !ok {
		g.stale++
		return
	}
	delete(g.entities, h)
}

func (g *Graph) SetPosition(h Handle, pos core.Vec3) {
	if e, ok := g.entities[h]; ok {
		e.Pos = pos
	}
}

func (g *Graph) SetVisible(h Handle, visible bool) {
	if e, ok := g.entities[h]; ok {
		e.Visible = visible
	}
}

// Get returns a copy of the entity behind h.
func (g *Graph) Get(h Handle) (Entity, bool) {
	e, ok := g.entities[h]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Len returns the number of live entities.
func (g *Graph) Len() int {
	return len(g.entities)
}

// StaleRemovals counts Remove calls for handles that were not live.
func (g *Graph) StaleRemovals() int {
	return g.stale
}

// Clear drops every entity. Handles keep increasing so stale ones never alias.
func (g *Graph) Clear() {
	clear(g.entities)
}

// Each visits live entities ordered by layer, then by handle.
func (g *Graph) Each(fn func(Entity)) {
	list := make([]Entity, 0, len(g.entities))
	for _, e := range g.entities {
		list = append(list, *e)
	}
	sort.Slice(list, func(i, j int) bool {
		li, lj := list[i].Kind.Layer(), list[j].Kind.Layer()
		if li != lj {
			return li < lj
		}
		return list[i].Handle < list[j].Handle
	})
	for _, e := range list {
		fn(e)
	}
}

// CountKind returns the number of live entities of kind k.
func (g *Graph) CountKind(k core.EntityKind) int {
	n := 0
	for _, e := range g.entities {
		if e.Kind == k {
			n++
		}
	}
	return n
}
