// Package registry maps game kinds to factories. A Registry is built once at
// startup and passed to whatever needs to create games.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/keinplan-arcade/internal/game"
)

// ErrUnknownKind is returned by Create for kinds that were never registered.
var ErrUnknownKind = errors.New("unknown game kind")

// Factory creates a new minigame bound to the given dependencies.
type Factory func(deps game.Deps) game.Variant

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Registry holds the game factories. The SSH server creates sessions from
// several goroutines, so lookups are guarded.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	titles    map[string]string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
	}
}

// Register adds a game factory.
// Panics if a game with the same kind is already registered.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", kind))
	}

	r.factories[kind] = f
	// Zero deps are enough to read the title.
	r.titles[kind] = f(game.Deps{}).Title()
}

// List returns information about all registered games, sorted by kind.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.factories))
	for id := range r.factories {
		result = append(result, GameInfo{ID: id, Title: r.titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game of the given kind.
func (r *Registry) Create(kind string, deps game.Deps) (game.Variant, error) {
	r.mu.RLock()
	f, ok := r.factories[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q: %w", kind, ErrUnknownKind)
	}
	return f(deps), nil
}

// Exists checks if a game with the given kind is registered.
func (r *Registry) Exists(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[kind]
	return ok
}

// Title returns the display title for kind, or kind itself when unknown.
func (r *Registry) Title(kind string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.titles[kind]; ok {
		return t
	}
	return kind
}
