package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/game"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

type stubGame struct {
	game.Base
	kind string
}

func (g *stubGame) Init()                             { g.Setup() }
func (g *stubGame) Update(time.Duration, core.Intent) {}
func (g *stubGame) Cleanup()                          { g.Teardown() }
func (g *stubGame) Kind() string                      { return g.kind }
func (g *stubGame) Title() string                     { return "Stub " + g.kind }
func (g *stubGame) View() scene.View                  { return scene.TopDown(10) }
func (g *stubGame) Status() string                    { return "" }

func stub(kind string) Factory {
	return func(d game.Deps) game.Variant { return &stubGame{Base: game.Base{Deps: d}, kind: kind} }
}

func TestRegisterListCreate(t *testing.T) {
	r := New()
	r.Register("b", stub("b"))
	r.Register("a", stub("a"))

	list := r.List()
	if len(list) != 2 || list[0].ID != "a" || list[1].Title != "Stub b" {
		t.Errorf("List() = %+v", list)
	}
	if !r.Exists("a") || r.Exists("c") {
		t.Error("Exists mismatch")
	}

	g, err := r.Create("a", game.Deps{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Kind() != "a" {
		t.Errorf("Kind() = %q", g.Kind())
	}
	if r.Title("zzz") != "zzz" {
		t.Error("unknown Title should echo the kind")
	}
}

func TestCreateUnknown(t *testing.T) {
	r := New()
	_, err := r.Create("pong", game.Deps{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Create(unknown) error = %v, expected ErrUnknownKind", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := New()
	r.Register("a", stub("a"))
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	r.Register("a", stub("a"))
}
