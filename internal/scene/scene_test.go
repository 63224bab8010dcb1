package scene

import (
	"testing"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
)

func TestGraphLifecycle(t *testing.T) {
	g := NewGraph()
	a := g.Add(core.KindBall, core.V3(1, 2, 3))
	b := g.Add(core.KindWall, core.Vec3{})

	if a == 0 || a == b {
		t.Fatalf("handles must be unique and non-zero: %d %d", a, b)
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", g.Len())
	}

	g.SetPosition(a, core.V3(4, 5, 6))
	g.SetVisible(a, false)
	e, ok := g.Get(a)
	if !ok || e.Pos != core.V3(4, 5, 6) || e.Visible {
		t.Errorf("Get(a) = %+v, %v", e, ok)
	}

	g.Remove(a)
	g.Remove(a)
	if g.Len() != 1 || g.StaleRemovals() != 1 {
		t.Errorf("Len() = %d, StaleRemovals() = %d", g.Len(), g.StaleRemovals())
	}

	g.Clear()
	c := g.Add(core.KindBall, core.Vec3{})
	if c <= b {
		t.Error("handles must keep increasing after Clear")
	}
}

func TestEachOrdersByLayer(t *testing.T) {
	g := NewGraph()
	g.Add(core.KindPlayer, core.Vec3{})
	g.Add(core.KindWall, core.Vec3{})
	g.Add(core.KindParticle, core.Vec3{})

	var kinds []core.EntityKind
	g.Each(func(e Entity) { kinds = append(kinds, e.Kind) })

	for i := 1; i < len(kinds); i++ {
		if kinds[i-1].Layer() > kinds[i].Layer() {
			t.Fatalf("Each order %v is not by layer", kinds)
		}
	}
}

func TestViewCell(t *testing.T) {
	v := TopDown(10)

	tests := []struct {
		name     string
		p        core.Vec3
		col, row int
		ok       bool
	}{
		{"centre", core.V3(0, 5, 0), 5, 5, true},
		{"far +z is top", core.V3(-10, 0, 10), 0, 0, true},
		{"near -z is bottom", core.V3(10, 0, -10), 10, 10, true},
		{"outside", core.V3(11, 0, 0), 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row, ok := v.Cell(tc.p, 11, 11)
			if ok != tc.ok || (ok && (col != tc.col || row != tc.row)) {
				t.Errorf("Cell(%v) = (%d, %d, %v), expected (%d, %d, %v)", tc.p, col, row, ok, tc.col, tc.row, tc.ok)
			}
		})
	}
}

func TestScreenRendererDrawsTopLayer(t *testing.T) {
	g := NewGraph()
	g.Add(core.KindPlayer, core.V3(0, 0, 0))
	g.Add(core.KindParticle, core.V3(0, 0, 0))
	hidden := g.Add(core.KindBall, core.V3(-10, 0, 10))
	g.SetVisible(hidden, false)

	r := NewScreenRenderer(11, 11)
	r.Render(g, TopDown(10))

	if got := r.Screen.Get(5, 5); got != core.KindPlayer.Glyph() {
		t.Errorf("centre = %q, expected player glyph", got)
	}
	if got := r.Screen.Get(0, 0); got != ' ' {
		t.Errorf("hidden entity drawn as %q", got)
	}
	if r.Frames != 1 {
		t.Errorf("Frames = %d", r.Frames)
	}
}
