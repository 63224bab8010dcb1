package scene

import "github.com/vovakirdan/keinplan-arcade/internal/core"

// Renderer draws a graph through a view. The session calls it once per frame.
type Renderer interface {
	Render(g *Graph, v View)
}

// ScreenRenderer projects visible entities onto a character screen.
// Higher layers overwrite lower ones on shared cells.
type ScreenRenderer struct {
	Screen *core.Screen
	// Frames counts Render calls.
	Frames int
}

// NewScreenRenderer creates a renderer with its own screen buffer.
func NewScreenRenderer(width, height int) *ScreenRenderer {
	return &ScreenRenderer{Screen: core.NewScreen(width, height)}
}

func (r *ScreenRenderer) Render(g *Graph, v View) {
	r.Frames++
	r.Screen.Clear()
	w, h := r.Screen.Width(), r.Screen.Height()
	g.Each(func(e Entity) {
		if !e.Visible {
			return
		}
		col, row, ok := v.Cell(e.Pos, w, h)
		if !ok {
			return
		}
		r.Screen.SetCell(col, row, core.Cell{Rune: e.Kind.Glyph(), Color: e.Kind.Color()})
	})
}
