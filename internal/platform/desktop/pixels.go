// Package desktop hosts the arcade in an Ebitengine window with real
// keyboard, mouse, touch and gamepad polling.
package desktop

import (
	"image"
	"image/color"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
)

// Background is the clear color of the playfield.
var Background = color.RGBA{0x10, 0x12, 0x1c, 0xff}

// PixelRenderer projects the scene onto an RGBA image, one square dot per
// visible entity. Later layers paint over earlier ones.
type PixelRenderer struct {
	Img *image.RGBA
	Dot int
	// Frames counts Render calls.
	Frames int
}

// NewPixelRenderer creates a renderer with a width×height image.
func NewPixelRenderer(width, height, dot int) *PixelRenderer {
	r := &PixelRenderer{Dot: max(dot, 1)}
	r.Resize(width, height)
	return r
}

// Resize reallocates the image when the size changed.
func (r *PixelRenderer) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if r.Img != nil && r.Img.Bounds().Dx() == width && r.Img.Bounds().Dy() == height {
		return
	}
	r.Img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (r *PixelRenderer) Render(g *scene.Graph, v scene.View) {
	r.Frames++
	fill(r.Img, r.Img.Bounds(), Background)

	b := r.Img.Bounds()
	g.Each(func(e scene.Entity) {
		if !e.Visible {
			return
		}
		col, row, ok := v.Cell(e.Pos, b.Dx(), b.Dy())
		if !ok {
			return
		}
		half := r.Dot / 2
		dot := image.Rect(col-half, row-half, col-half+r.Dot, row-half+r.Dot)
		fill(r.Img, dot.Intersect(b), rgba(e.Kind.Color()))
	})
}

func rgba(c core.Color) color.RGBA {
	red, green, blue := c.RGB()
	return color.RGBA{red, green, blue, 0xff}
}

func fill(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
