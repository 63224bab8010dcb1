package desktop

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/session"
)

// ErrNoWindow is returned by Run in builds without a window backend.
var ErrNoWindow = errors.New("desktop: window mode requires cgo (build with CGO_ENABLED=1)")

// Options configures the window host.
type Options struct {
	Config   core.RuntimeConfig
	Registry *registry.Registry
	Store    session.StatsStore // nil disables persistence
	Logger   *log.Logger
	// Start launches this game right away instead of showing the menu.
	Start string
	// Width and Height are the logical playfield size in pixels.
	Width, Height int
	Scale         int
}

func (o *Options) defaults() {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = 320, 240
	}
	if o.Scale <= 0 {
		o.Scale = 3
	}
	if o.Config.FPS <= 0 {
		o.Config.FPS = core.DefaultConfig().FPS
	}
	if o.Config.MaxFrameDelta <= 0 {
		o.Config.MaxFrameDelta = core.DefaultConfig().MaxFrameDelta
	}
	if o.Config.Seed == 0 {
		o.Config.Seed = time.Now().UnixNano()
	}
}

// joystickArea places the on-screen touch joystick in the lower left.
func joystickArea(width, height int) (cx, cy, radius float64) {
	w, h := float64(width), float64(height)
	return w * 0.15, h * 0.8, min(w, h) * 0.12
}
