//go:build cgo

package desktop

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/keinplan-arcade/internal/events"
	"github.com/vovakirdan/keinplan-arcade/internal/input"
	"github.com/vovakirdan/keinplan-arcade/internal/logging"
	"github.com/vovakirdan/keinplan-arcade/internal/registry"
	"github.com/vovakirdan/keinplan-arcade/internal/scene"
	"github.com/vovakirdan/keinplan-arcade/internal/session"
)

var keyTable = map[ebiten.Key]input.Key{
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyA:          input.KeyA,
	ebiten.KeyS:          input.KeyS,
	ebiten.KeyD:          input.KeyD,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyEscape:     input.KeyEscape,
	ebiten.KeyP:          input.KeyP,
	ebiten.KeyE:          input.KeyE,
	ebiten.KeyQ:          input.KeyQ,
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	opts.defaults()
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	h := newHost(opts)
	defer h.sess.Close()

	ebiten.SetWindowTitle("KeinPlan Arcade")
	ebiten.SetWindowSize(opts.Width*opts.Scale, opts.Height*opts.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.Config.FPS)
	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}

type host struct {
	opts     Options
	bus      *events.Bus
	graph    *scene.Graph
	agg      *input.Aggregator
	renderer *PixelRenderer
	sess     *session.Session
	games    []registry.GameInfo
	cursor   int
	canvas   *ebiten.Image
	quit     bool
}

func newHost(opts Options) *host {
	bus := events.NewBus()
	graph := scene.NewGraph()
	agg := input.NewAggregator(bus)
	renderer := NewPixelRenderer(opts.Width, opts.Height, 3)
	agg.SetJoystickArea(joystickArea(opts.Width, opts.Height))

	sess := session.New(session.Options{
		Registry:      opts.Registry,
		Scene:         graph,
		Bus:           bus,
		Input:         agg,
		Renderer:      renderer,
		Store:         opts.Store,
		Logger:        opts.Logger,
		Seed:          opts.Config.Seed,
		MaxFrameDelta: opts.Config.MaxFrameDelta,
	})
	sess.Load()
	if opts.Start != "" {
		if err := sess.Start(opts.Start); err != nil {
			opts.Logger.Warn("cannot start game", "game", opts.Start, "err", err)
		}
	}

	return &host{
		opts:     opts,
		bus:      bus,
		graph:    graph,
		agg:      agg,
		renderer: renderer,
		sess:     sess,
		games:    opts.Registry.List(),
	}
}

func (h *host) Update() error {
	if h.quit {
		return ebiten.Termination
	}
	h.agg.SetVisible(ebiten.IsFocused())
	h.pollDevices()
	h.commands()
	h.sess.Frame(time.Now())
	return nil
}

func (h *host) pollDevices() {
	for ek, k := range keyTable {
		if ebiten.IsKeyPressed(ek) {
			h.agg.KeyDown(k)
		} else {
			h.agg.KeyUp(k)
		}
	}

	x, y := ebiten.CursorPosition()
	h.agg.MouseMove(float64(x), float64(y))
	for eb, b := range map[ebiten.MouseButton]input.MouseButton{
		ebiten.MouseButtonLeft:   input.MouseLeft,
		ebiten.MouseButtonMiddle: input.MouseMiddle,
		ebiten.MouseButtonRight:  input.MouseRight,
	} {
		if ebiten.IsMouseButtonPressed(eb) {
			h.agg.MouseDown(b)
		} else {
			h.agg.MouseUp(b)
		}
	}

	var touches []input.TouchPoint
	for _, id := range ebiten.AppendTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		touches = append(touches, input.TouchPoint{ID: int(id), X: float64(tx), Y: float64(ty)})
	}
	h.agg.TouchMove(touches)

	h.agg.SetGamepad(readGamepad())
}

// readGamepad snapshots the first pad with a standard layout.
func readGamepad() input.GamepadState {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		s := input.GamepadState{Connected: true}
		for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
			s.Buttons = append(s.Buttons, ebiten.IsStandardGamepadButtonPressed(id, b))
		}
		for a := ebiten.StandardGamepadAxis(0); a <= ebiten.StandardGamepadAxisMax; a++ {
			s.Axes = append(s.Axes, ebiten.StandardGamepadAxisValue(id, a))
		}
		return s
	}
	return input.GamepadState{}
}

// commands handles the keys that drive screens rather than games.
func (h *host) commands() {
	switch h.sess.State() {
	case session.StateMenu:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp), inpututil.IsKeyJustPressed(ebiten.KeyW):
			h.cursor = max(h.cursor-1, 0)
		case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown), inpututil.IsKeyJustPressed(ebiten.KeyS):
			h.cursor = min(h.cursor+1, len(h.games)-1)
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
			if len(h.games) > 0 {
				h.bus.Publish(events.GameStart{Game: h.games[h.cursor].ID})
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyQ):
			h.quit = true
		}
	case session.StatePaused:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyB):
			h.bus.Publish(events.BackToMenu{})
		case inpututil.IsKeyJustPressed(ebiten.KeyR):
			h.bus.Publish(events.GameRestart{})
		}
	case session.StateGameOver:
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyR):
			h.bus.Publish(events.GameRestart{})
		case inpututil.IsKeyJustPressed(ebiten.KeyB), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			h.bus.Publish(events.BackToMenu{})
		}
	}
}

func (h *host) Draw(screen *ebiten.Image) {
	switch h.sess.State() {
	case session.StateMenu, session.StateLoading:
		screen.Fill(Background)
		ebitenutil.DebugPrint(screen, h.menuText())
		return
	}

	img := h.renderer.Img
	b := img.Bounds()
	if h.canvas == nil || h.canvas.Bounds() != b {
		if h.canvas != nil {
			h.canvas.Deallocate()
		}
		h.canvas = ebiten.NewImage(b.Dx(), b.Dy())
	}
	h.canvas.WritePixels(img.Pix)
	screen.DrawImage(h.canvas, nil)

	st := h.sess.Stats()
	hud := fmt.Sprintf("%s  score %d  level %d  lives %d  best %d",
		h.opts.Registry.Title(h.sess.Kind()), st.Score, st.Level, st.Lives, st.BestScore)
	if g := h.sess.Game(); g != nil {
		hud += "\n" + g.Status()
	}
	ebitenutil.DebugPrint(screen, hud)

	switch h.sess.State() {
	case session.StatePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED  esc resume  r restart  b menu", 8, b.Dy()/2)
	case session.StateGameOver:
		res := h.sess.LastResult()
		msg := fmt.Sprintf("GAME OVER  score %d  best %d\nenter again  b menu", res.FinalScore, res.BestScore)
		if res.NewBest {
			msg = "NEW BEST!\n" + msg
		}
		ebitenutil.DebugPrintAt(screen, msg, 8, b.Dy()/2)
	}
}

func (h *host) menuText() string {
	var sb strings.Builder
	sb.WriteString("KEINPLAN ARCADE\n\n")
	for i, g := range h.games {
		cursor := "  "
		if i == h.cursor {
			cursor = "> "
		}
		sb.WriteString(cursor + g.Title + "\n")
	}
	fmt.Fprintf(&sb, "\nbest %d\n\nup/down select  enter play  q quit", h.sess.Stats().BestScore)
	return sb.String()
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := max(outsideWidth/h.opts.Scale, 1)
	hh := max(outsideHeight/h.opts.Scale, 1)
	h.renderer.Resize(w, hh)
	h.agg.SetJoystickArea(joystickArea(w, hh))
	return w, hh
}
