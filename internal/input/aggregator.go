package input

import (
	"math"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
	"github.com/vovakirdan/keinplan-arcade/internal/events"
)

// DeadZone is the gamepad axis magnitude treated as zero.
const DeadZone = 0.1

// joystickJump is the screen-space joystick delta-Y (a fraction of the
// radius) above which the touch joystick counts as a jump.
const joystickJump = 0.5

// Aggregator holds raw device state between frames.
// It is not safe for concurrent use; hosts feed it from the frame goroutine.
type Aggregator struct {
	bus *events.Bus

	keys    [keyCount]bool
	buttons map[MouseButton]bool
	mouseX  float64
	mouseY  float64

	touches []TouchPoint

	joyCX, joyCY, joyR float64
	joyActive          bool
	joyDX, joyDY       float64

	pad GamepadState

	visible bool
}

// NewAggregator creates an aggregator. bus may be nil, in which case
// visibility changes are tracked but not published.
func NewAggregator(bus *events.Bus) *Aggregator {
	return &Aggregator{
		bus:     bus,
		buttons: make(map[MouseButton]bool),
		joyR:    1,
		visible: true,
	}
}

func (a *Aggregator) KeyDown(k Key) {
	if k > KeyNone && k < keyCount {
		a.keys[k] = true
	}
}

func (a *Aggregator) KeyUp(k Key) {
	if k > KeyNone && k < keyCount {
		a.keys[k] = false
	}
}

// Pressed reports whether k is currently held.
func (a *Aggregator) Pressed(k Key) bool {
	return k > KeyNone && k < keyCount && a.keys[k]
}

func (a *Aggregator) MouseMove(x, y float64) {
	a.mouseX, a.mouseY = core.Finite(x), core.Finite(y)
}

func (a *Aggregator) MouseDown(b MouseButton) { a.buttons[b] = true }

func (a *Aggregator) MouseUp(b MouseButton) { a.buttons[b] = false }

// MousePosition returns the last reported pointer position.
func (a *Aggregator) MousePosition() (x, y float64) {
	return a.mouseX, a.mouseY
}

// SetJoystickArea places the virtual joystick circle in screen coordinates.
// Non-positive radii are ignored.
func (a *Aggregator) SetJoystickArea(cx, cy, radius float64) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return
	}
	a.joyCX, a.joyCY, a.joyR = core.Finite(cx), core.Finite(cy), radius
}

// TouchStart replaces the active touch list and re-anchors the joystick.
func (a *Aggregator) TouchStart(points []TouchPoint) {
	a.setTouches(points)
}

// TouchMove updates the active touch list.
func (a *Aggregator) TouchMove(points []TouchPoint) {
	a.setTouches(points)
}

// TouchEnd receives the touches that remain after the end event.
func (a *Aggregator) TouchEnd(remaining []TouchPoint) {
	a.setTouches(remaining)
}

func (a *Aggregator) setTouches(points []TouchPoint) {
	a.touches = append(a.touches[:0], points...)
	if len(a.touches) == 0 {
		a.joyActive = false
		a.joyDX, a.joyDY = 0, 0
		return
	}

	p := a.touches[0]
	dx := (core.Finite(p.X) - a.joyCX) / a.joyR
	dy := (core.Finite(p.Y) - a.joyCY) / a.joyR
	// Outside the circle the stick sits on the rim.
	a.joyDX, a.joyDY = core.ClampUnit(dx, dy)
	a.joyActive = true
}

// Joystick returns the normalized joystick delta in screen axes (y down)
// and whether a touch is driving it.
func (a *Aggregator) Joystick() (dx, dy float64, active bool) {
	return a.joyDX, a.joyDY, a.joyActive
}

// SetGamepad stores the latest pad snapshot. Slices are copied.
func (a *Aggregator) SetGamepad(s GamepadState) {
	a.pad = GamepadState{
		Connected: s.Connected,
		Buttons:   append([]bool(nil), s.Buttons...),
		Axes:      append([]float64(nil), s.Axes...),
	}
}

func (a *Aggregator) padButton(i int) bool {
	return a.pad.Connected && i >= 0 && i < len(a.pad.Buttons) && a.pad.Buttons[i]
}

func (a *Aggregator) padAxis(i int) float64 {
	if !a.pad.Connected || i < 0 || i >= len(a.pad.Axes) {
		return 0
	}
	v := core.ClampF(core.Finite(a.pad.Axes[i]), -1, 1)
	if math.Abs(v) <= DeadZone {
		return 0
	}
	return v
}

// SetVisible records page or window visibility. A change publishes
// GamePause (hidden) or GameResume (visible); repeats publish nothing.
func (a *Aggregator) SetVisible(visible bool) {
	if visible == a.visible {
		return
	}
	a.visible = visible
	if a.bus == nil {
		return
	}
	if visible {
		a.bus.Publish(events.GameResume{})
	} else {
		a.bus.Publish(events.GamePause{})
	}
}

// Visible reports the last visibility state.
func (a *Aggregator) Visible() bool { return a.visible }

// PollMovement returns the combined movement vector, never longer than 1.
// Positive y is forward (up on screen).
func (a *Aggregator) PollMovement() (x, y float64) {
	if a.keys[KeyA] || a.keys[KeyLeft] {
		x--
	}
	if a.keys[KeyD] || a.keys[KeyRight] {
		x++
	}
	if a.keys[KeyW] || a.keys[KeyUp] {
		y++
	}
	if a.keys[KeyS] || a.keys[KeyDown] {
		y--
	}

	if a.joyActive {
		x += a.joyDX
		y -= a.joyDY
	}

	x += a.padAxis(PadAxisX)
	y -= a.padAxis(PadAxisY)

	return core.ClampUnit(x, y)
}

// PollJump reports whether a jump is requested this frame.
func (a *Aggregator) PollJump() bool {
	if a.keys[KeySpace] || a.keys[KeyW] || a.keys[KeyUp] {
		return true
	}
	if a.joyActive && a.joyDY > joystickJump {
		return true
	}
	return a.padButton(PadButtonJump)
}

// PollAction reports whether the primary action is requested this frame.
func (a *Aggregator) PollAction() bool {
	if a.buttons[MouseLeft] || a.keys[KeyE] || len(a.touches) > 0 {
		return true
	}
	return a.padButton(PadButtonAction)
}

// PollPause reports whether a pause key is held.
func (a *Aggregator) PollPause() bool {
	return a.keys[KeyEscape] || a.keys[KeyP] || a.padButton(PadButtonStart)
}

// PollZoom returns -1 for Q, +1 for E, 0 otherwise.
func (a *Aggregator) PollZoom() int {
	z := 0
	if a.keys[KeyQ] {
		z--
	}
	if a.keys[KeyE] {
		z++
	}
	return z
}

// Poll samples every source into one intent.
func (a *Aggregator) Poll() core.Intent {
	x, y := a.PollMovement()
	return core.Intent{
		MoveX:  x,
		MoveY:  y,
		Jump:   a.PollJump(),
		Action: a.PollAction(),
		Pause:  a.PollPause(),
		Zoom:   a.PollZoom(),
	}
}

// Reset releases every key, button, touch and pad input.
// Visibility is left as is.
func (a *Aggregator) Reset() {
	a.keys = [keyCount]bool{}
	clear(a.buttons)
	a.touches = a.touches[:0]
	a.joyActive = false
	a.joyDX, a.joyDY = 0, 0
	a.pad = GamepadState{}
}
