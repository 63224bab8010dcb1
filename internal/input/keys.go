// Package input turns raw keyboard, mouse, touch and gamepad state into one
// core.Intent per frame. Hosts feed device state in; sessions poll once.
package input

// Key is a logical key the aggregator understands. Hosts translate their
// native key codes into these.
type Key uint8

const (
	KeyNone Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
	KeyP
	KeyE
	KeyQ
	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:   "none",
	KeyW:      "w",
	KeyA:      "a",
	KeyS:      "s",
	KeyD:      "d",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeySpace:  "space",
	KeyEscape: "escape",
	KeyP:      "p",
	KeyE:      "e",
	KeyQ:      "q",
}

func (k Key) String() string {
	if k >= keyCount {
		return "none"
	}
	return keyNames[k]
}

// ParseKey maps a key name (as produced by String) to a Key.
// Unknown names return KeyNone.
func ParseKey(name string) Key {
	for k := KeyW; k < keyCount; k++ {
		if keyNames[k] == name {
			return k
		}
	}
	return KeyNone
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// TouchPoint is one active touch in host screen coordinates.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// GamepadState is a snapshot of the first connected pad.
// Buttons and Axes follow the standard gamepad layout.
type GamepadState struct {
	Connected bool
	Buttons   []bool
	Axes      []float64
}

// Standard layout indices used by the aggregator.
const (
	PadButtonJump   = 0
	PadButtonAction = 1
	PadButtonStart  = 9

	PadAxisX = 0
	PadAxisY = 1
)
