package core

import "math"

// Intent is the normalized player request for one frame.
// Hosts never hand raw device state to games; they hand an Intent.
type Intent struct {
	MoveX float64 // -1 left .. +1 right
	MoveY float64 // -1 back/down .. +1 forward/up
	Jump  bool
	// Action is the primary button: fire, select, drop.
	Action bool
	Pause  bool
	// Zoom is -1 (out), 0 or +1 (in).
	Zoom int
}

// Magnitude returns the length of the movement vector.
func (in Intent) Magnitude() float64 {
	return math.Hypot(in.MoveX, in.MoveY)
}

// Idle reports whether the intent carries no request at all.
func (in Intent) Idle() bool {
	return in == Intent{}
}

// ClampUnit rescales (x, y) uniformly so its length is at most 1.
func ClampUnit(x, y float64) (float64, float64) {
	x, y = Finite(x), Finite(y)
	l := math.Hypot(x, y)
	if l > 1 {
		return x / l, y / l
	}
	return x, y
}
