// Package core provides the value types shared by the arcade packages:
// vectors, intents, entity kinds, stats and the character screen buffer.
// It has no third-party dependencies so simulation code stays testable.
package core

import "math"

// Box is an axis-aligned 3D box given by its centre and half extents.
type Box struct {
	Center Vec3
	Half   Vec3
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p Vec3) bool {
	d := p.Sub(b.Center)
	return math.Abs(d.X) <= b.Half.X && math.Abs(d.Y) <= b.Half.Y && math.Abs(d.Z) <= b.Half.Z
}

// Clamp keeps v inside [lo, hi].
func Clamp(v, lo, hi int) int { return min(max(v, lo), hi) }

// ClampF keeps v inside [lo, hi].
func ClampF(v, lo, hi float64) float64 { return min(max(v, lo), hi) }

// Lerp interpolates between a and b; t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseInOutCubic maps t in [0,1] onto a cubic ease curve.
func EaseInOutCubic(t float64) float64 {
	t = ClampF(t, 0, 1)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Finite returns v, or 0 for NaN and infinities.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
