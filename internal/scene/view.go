package scene

import (
	"math"

	"github.com/vovakirdan/keinplan-arcade/internal/core"
)

// Axis selects a world coordinate.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) of(v core.Vec3) float64 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return v.X
	}
}

// View describes how a game wants its world flattened onto a 2D surface.
// HAxis maps to screen columns, VAxis to rows. Min and Max bound the visible
// world rectangle on those axes. FlipV puts larger VAxis values at the top.
type View struct {
	HAxis, VAxis Axis
	HMin, HMax   float64
	VMin, VMax   float64
	FlipV        bool
}

// TopDown looks down the Y axis at the XZ plane, with +Z at the top.
func TopDown(half float64) View {
	return View{HAxis: AxisX, VAxis: AxisZ, HMin: -half, HMax: half, VMin: -half, VMax: half, FlipV: true}
}

// Front looks along Z at the XY plane, with +Y at the top.
func Front(halfW, halfH float64) View {
	return View{HAxis: AxisX, VAxis: AxisY, HMin: -halfW, HMax: halfW, VMin: -halfH, VMax: halfH, FlipV: true}
}

// Normalize returns p on the view plane in [0,1]², ok=false when outside.
func (v View) Normalize(p core.Vec3) (u, w float64, ok bool) {
	hs, vs := v.HMax-v.HMin, v.VMax-v.VMin
	if hs <= 0 || vs <= 0 {
		return 0, 0, false
	}
	u = (v.HAxis.of(p) - v.HMin) / hs
	w = (v.VAxis.of(p) - v.VMin) / vs
	if v.FlipV {
		w = 1 - w
	}
	if u < 0 || u > 1 || w < 0 || w > 1 || math.IsNaN(u) || math.IsNaN(w) {
		return 0, 0, false
	}
	return u, w, true
}

// Cell maps p to a column and row in a width×height grid.
func (v View) Cell(p core.Vec3, width, height int) (col, row int, ok bool) {
	u, w, ok := v.Normalize(p)
	if !ok || width <= 0 || height <= 0 {
		return 0, 0, false
	}
	col = int(math.Round(u * float64(width-1)))
	row = int(math.Round(w * float64(height-1)))
	return col, row, true
}
