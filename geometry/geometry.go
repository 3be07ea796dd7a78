// Package geometry computes SVG sizing transforms as pure viewBox arithmetic.
//
// Every function takes the current coordinate space (the document's viewBox,
// or a zero-origin rectangle built from its width/height attributes) and
// returns the new viewBox plus the display size the document should declare.
// Nothing here touches pixels: fill and crop operations select a window of
// the source coordinate space, pad operations grow the coordinate frame.
package geometry

import "math"

// Rect is an axis-aligned rectangle in SVG user units, in viewBox form:
// origin plus extent.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether r fully contains other.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Size is a display size in user units.
type Size struct {
	Width  float64
	Height float64
}

// Layout is the result of a transform: the viewBox the document should carry
// and the width/height it should declare.
type Layout struct {
	ViewBox Rect
	Display Size
}

// Identity returns the layout that leaves the document as-is. Transforms
// return it for no-op cases: degenerate inputs, guarded operations whose
// guard holds, and crops no larger than the source.
func Identity(vb Rect) Layout {
	return Layout{ViewBox: vb, Display: Size{Width: vb.Width, Height: vb.Height}}
}

// valid reports whether the source space and targets permit a transform.
// Zero or negative dimensions on either side make every transform a no-op,
// which also keeps division by zero out of the scale math.
func valid(vb Rect, targets ...int) bool {
	if vb.Width <= 0 || vb.Height <= 0 {
		return false
	}
	for _, t := range targets {
		if t <= 0 {
			return false
		}
	}
	return true
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Fit scales the document uniformly so it fits inside w x h, preserving
// aspect ratio. The viewBox is untouched; only the display size changes.
func Fit(vb Rect, w, h int) Layout {
	if !valid(vb, w, h) {
		return Identity(vb)
	}
	scale := math.Min(float64(w)/vb.Width, float64(h)/vb.Height)
	return Layout{
		ViewBox: vb,
		Display: Size{Width: vb.Width * scale, Height: vb.Height * scale},
	}
}

// FitMax is Fit, but only when the document exceeds the target box.
func FitMax(vb Rect, w, h int) Layout {
	if !valid(vb, w, h) || (vb.Width <= float64(w) && vb.Height <= float64(h)) {
		return Identity(vb)
	}
	return Fit(vb, w, h)
}

// Fill scales the document to cover w x h exactly and crops the overflow,
// keeping the center of the source. The crop window is computed in source
// coordinates with floored extents and offsets so repeated calls are
// bit-stable.
func Fill(vb Rect, w, h int) Layout {
	if !valid(vb, w, h) {
		return Identity(vb)
	}
	scale := math.Max(float64(w)/vb.Width, float64(h)/vb.Height)
	cropW := math.Floor(float64(w) / scale)
	cropH := math.Floor(float64(h) / scale)
	offX := math.Floor((vb.Width - cropW) / 2)
	offY := math.Floor((vb.Height - cropH) / 2)
	return Layout{
		ViewBox: Rect{X: vb.X + offX, Y: vb.Y + offY, Width: cropW, Height: cropH},
		Display: Size{Width: float64(w), Height: float64(h)},
	}
}

// FillMax is Fill, but only when the document exceeds the target box.
func FillMax(vb Rect, w, h int) Layout {
	if !valid(vb, w, h) || (vb.Width <= float64(w) && vb.Height <= float64(h)) {
		return Identity(vb)
	}
	return Fill(vb, w, h)
}

// Pad grows the coordinate frame to the target aspect ratio, centered, so the
// original content is letterboxed rather than cropped or distorted. The
// original viewBox is always a sub-rectangle of the result.
func Pad(vb Rect, w, h int) Layout {
	if !valid(vb, w, h) {
		return Identity(vb)
	}
	target := float64(w) / float64(h)
	current := vb.Width / vb.Height
	out := vb
	switch {
	case current > target:
		// Source is relatively wider: grow the frame vertically.
		newH := vb.Width / target
		out.Y = vb.Y - (newH-vb.Height)/2
		out.Height = newH
	case current < target:
		// Source is relatively taller: grow the frame horizontally.
		newW := vb.Height * target
		out.X = vb.X - (newW-vb.Width)/2
		out.Width = newW
	}
	return Layout{
		ViewBox: out,
		Display: Size{Width: float64(w), Height: float64(h)},
	}
}

// ScaleWidth scales uniformly so the display width becomes w.
func ScaleWidth(vb Rect, w int) Layout {
	if !valid(vb, w) {
		return Identity(vb)
	}
	return Layout{
		ViewBox: vb,
		Display: Size{Width: float64(w), Height: vb.Height * (float64(w) / vb.Width)},
	}
}

// ScaleHeight scales uniformly so the display height becomes h.
func ScaleHeight(vb Rect, h int) Layout {
	if !valid(vb, h) {
		return Identity(vb)
	}
	return Layout{
		ViewBox: vb,
		Display: Size{Width: vb.Width * (float64(h) / vb.Height), Height: float64(h)},
	}
}

// CropRegion crops an absolute window of the source space, without scaling.
// x and y are offsets from the current viewBox origin.
func CropRegion(vb Rect, x, y, w, h int) Layout {
	if !valid(vb, w, h) {
		return Identity(vb)
	}
	return Layout{
		ViewBox: Rect{X: vb.X + float64(x), Y: vb.Y + float64(y), Width: float64(w), Height: float64(h)},
		Display: Size{Width: float64(w), Height: float64(h)},
	}
}

// CropWidth center-crops horizontally to width w, keeping the full height.
// A no-op when the document is not wider than w.
func CropWidth(vb Rect, w int) Layout {
	if !valid(vb, w) || vb.Width <= float64(w) {
		return Identity(vb)
	}
	off := math.Floor((vb.Width - float64(w)) / 2)
	return Layout{
		ViewBox: Rect{X: vb.X + off, Y: vb.Y, Width: float64(w), Height: vb.Height},
		Display: Size{Width: float64(w), Height: vb.Height},
	}
}

// CropHeight center-crops vertically to height h, keeping the full width.
// A no-op when the document is not taller than h.
func CropHeight(vb Rect, h int) Layout {
	if !valid(vb, h) || vb.Height <= float64(h) {
		return Identity(vb)
	}
	off := math.Floor((vb.Height - float64(h)) / 2)
	return Layout{
		ViewBox: Rect{X: vb.X, Y: vb.Y + off, Width: vb.Width, Height: float64(h)},
		Display: Size{Width: vb.Width, Height: float64(h)},
	}
}

// FocusFill is Fill with the crop window shifted so the focus point stays
// inside it. fx and fy are normalized source coordinates in [0,1], measured
// from the top-left of the viewBox. The window is centered on the focus point
// and clamped to the source bounds. When upscale is false and the document
// already fits inside w x h, nothing changes.
func FocusFill(vb Rect, w, h int, fx, fy float64, upscale bool) Layout {
	if !valid(vb, w, h) {
		return Identity(vb)
	}
	if !upscale && vb.Width <= float64(w) && vb.Height <= float64(h) {
		return Identity(vb)
	}
	scale := math.Max(float64(w)/vb.Width, float64(h)/vb.Height)
	cropW := math.Floor(float64(w) / scale)
	cropH := math.Floor(float64(h) / scale)
	offX := math.Floor(clamp(fx*vb.Width-cropW/2, 0, vb.Width-cropW))
	offY := math.Floor(clamp(fy*vb.Height-cropH/2, 0, vb.Height-cropH))
	return Layout{
		ViewBox: Rect{X: vb.X + offX, Y: vb.Y + offY, Width: cropW, Height: cropH},
		Display: Size{Width: float64(w), Height: float64(h)},
	}
}

// FocusCropWidth crops horizontally to width w with the window placed around
// the normalized focus coordinate fx, clamped to the source bounds. No
// scaling is applied. A no-op when the document is not wider than w.
func FocusCropWidth(vb Rect, w int, fx float64) Layout {
	if !valid(vb, w) || vb.Width <= float64(w) {
		return Identity(vb)
	}
	off := math.Floor(clamp(fx*vb.Width-float64(w)/2, 0, vb.Width-float64(w)))
	return Layout{
		ViewBox: Rect{X: vb.X + off, Y: vb.Y, Width: float64(w), Height: vb.Height},
		Display: Size{Width: float64(w), Height: vb.Height},
	}
}

// FocusCropHeight crops vertically to height h with the window placed around
// the normalized focus coordinate fy, clamped to the source bounds. No
// scaling is applied. A no-op when the document is not taller than h.
func FocusCropHeight(vb Rect, h int, fy float64) Layout {
	if !valid(vb, h) || vb.Height <= float64(h) {
		return Identity(vb)
	}
	off := math.Floor(clamp(fy*vb.Height-float64(h)/2, 0, vb.Height-float64(h)))
	return Layout{
		ViewBox: Rect{X: vb.X, Y: vb.Y + off, Width: vb.Width, Height: float64(h)},
		Display: Size{Width: vb.Width, Height: float64(h)},
	}
}
