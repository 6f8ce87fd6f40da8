// Package spatial lifts normalized image landmarks into camera space with a
// pinhole model.
package spatial

import (
	"math"

	"github.com/ayusman/handglow/internal/detector"
)

// DefaultFocal is the focal length, in pixels, assumed for an uncalibrated
// webcam.
const DefaultFocal = 600.0

// Palm-span depth calibration: a palm spanning 15% of the frame width is
// roughly half a metre from the camera.
const (
	palmDepthConstant = 0.075
	minHandDepth      = 0.2
	maxHandDepth      = 3.0
)

// Intrinsics are pinhole camera parameters in pixels.
type Intrinsics struct {
	FX, FY float64
	CX, CY float64
}

// DefaultIntrinsics returns DefaultFocal with the principal point at the
// centre of a w by h frame.
func DefaultIntrinsics(w, h int) Intrinsics {
	return Intrinsics{
		FX: DefaultFocal,
		FY: DefaultFocal,
		CX: float64(w) / 2,
		CY: float64(h) / 2,
	}
}

// Point is a camera-space position. Z is the distance along the optical axis.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PixelTo3D back-projects pixel (u, v) at the given depth.
func (in Intrinsics) PixelTo3D(u, v, depth float64) Point {
	return Point{
		X: (u - in.CX) * depth / in.FX,
		Y: (v - in.CY) * depth / in.FY,
		Z: depth,
	}
}

// BackProject converts normalized landmarks of a w by h frame into camera
// space at a single depth. Missing landmarks are skipped.
func BackProject(in Intrinsics, points []detector.Point3D, w, h int, depth float64) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Missing() {
			continue
		}
		out = append(out, in.PixelTo3D(p.X*float64(w), p.Y*float64(h), depth))
	}
	return out
}

// EstimateHandDepth approximates distance in metres from the wrist to
// middle-knuckle span, given as a fraction of frame width. It returns 0 for
// an unusable span.
func EstimateHandDepth(span float64) float64 {
	if span <= 0 || span > 1 || math.IsNaN(span) {
		return 0
	}
	d := palmDepthConstant / span
	return math.Min(math.Max(d, minHandDepth), maxHandDepth)
}

// PalmSpan returns the wrist to middle-knuckle distance of a hand in
// normalized units, correcting for the frame aspect ratio.
func PalmSpan(h *detector.HandLandmarks, w, ht int) float64 {
	if h == nil || w <= 0 || ht <= 0 {
		return 0
	}
	a := h.Points[detector.Wrist]
	b := h.Points[detector.MiddleMCP]
	if a.Missing() || b.Missing() {
		return 0
	}
	dx := b.X - a.X
	dy := (b.Y - a.Y) * float64(ht) / float64(w)
	return math.Hypot(dx, dy)
}
