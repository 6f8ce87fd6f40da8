// Package animation renders per-gesture overlay effects onto camera frames.
package animation

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Point2 is a 2D point. Anchors passed to the Engine are normalized to
// [0,1]; effects work in pixels.
type Point2 struct {
	X, Y float64
}

// Pixel rounds p to an image point.
func (p Point2) Pixel() image.Point {
	return image.Pt(int(p.X+0.5), int(p.Y+0.5))
}

// Canvas is the frame buffer effects draw on. A thickness below zero fills
// the shape. Colours with A < 255 are blended over the existing pixels.
// Implementations skip geometry that lies entirely outside the frame.
type Canvas interface {
	Size() image.Point
	Circle(center image.Point, radius int, c color.RGBA, thickness int)
	FillPoly(pts []image.Point, c color.RGBA)
	Text(s string, org image.Point, scale float64, c color.RGBA, thickness int)
	TextSize(s string, scale float64, thickness int) image.Point
}

// MatCanvas draws on a BGR gocv.Mat.
type MatCanvas struct {
	mat  *gocv.Mat
	font gocv.HersheyFont
}

// NewMatCanvas wraps mat. The canvas does not own the Mat.
func NewMatCanvas(mat *gocv.Mat) *MatCanvas {
	return &MatCanvas{
		mat:  mat,
		font: gocv.FontHersheyScriptSimplex,
	}
}

// Size returns the frame size, or zero for an empty Mat.
func (m *MatCanvas) Size() image.Point {
	if m.mat == nil || m.mat.Empty() {
		return image.Point{}
	}
	return image.Pt(m.mat.Cols(), m.mat.Rows())
}

// Circle draws a circle outline, or a disc when thickness < 0.
func (m *MatCanvas) Circle(center image.Point, radius int, c color.RGBA, thickness int) {
	if radius <= 0 {
		return
	}
	pad := radius + max(thickness, 1)
	area := image.Rect(center.X-pad, center.Y-pad, center.X+pad+1, center.Y+pad+1)
	m.paint(area, c, func(dst *gocv.Mat, off image.Point, solid color.RGBA) {
		gocv.Circle(dst, center.Sub(off), radius, solid, thickness)
	})
}

// FillPoly fills a closed polygon.
func (m *MatCanvas) FillPoly(pts []image.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	m.paint(boundsOf(pts), c, func(dst *gocv.Mat, off image.Point, solid color.RGBA) {
		shifted := make([]image.Point, len(pts))
		for i, p := range pts {
			shifted[i] = p.Sub(off)
		}
		pv := gocv.NewPointsVectorFromPoints([][]image.Point{shifted})
		defer pv.Close()
		gocv.FillPoly(dst, pv, solid)
	})
}

// Text draws s with its baseline starting at org.
func (m *MatCanvas) Text(s string, org image.Point, scale float64, c color.RGBA, thickness int) {
	if s == "" || scale <= 0 {
		return
	}
	size := m.TextSize(s, scale, thickness)
	pad := max(thickness, 1) * 2
	area := image.Rect(org.X-pad, org.Y-size.Y-pad, org.X+size.X+pad, org.Y+size.Y/2+pad)
	m.paint(area, c, func(dst *gocv.Mat, off image.Point, solid color.RGBA) {
		gocv.PutText(dst, s, org.Sub(off), m.font, scale, solid, thickness)
	})
}

// TextSize returns the width and height of s in pixels.
func (m *MatCanvas) TextSize(s string, scale float64, thickness int) image.Point {
	return gocv.GetTextSize(s, m.font, scale, thickness)
}

// paint clips area to the frame and runs draw either directly on the frame
// (opaque colours) or on a copy of the covered region that is then blended
// back with the colour's alpha.
func (m *MatCanvas) paint(area image.Rectangle, c color.RGBA, draw func(dst *gocv.Mat, off image.Point, solid color.RGBA)) {
	if c.A == 0 {
		return
	}
	area = area.Intersect(image.Rectangle{Max: m.Size()})
	if area.Empty() {
		return
	}

	solid := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	if c.A == 255 {
		draw(m.mat, image.Point{}, solid)
		return
	}

	roi := m.mat.Region(area)
	defer roi.Close()
	layer := roi.Clone()
	defer layer.Close()

	draw(&layer, area.Min, solid)

	a := float64(c.A) / 255
	gocv.AddWeighted(layer, a, roi, 1-a, 0, &roi)
}

func boundsOf(pts []image.Point) image.Rectangle {
	r := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

// inFrame reports whether p lies inside a frame of the given size.
func inFrame(p image.Point, size image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < size.X && p.Y < size.Y
}
