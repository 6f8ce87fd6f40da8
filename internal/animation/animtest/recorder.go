// Package animtest provides a recording canvas for effect tests.
package animtest

import (
	"image"
	"image/color"
	"sync"
)

// OpKind names a drawing primitive.
type OpKind string

const (
	OpCircle   OpKind = "circle"
	OpFillPoly OpKind = "fillpoly"
	OpText     OpKind = "text"
)

// Op is one recorded draw call.
type Op struct {
	Kind      OpKind
	Center    image.Point
	Radius    int
	Points    []image.Point
	Text      string
	Scale     float64
	Color     color.RGBA
	Thickness int
}

// Recorder is a Canvas that records draw calls instead of rasterizing.
type Recorder struct {
	mu   sync.Mutex
	size image.Point
	ops  []Op
}

// NewRecorder creates a recorder for a w by h frame.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{size: image.Pt(w, h)}
}

func (r *Recorder) Size() image.Point {
	return r.size
}

func (r *Recorder) Circle(center image.Point, radius int, c color.RGBA, thickness int) {
	r.record(Op{Kind: OpCircle, Center: center, Radius: radius, Color: c, Thickness: thickness})
}

func (r *Recorder) FillPoly(pts []image.Point, c color.RGBA) {
	cp := make([]image.Point, len(pts))
	copy(cp, pts)
	r.record(Op{Kind: OpFillPoly, Points: cp, Color: c})
}

func (r *Recorder) Text(s string, org image.Point, scale float64, c color.RGBA, thickness int) {
	r.record(Op{Kind: OpText, Center: org, Text: s, Scale: scale, Color: c, Thickness: thickness})
}

// TextSize approximates Hershey metrics: 20px per character and 30px tall
// at scale 1.
func (r *Recorder) TextSize(s string, scale float64, thickness int) image.Point {
	return image.Pt(int(float64(len(s)*20)*scale)+thickness, int(30*scale)+thickness)
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

// Ops returns a copy of the recorded calls.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Count returns how many calls of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the strings drawn, in order.
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, op := range r.ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}
