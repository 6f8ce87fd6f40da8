// Package detector provides hand detection interfaces and types for gesture recognition.
package detector

import (
	"errors"
	"math"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// ErrInsufficientLandmarks is returned when a hand has fewer than
// NumLandmarks points or a point is missing a coordinate.
var ErrInsufficientLandmarks = errors.New("insufficient landmarks")

// palmPoints are the landmarks averaged to find the palm center.
var palmPoints = [...]int{Wrist, ThumbCMC, IndexMCP, MiddleMCP, RingMCP, PinkyMCP}

// Point3D represents a landmark position. X and Y are normalized to the
// image size; Z is depth relative to the wrist. A coordinate the landmark
// source did not report is NaN.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Missing reports whether the point lacks an X or Y coordinate.
func (p Point3D) Missing() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Validate checks that points holds a complete hand.
func Validate(points []Point3D) error {
	if len(points) < NumLandmarks {
		return ErrInsufficientLandmarks
	}
	for i := 0; i < NumLandmarks; i++ {
		if points[i].Missing() {
			return ErrInsufficientLandmarks
		}
	}
	return nil
}

// Validate checks that every landmark of the hand is present.
func (h *HandLandmarks) Validate() error {
	if h == nil {
		return ErrInsufficientLandmarks
	}
	return Validate(h.Points[:])
}

// PalmCenter returns the mean position of the wrist, thumb base and the
// four finger MCP joints, in normalized image coordinates.
func (h *HandLandmarks) PalmCenter() (x, y float64) {
	for _, i := range palmPoints {
		x += h.Points[i].X
		y += h.Points[i].Y
	}
	n := float64(len(palmPoints))
	return x / n, y / n
}
