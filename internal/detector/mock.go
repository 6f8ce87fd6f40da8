package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	queue [][]HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// QueueFrames sets per-call results. Each Detect call consumes one entry;
// once the queue is empty Detect falls back to the hands set by SetHands.
func (m *MockDetector) QueueFrames(frames ...[]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, frames...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Pose describes which fingers are extended in a synthetic hand.
type Pose struct {
	Thumb, Index, Middle, Ring, Pinky bool
	// Left mirrors the hand horizontally.
	Left bool
}

// finger joint columns for the synthetic right hand, index to pinky.
var fingerX = [4]float64{0.40, 0.45, 0.50, 0.55}

// PoseLandmarks builds a synthetic hand in normalized image coordinates.
// The right hand has its wrist slightly to the right of the knuckle line,
// so the thumb opens toward smaller X. Left hands are mirrored.
func PoseLandmarks(p Pose) HandLandmarks {
	hand := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	hand.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}
	hand.Points[ThumbCMC] = Point3D{X: 0.44, Y: 0.76, Z: -0.01}
	if p.Thumb {
		hand.Points[ThumbMCP] = Point3D{X: 0.39, Y: 0.73, Z: -0.02}
		hand.Points[ThumbIP] = Point3D{X: 0.34, Y: 0.69, Z: -0.02}
		hand.Points[ThumbTip] = Point3D{X: 0.30, Y: 0.66, Z: -0.03}
	} else {
		hand.Points[ThumbMCP] = Point3D{X: 0.42, Y: 0.73, Z: -0.02}
		hand.Points[ThumbIP] = Point3D{X: 0.42, Y: 0.71, Z: -0.03}
		hand.Points[ThumbTip] = Point3D{X: 0.43, Y: 0.70, Z: -0.03}
	}

	extended := [4]bool{p.Index, p.Middle, p.Ring, p.Pinky}
	for f := 0; f < 4; f++ {
		mcp := IndexMCP + f*4
		x := fingerX[f]
		hand.Points[mcp] = Point3D{X: x, Y: 0.65}
		if extended[f] {
			hand.Points[mcp+1] = Point3D{X: x, Y: 0.55}
			hand.Points[mcp+2] = Point3D{X: x, Y: 0.47}
			hand.Points[mcp+3] = Point3D{X: x, Y: 0.40}
		} else {
			hand.Points[mcp+1] = Point3D{X: x, Y: 0.60, Z: -0.04}
			hand.Points[mcp+2] = Point3D{X: x, Y: 0.66, Z: -0.05}
			hand.Points[mcp+3] = Point3D{X: x, Y: 0.70, Z: -0.03}
		}
	}

	if p.Left {
		hand.Handedness = "Left"
		for i := range hand.Points {
			hand.Points[i].X = 1 - hand.Points[i].X
		}
	}

	return hand
}

// ThumbsUpLandmarks returns a preset HandLandmarks representing a thumbs up gesture.
// The thumb is extended while other fingers are curled.
func ThumbsUpLandmarks() HandLandmarks {
	return PoseLandmarks(Pose{Thumb: true})
}

// OpenPalmLandmarks returns a preset HandLandmarks representing an open palm gesture.
// All fingers are extended outward.
func OpenPalmLandmarks() HandLandmarks {
	return PoseLandmarks(Pose{Thumb: true, Index: true, Middle: true, Ring: true, Pinky: true})
}

// FistLandmarks returns a closed fist with the thumb tucked in.
func FistLandmarks() HandLandmarks {
	return PoseLandmarks(Pose{})
}

// PeaceLandmarks returns index and middle fingers raised, thumb tucked.
func PeaceLandmarks() HandLandmarks {
	return PoseLandmarks(Pose{Index: true, Middle: true})
}

// ILoveYouLandmarks returns index and middle fingers raised with the thumb out.
func ILoveYouLandmarks() HandLandmarks {
	return PoseLandmarks(Pose{Thumb: true, Index: true, Middle: true})
}

// FourLandmarks returns all four fingers raised with the thumb tucked.
func FourLandmarks() HandLandmarks {
	return PoseLandmarks(Pose{Index: true, Middle: true, Ring: true, Pinky: true})
}

// OneLandmarks returns only the index finger raised.
func OneLandmarks() HandLandmarks {
	return PoseLandmarks(Pose{Index: true})
}
