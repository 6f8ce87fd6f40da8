// Package detector turns camera frames into 21-point hand landmarks.
package detector

import (
	"time"

	"gocv.io/x/gocv"
)

// Detector finds hands in a frame. An empty result means no hands.
type Detector interface {
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)
	Close() error
}

// Config controls the landmark service.
type Config struct {
	// Python and Script override interpreter and service discovery.
	Python string
	Script string

	MaxHands     int
	MinDetection float64
	MinTracking  float64

	// FrameWidth downscales wider frames before they are sent. Zero sends
	// frames as captured.
	FrameWidth int

	// IdleTimeout stops the service after this long without a Detect call.
	// Zero keeps it running.
	IdleTimeout time.Duration
}

// DefaultConfig returns the settings used by the desktop app.
func DefaultConfig() Config {
	return Config{
		MaxHands:     2,
		MinDetection: 0.7,
		MinTracking:  0.5,
		FrameWidth:   640,
		IdleTimeout:  30 * time.Second,
	}
}
