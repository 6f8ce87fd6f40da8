package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// MotionConfig tunes frame differencing.
type MotionConfig struct {
	// Threshold is the percentage of changed pixels that counts as motion.
	Threshold float64
	// BlurSize is the Gaussian kernel size; it must be odd.
	BlurSize int
	// PixelDelta is the per-pixel grey-level change that marks a pixel as
	// changed.
	PixelDelta float32
}

// DefaultMotionConfig returns a 1% threshold with a 21x21 blur.
func DefaultMotionConfig() MotionConfig {
	return MotionConfig{
		Threshold:  1.0,
		BlurSize:   21,
		PixelDelta: 25,
	}
}

// MotionDetector compares each frame with the previous one.
type MotionDetector struct {
	mu   sync.Mutex
	cfg  MotionConfig
	prev   gocv.Mat
	seen   bool
	closed bool
}

// NewMotionDetector creates a detector. Missing fields take their defaults.
func NewMotionDetector(cfg MotionConfig) *MotionDetector {
	def := DefaultMotionConfig()
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.BlurSize <= 0 {
		cfg.BlurSize = def.BlurSize
	}
	if cfg.BlurSize%2 == 0 {
		cfg.BlurSize++
	}
	if cfg.PixelDelta <= 0 {
		cfg.PixelDelta = def.PixelDelta
	}
	return &MotionDetector{
		cfg:  cfg,
		prev: gocv.NewMat(),
	}
}

// Detect reports whether frame differs from the previous frame by more than
// the threshold, and the percentage of pixels that changed. The first frame
// after construction or Reset only sets the baseline.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}
	k := m.cfg.BlurSize
	gocv.GaussianBlur(gray, &gray, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	if !m.seen || m.prev.Rows() != gray.Rows() || m.prev.Cols() != gray.Cols() {
		gray.CopyTo(&m.prev)
		m.seen = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(gray, m.prev, &diff)
	gocv.Threshold(diff, &diff, m.cfg.PixelDelta, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(diff)) / float64(diff.Rows()*diff.Cols()) * 100
	gray.CopyTo(&m.prev)

	return changed > m.cfg.Threshold, changed
}

// Threshold returns the current motion threshold.
func (m *MotionDetector) Threshold() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg.Threshold
}

// SetThreshold ignores non-positive values.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Threshold = threshold
}

// Reset forgets the baseline frame. The next frame sets a new one.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = false
}

// Close frees the baseline frame. Detect reports no motion afterwards.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.prev.Close()
	m.seen = false
	m.closed = true
}
