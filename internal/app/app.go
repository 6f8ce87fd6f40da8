// Package app wires capture, hand detection, gesture stabilization and the
// animation engine into the handglow frame pipeline.
package app

import (
	"math/rand/v2"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handglow/internal/animation"
	"github.com/ayusman/handglow/internal/capture"
	"github.com/ayusman/handglow/internal/detector"
	"github.com/ayusman/handglow/internal/gesture"
	"github.com/ayusman/handglow/internal/log"
	"github.com/ayusman/handglow/internal/store"
)

// Intensity bounds accepted by SetIntensity.
const (
	MinIntensity = 0.1
	MaxIntensity = animation.MaxIntensity
)

// DefaultIdleTimeout is how long the scene must stay still before the
// pipeline drops back to the idle frame rate.
const DefaultIdleTimeout = 2 * time.Second

// Config holds configuration options for the application.
type Config struct {
	Store *store.Store

	// Camera overrides the webcam opened from CameraID.
	Camera   capture.Camera
	CameraID int
	// Detector overrides the MediaPipe detector.
	Detector detector.Detector

	Theme             animation.Theme
	Intensity         float64
	AnimationsEnabled bool

	MotionThresh    float64
	StabilityWindow int
	IdleTimeout     time.Duration
	// AlwaysDetect keeps the pipeline at the active rate and runs the
	// detector on every frame, motion or not.
	AlwaysDetect bool

	// FrameSink receives every rendered frame before it is released.
	// It must not retain the Mat.
	FrameSink func(frame *gocv.Mat)

	Clock Clock
	// Seed fixes the particle RNG. Zero picks a random seed.
	Seed uint64
}

// DefaultConfig returns the settings the app starts with when nothing is
// stored or passed on the command line.
func DefaultConfig() Config {
	return Config{
		Theme:             animation.ClassicTheme(),
		Intensity:         1.0,
		AnimationsEnabled: true,
		MotionThresh:      capture.DefaultMotionConfig().Threshold,
		StabilityWindow:   gesture.DefaultWindow,
		IdleTimeout:       DefaultIdleTimeout,
	}
}

// App is the main application that turns camera frames into gesture
// events and overlays.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	engine   *animation.Engine
	clock    Clock
	started  time.Time
	detector detector.Detector

	mu        sync.RWMutex
	intensity float64
	enabled   bool
	stopCh    chan struct{}
	doneCh    chan struct{}

	// frameMu guards the per-frame state below.
	frameMu     sync.Mutex
	tracker     *gesture.Tracker
	ramp        Ramp
	current     gesture.Label
	anchor      animation.Point2
	lastGesture gesture.Label

	hub      *hub
	latestMu sync.RWMutex
	latest   []byte
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	def := DefaultConfig()
	if config.Theme.Name == "" {
		config.Theme = def.Theme
	}
	if config.MotionThresh <= 0 {
		config.MotionThresh = def.MotionThresh
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = def.IdleTimeout
	}
	if config.Clock == nil {
		config.Clock = systemClock{}
	}
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	motionCfg := capture.DefaultMotionConfig()
	motionCfg.Threshold = config.MotionThresh

	a := &App{
		config:    config,
		camera:    config.Camera,
		motion:    capture.NewMotionDetector(motionCfg),
		engine:    animation.NewEngine(config.Theme, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
		clock:     config.Clock,
		started:   config.Clock.Now(),
		detector:  config.Detector,
		intensity: clampIntensity(config.Intensity),
		enabled:   config.AnimationsEnabled,
		tracker:   gesture.NewTracker(config.StabilityWindow, 0),
		hub:       newHub(),
	}

	if a.camera == nil {
		camCfg := capture.DefaultConfig()
		camCfg.DeviceID = config.CameraID
		a.camera = capture.NewCamera(camCfg)
	}

	// Try MediaPipe first, fall back to mock detector
	if a.detector == nil {
		if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
			a.detector = mp
			log.Info("using MediaPipe hand detection")
		} else {
			log.Warn("MediaPipe not available, using mock detector", "error", err)
			a.detector = detector.NewMockDetector()
		}
	}

	return a
}

func clampIntensity(v float64) float64 {
	if v != v || v < MinIntensity {
		return MinIntensity
	}
	return min(v, MaxIntensity)
}

// Start opens the camera and begins the frame pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(capture.IdleFPS)

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh)

	log.Info("frame pipeline started", "camera", a.config.CameraID, "theme", a.engine.Theme().Name)
	return nil
}

// Stop halts the pipeline and releases the camera and detector.
func (a *App) Stop() {
	a.mu.Lock()
	stop, done := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}

	if err := a.camera.Close(); err != nil {
		log.Warn("closing camera", "error", err)
	}
	a.motion.Close()

	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			log.Warn("closing detector", "error", err)
		}
	}
	a.hub.close()

	log.Info("frame pipeline stopped")
}

// Running reports whether the pipeline goroutine is active.
func (a *App) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopCh != nil
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Engine returns the animation engine.
func (a *App) Engine() *animation.Engine {
	return a.engine
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Subscribe registers for pipeline events. The returned function
// unsubscribes and closes the channel. Slow subscribers miss events.
func (a *App) Subscribe(buffer int) (<-chan Event, func()) {
	return a.hub.subscribe(buffer)
}

// LatestJPEG returns the most recent rendered frame as JPEG, or nil before
// the first frame.
func (a *App) LatestJPEG() []byte {
	a.latestMu.RLock()
	defer a.latestMu.RUnlock()
	return a.latest
}

func (a *App) setLatest(buf []byte) {
	a.latestMu.Lock()
	a.latest = buf
	a.latestMu.Unlock()
}
