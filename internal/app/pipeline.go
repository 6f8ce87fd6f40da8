package app

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handglow/internal/animation"
	"github.com/ayusman/handglow/internal/capture"
	"github.com/ayusman/handglow/internal/detector"
	"github.com/ayusman/handglow/internal/log"
)

// runPipeline is the frame loop. It switches between idle and active
// frame rates based on motion:
//
//  1. Start in idle mode (capture.IdleFPS).
//  2. On motion, switch to active mode (capture.ActiveFPS).
//  3. Detect hands while active or while an effect is still running.
//  4. Step the gesture and animation state and draw onto the frame.
//  5. After IdleTimeout without motion, switch back to idle mode.
func (a *App) runPipeline(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	plog := log.With("component", "pipeline", "camera", a.config.CameraID)
	activeMode := false
	lastMotion := a.clock.Now()

	ticker := time.NewTicker(time.Second / time.Duration(capture.IdleFPS))
	defer ticker.Stop()

	setMode := func(active bool) {
		activeMode = active
		fps := capture.IdleFPS
		if active {
			fps = capture.ActiveFPS
		}
		a.camera.SetFPS(fps)
		ticker.Reset(time.Second / time.Duration(fps))
		plog.Info("mode changed", "active", active, "fps", fps)
	}
	if a.config.AlwaysDetect {
		setMode(true)
	}

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			plog.Warn("reading frame", "error", err)
			a.Step(nil, nil)
			continue
		}

		moving, ratio := a.motion.Detect(frame)
		now := a.clock.Now()
		if moving {
			lastMotion = now
			if !activeMode {
				setMode(true)
			}
		} else if activeMode && !a.config.AlwaysDetect && now.Sub(lastMotion) > a.config.IdleTimeout {
			setMode(false)
		}
		plog.Debug("frame", "motion", ratio, "active", activeMode)

		a.ProcessFrame(frame, activeMode || a.Animating())
		frame.Close()
	}
}

// ProcessFrame runs one frame through detection and the animation step,
// drawing onto frame in place. With detect false the frame counts as
// having no hands.
func (a *App) ProcessFrame(frame *gocv.Mat, detect bool) FrameResult {
	var hands []detector.HandLandmarks
	canvas := animation.NewMatCanvas(frame)

	if d := a.Detector(); detect && d != nil {
		found, err := d.Detect(frame)
		if err != nil {
			log.Warn("detecting hands", "error", err)
			res := a.Step(nil, nil)
			a.emit(frame)
			return res
		}
		hands = found
	}

	res := a.Step(hands, canvas)
	a.emit(frame)
	return res
}

// emit hands the rendered frame to the sink and the MJPEG buffer.
func (a *App) emit(frame *gocv.Mat) {
	if a.config.FrameSink != nil {
		a.config.FrameSink(frame)
	}
	if frame.Empty() {
		return
	}
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		log.Debug("encoding frame", "error", err)
		return
	}
	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())
	buf.Close()
	a.setLatest(jpeg)
}
