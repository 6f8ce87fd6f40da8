package app

import (
	"image"

	"github.com/ayusman/handglow/internal/animation"
	"github.com/ayusman/handglow/internal/detector"
	"github.com/ayusman/handglow/internal/gesture"
	"github.com/ayusman/handglow/internal/log"
	"github.com/ayusman/handglow/internal/spatial"
	"github.com/ayusman/handglow/internal/store"
)

// fallbackDepth is used for back-projection when the palm span gives no
// usable depth estimate.
const fallbackDepth = 0.5

// FrameResult summarizes one pipeline step.
type FrameResult struct {
	Observations []gesture.Observation
	// Active is the label whose effect was drawn, empty when nothing was.
	Active    gesture.Label
	Intensity float64
	Rendered  bool
	// Expired is set on the frame a fading effect ran out and was cleared.
	Expired bool
}

// Step advances the gesture and animation state with the hands found in
// one frame and draws the active effect onto c. A nil canvas advances the
// state without drawing.
func (a *App) Step(hands []detector.HandLandmarks, c animation.Canvas) FrameResult {
	intensity, enabled := a.settings()

	a.frameMu.Lock()
	defer a.frameMu.Unlock()

	obs := a.tracker.Observe(hands)
	res := FrameResult{Observations: obs}

	for _, o := range obs {
		if o.Changed {
			a.confirm(o)
		}
	}

	if !enabled {
		if a.ramp.Active() > 0 || a.current != "" {
			a.resetAnimation()
		}
		a.publishFrame(hands, c, res)
		return res
	}

	active := a.activeObservation(obs)
	if active != nil {
		if a.current != "" && a.current != active.Stable {
			a.engine.Clear()
		}
		a.current = active.Stable
		a.anchor = animation.Point2{X: active.AnchorX, Y: active.AnchorY}
	}

	scale, expired := a.ramp.Next(active != nil, intensity)
	if expired {
		log.Debug("animation faded out", "label", a.current)
		a.engine.Clear()
		a.current = ""
		res.Expired = true
	}

	if a.current != "" && scale > 0 && c != nil {
		phase := a.engine.Phase(a.clock.Now().Sub(a.started))
		res.Rendered = a.engine.Render(c, a.current, a.anchor, scale, phase)
		if res.Rendered {
			res.Active = a.current
			res.Intensity = scale
		}
	}

	a.publishFrame(hands, c, res)
	return res
}

// activeObservation picks the first hand whose confirmed gesture has an
// effect and which is still visible this frame.
func (a *App) activeObservation(obs []gesture.Observation) *gesture.Observation {
	for i := range obs {
		o := &obs[i]
		if o.Confirmed && o.Raw != gesture.LabelNone && a.engine.HasEffect(o.Stable) {
			return o
		}
	}
	return nil
}

// confirm logs and records a newly confirmed gesture.
func (a *App) confirm(o gesture.Observation) {
	a.lastGesture = o.Stable
	effect := a.engine.EffectName(o.Stable)
	log.Info("gesture confirmed", "label", o.Stable, "track", o.TrackID, "hand", o.Key, "effect", effect)

	if a.config.Store != nil {
		e := &store.GestureEvent{
			TrackID:   o.TrackID,
			Label:     string(o.Stable),
			Effect:    effect,
			AnchorX:   o.AnchorX,
			AnchorY:   o.AnchorY,
			CreatedAt: a.clock.Now(),
		}
		if err := a.config.Store.Events().Record(e); err != nil {
			log.Warn("recording gesture event", "error", err)
		}
	}

	a.hub.publish(Event{
		Type:         EventGesture,
		Time:         a.clock.Now(),
		Observations: []gesture.Observation{o},
		Effect:       effect,
	})
}

func (a *App) publishFrame(hands []detector.HandLandmarks, c animation.Canvas, res FrameResult) {
	if a.hub.len() == 0 {
		return
	}
	var size image.Point
	if c != nil {
		size = c.Size()
	}
	a.hub.publish(Event{
		Type:         EventFrame,
		Time:         a.clock.Now(),
		Observations: res.Observations,
		Hands:        project(hands, size),
		Active:       res.Active,
		Effect:       a.engine.EffectName(res.Active),
		Intensity:    res.Intensity,
	})
}

// project back-projects every hand into camera space using the frame size
// and a depth estimated from the palm span.
func project(hands []detector.HandLandmarks, size image.Point) [][]spatial.Point {
	if len(hands) == 0 || size.X == 0 || size.Y == 0 {
		return nil
	}
	in := spatial.DefaultIntrinsics(size.X, size.Y)
	out := make([][]spatial.Point, len(hands))
	for i := range hands {
		depth := spatial.EstimateHandDepth(spatial.PalmSpan(&hands[i], size.X, size.Y))
		if depth == 0 {
			depth = fallbackDepth
		}
		out[i] = spatial.BackProject(in, hands[i].Points[:], size.X, size.Y, depth)
	}
	return out
}

// resetAnimation must be called with frameMu held.
func (a *App) resetAnimation() {
	a.ramp.Reset()
	a.engine.Clear()
	a.current = ""
}

// Clear drops every running animation and resets the fade ramp.
func (a *App) Clear() {
	a.frameMu.Lock()
	a.resetAnimation()
	a.frameMu.Unlock()

	a.hub.publish(Event{Type: EventCleared, Time: a.clock.Now()})
	log.Info("animation cleared")
}

// Animating reports whether an effect is showing or fading out.
func (a *App) Animating() bool {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()
	return a.ramp.Active() > 0
}

// LastGesture returns the most recently confirmed gesture.
func (a *App) LastGesture() gesture.Label {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()
	return a.lastGesture
}
