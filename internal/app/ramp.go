package app

// RampFrames caps how many frames of presence are remembered. It is also
// the length of the longest fade-out once the gesture disappears.
const RampFrames = 30

// Ramp tracks how long an effect has been shown and fades it out after
// the gesture goes away.
type Ramp struct {
	active int
}

// Next advances the ramp by one frame. present reports whether a confirmed
// gesture with an effect is visible. It returns the intensity to render
// with and whether the animation ran out this frame and must be cleared.
func (r *Ramp) Next(present bool, configured float64) (intensity float64, expired bool) {
	if present {
		r.active = min(r.active+1, RampFrames)
		return configured, false
	}
	if r.active == 0 {
		return 0, false
	}
	r.active--
	if r.active == 0 {
		return 0, true
	}
	return min(configured, float64(r.active)/RampFrames), false
}

// Active returns the current frame count.
func (r *Ramp) Active() int {
	return r.active
}

// Reset drops the ramp to zero.
func (r *Ramp) Reset() {
	r.active = 0
}
