package animation

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ayusman/handglow/internal/gesture"
)

// MaxIntensity is the upper bound applied to render intensity.
const MaxIntensity = 2.0

// Engine owns one effect per gesture and renders the effect for the current
// label. It is safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	theme   Theme
	rng     *rand.Rand
	effects map[gesture.Label]Effect
}

// NewEngine builds the effect set for theme. A nil rng is seeded randomly.
func NewEngine(theme Theme, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e := &Engine{rng: rng}
	e.setTheme(theme)
	return e
}

func (e *Engine) setTheme(theme Theme) {
	e.theme = theme
	th := &e.theme
	e.effects = map[gesture.Label]Effect{
		gesture.LabelILoveYou: newHeartsEffect(th, string(gesture.LabelILoveYou), e.rng),
		gesture.LabelPeace:    &orbitEffect{theme: th, label: string(gesture.LabelPeace)},
		gesture.LabelOpenHand: &waveEffect{theme: th, label: string(gesture.LabelOpenHand)},
		gesture.LabelFist:     &pulseEffect{theme: th, label: string(gesture.LabelFist)},
		gesture.LabelThumbsUp: &bounceEffect{theme: th, label: string(gesture.LabelThumbsUp)},
		gesture.LabelOne:      &spiralEffect{theme: th, label: string(gesture.LabelOne)},
	}
}

// SetTheme replaces the theme. Existing particles are discarded.
func (e *Engine) SetTheme(theme Theme) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setTheme(theme)
}

// Theme returns a copy of the current theme.
func (e *Engine) Theme() Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.theme
}

// HasEffect reports whether label has an effect.
func (e *Engine) HasEffect(label gesture.Label) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.effects[label]
	return ok
}

// EffectName returns the name of the effect bound to label, or "".
func (e *Engine) EffectName(label gesture.Label) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if eff, ok := e.effects[label]; ok {
		return eff.Name()
	}
	return ""
}

// Phase converts elapsed clock time into the theme's phase units.
func (e *Engine) Phase(elapsed time.Duration) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	ms := float64(elapsed) / float64(time.Millisecond)
	return ms / e.theme.TimeScale
}

// Render draws the effect for label around anchor, given in normalized
// frame coordinates, followed by a glow halo. Intensity is clamped to
// [0, MaxIntensity]. It returns false without drawing when label has no
// effect or the canvas is empty.
func (e *Engine) Render(c Canvas, label gesture.Label, anchor Point2, intensity, phase float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	eff, ok := e.effects[label]
	if !ok {
		return false
	}
	size := c.Size()
	if size.X == 0 || size.Y == 0 {
		return false
	}

	if math.IsNaN(intensity) {
		intensity = 0
	}
	f := Frame{
		Anchor: Point2{
			X: anchor.X * float64(size.X),
			Y: anchor.Y * float64(size.Y),
		},
		Intensity: clamp(intensity, 0, MaxIntensity),
		Phase:     phase,
	}

	eff.Render(c, f)
	halo(c, f.Anchor, e.theme.HaloRadius, e.theme.Tint(e.theme.Palette.Glow, phase), f.Intensity)
	return true
}

// Clear resets every effect's particle state.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, eff := range e.effects {
		eff.Clear()
	}
}

// ParticleCount returns the number of live particles across all effects
// that implement ParticleEffect.
func (e *Engine) ParticleCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, eff := range e.effects {
		if p, ok := eff.(ParticleEffect); ok {
			n += p.Particles()
		}
	}
	return n
}
