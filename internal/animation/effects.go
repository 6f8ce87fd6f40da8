package animation

import (
	"math"
	"math/rand/v2"
)

var white = MustHex("#ffffff")

// Frame carries the per-call render state for an effect.
type Frame struct {
	// Anchor is the effect centre in pixels.
	Anchor    Point2
	Intensity float64
	Phase     float64
}

// Effect draws one gesture's overlay.
type Effect interface {
	Name() string
	Render(c Canvas, f Frame)
	// Clear drops any state carried between frames.
	Clear()
}

// ParticleEffect is implemented by effects that own a particle pool.
type ParticleEffect interface {
	Effect
	Particles() int
}

// heartsEffect: a breathing ring of dots, hearts drifting upward and a
// fountain of particles.
type heartsEffect struct {
	theme *Theme
	label string
	pool  *Pool
}

func newHeartsEffect(theme *Theme, label string, rng *rand.Rand) *heartsEffect {
	return &heartsEffect{
		theme: theme,
		label: label,
		pool:  NewPool(theme.ParticleCap, theme.EmitPerFrame, theme.Gravity, theme.TrailLength, rng),
	}
}

func (e *heartsEffect) Name() string { return "hearts" }

func (e *heartsEffect) Clear() { e.pool.Clear() }

func (e *heartsEffect) Particles() int { return e.pool.Len() }

func (e *heartsEffect) Render(c Canvas, f Frame) {
	t := f.Phase
	col := e.theme.Tint(e.theme.Palette.Hearts, t)

	const ringDots = 36
	for i := 0; i < ringDots; i++ {
		a := 2 * math.Pi * float64(i) / ringDots
		r := (50 + 30*math.Sin(4*a+t)) * f.Intensity
		dot(c, polar(f.Anchor, r, a, 1), 2, 1, col)
	}

	size := c.Size()
	for i := 0; i < 8; i++ {
		fi := float64(i)
		a := t + fi*math.Pi/4
		r := 80 + 20*math.Sin(t*2+fi)
		p := polar(f.Anchor, r, a, 0.3)
		p.Y -= 50 + math.Mod(t*30+fi*20, 200)

		heart := (8 + 4*math.Sin(t*3+fi)) * f.Intensity
		pos := p.Pixel()
		if heart < 3 || !inFrame(pos, size) {
			continue
		}
		c.FillPoly(heartPolygon(pos, heart/8), col.Opaque())
	}

	e.pool.Emit(f.Anchor, e.spawn(t))
	e.pool.Step(float64(size.Y))
	e.pool.Draw(c, f.Intensity)

	caption(c, e.theme.Caption(e.label), e.theme.Tint(e.theme.Palette.Text, t), e.theme.GlowLayers, f.Intensity, t)
}

func (e *heartsEffect) spawn(phase float64) func(*rand.Rand) Particle {
	th := e.theme
	return func(rng *rand.Rand) Particle {
		base := th.Palette.ParticleLow.Lerp(th.Palette.ParticleHigh, rng.Float64())
		return Particle{
			VX:    th.VelocityX.Sample(rng),
			VY:    th.VelocityY.Sample(rng),
			Life:  1,
			Decay: th.Decay,
			Size:  th.ParticleSize.Sample(rng),
			Color: th.Tint(base, phase),
		}
	}
}

// orbitEffect: twelve dots circling the hand on a wobbling radius.
type orbitEffect struct {
	theme *Theme
	label string
}

func (e *orbitEffect) Name() string { return "orbit" }

func (e *orbitEffect) Clear() {}

func (e *orbitEffect) Render(c Canvas, f Frame) {
	t := f.Phase
	col := e.theme.Tint(e.theme.Palette.Orbit, t)
	for i := 0; i < 12; i++ {
		fi := float64(i)
		a := t + fi*math.Pi/6
		r := 60 + 10*math.Sin(t*3+fi)
		dot(c, polar(f.Anchor, r, a, 1), 3, f.Intensity, col)
	}
	caption(c, e.theme.Caption(e.label), e.theme.Tint(e.theme.Palette.Text, t), e.theme.GlowLayers, f.Intensity, t)
}

// waveEffect: five rings swaying above the hand and a widening arc of dots.
type waveEffect struct {
	theme *Theme
	label string
}

func (e *waveEffect) Name() string { return "wave" }

func (e *waveEffect) Clear() {}

func (e *waveEffect) Render(c Canvas, f Frame) {
	t := f.Phase
	col := e.theme.Tint(e.theme.Palette.Wave, t)
	light := col.Lerp(white, 0.6)
	size := c.Size()

	for i := 0; i < 5; i++ {
		fi := float64(i)
		p := Point2{
			X: f.Anchor.X + 80*math.Cos(t*2+fi*1.2),
			Y: f.Anchor.Y + 60*math.Sin(t*2+fi*1.2) - 50,
		}
		r := int((15 + 5*math.Sin(t*4+fi)) * f.Intensity / 2)
		pos := p.Pixel()
		if r < 1 || !inFrame(pos, size) {
			continue
		}
		c.Circle(pos, r, light.Opaque(), 2)
	}

	for i := 0; i < 8; i++ {
		fi := float64(i)
		dot(c, polar(f.Anchor, 70+fi*10, t*2+fi*0.8, 0.5), 5, f.Intensity, col)
	}

	caption(c, e.theme.Caption(e.label), e.theme.Tint(e.theme.Palette.Text, t), e.theme.GlowLayers, f.Intensity, t)
}

// pulseEffect: a breathing ring of dots inside three pulsing circles.
type pulseEffect struct {
	theme *Theme
	label string
}

func (e *pulseEffect) Name() string { return "pulse" }

func (e *pulseEffect) Clear() {}

func (e *pulseEffect) Render(c Canvas, f Frame) {
	t := f.Phase
	col := e.theme.Tint(e.theme.Palette.Pulse, t)

	for i := 0; i < 8; i++ {
		r := 40 + 20*math.Sin(t*5)
		dot(c, polar(f.Anchor, r, float64(i)*math.Pi/4, 1), 6, f.Intensity, col)
	}

	center := f.Anchor.Pixel()
	if inFrame(center, c.Size()) {
		ring := col.Scale(0.8).Opaque()
		for _, base := range [...]int{30, 50, 70} {
			r := base + int(10*math.Sin(t*4))
			c.Circle(center, r, ring, 2)
		}
	}

	caption(c, e.theme.Caption(e.label), e.theme.Tint(e.theme.Palette.Text, t), e.theme.GlowLayers, f.Intensity, t)
}

// bounceEffect: a row of dots bouncing above the hand.
type bounceEffect struct {
	theme *Theme
	label string
}

func (e *bounceEffect) Name() string { return "bounce" }

func (e *bounceEffect) Clear() {}

func (e *bounceEffect) Render(c Canvas, f Frame) {
	t := f.Phase
	col := e.theme.Tint(e.theme.Palette.Bounce, t)
	for i := 0; i < 6; i++ {
		fi := float64(i)
		p := Point2{
			X: f.Anchor.X - 30 + fi*12,
			Y: f.Anchor.Y - 50 + 40*math.Sin(t*3+fi),
		}
		dot(c, p, 4, f.Intensity, col)
	}
	caption(c, e.theme.Caption(e.label), e.theme.Tint(e.theme.Palette.Text, t), e.theme.GlowLayers, f.Intensity, t)
}

// spiralEffect: a flattened spiral of dots turning around the hand.
type spiralEffect struct {
	theme *Theme
	label string
}

func (e *spiralEffect) Name() string { return "spiral" }

func (e *spiralEffect) Clear() {}

func (e *spiralEffect) Render(c Canvas, f Frame) {
	t := f.Phase
	col := e.theme.Tint(e.theme.Palette.Spiral, t)
	for i := 0; i < 12; i++ {
		fi := float64(i)
		dot(c, polar(f.Anchor, 50+fi*5, t*2+fi*0.5, 0.3), 3, f.Intensity, col)
	}
	caption(c, e.theme.Caption(e.label), e.theme.Tint(e.theme.Palette.Text, t), e.theme.GlowLayers, f.Intensity, t)
}
