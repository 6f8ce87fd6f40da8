package animation

import (
	"math/rand/v2"
)

// Particle is one spark in a Pool. Positions are pixels; velocities are
// pixels per frame.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Decay  float64
	Size   float64
	Color  Color

	trail []Point2
}

// Trail returns the recorded positions, oldest first.
func (p *Particle) Trail() []Point2 {
	return p.trail
}

// Pool is a bounded set of particles advanced once per frame. It never holds
// more than Cap particles.
type Pool struct {
	Cap          int
	EmitPerFrame int
	Gravity      float64
	TrailLength  int

	particles []Particle
	rng       *rand.Rand
}

// NewPool creates an empty pool. A nil rng is replaced by one seeded from
// the runtime's random source.
func NewPool(capacity, emitPerFrame int, gravity float64, trailLength int, rng *rand.Rand) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Pool{
		Cap:          capacity,
		EmitPerFrame: emitPerFrame,
		Gravity:      gravity,
		TrailLength:  trailLength,
		particles:    make([]Particle, 0, capacity),
		rng:          rng,
	}
}

// Len returns the number of live particles.
func (p *Pool) Len() int {
	return len(p.particles)
}

// Particles returns a copy of the live particles.
func (p *Pool) Particles() []Particle {
	out := make([]Particle, len(p.particles))
	copy(out, p.particles)
	return out
}

// Clear removes every particle.
func (p *Pool) Clear() {
	p.particles = p.particles[:0]
}

// Emit adds up to EmitPerFrame particles at origin without exceeding Cap.
// spawn returns a particle whose position is relative to origin. It returns
// the number of particles added.
func (p *Pool) Emit(origin Point2, spawn func(*rand.Rand) Particle) int {
	added := 0
	for added < p.EmitPerFrame && len(p.particles) < p.Cap {
		np := spawn(p.rng)
		np.X += origin.X
		np.Y += origin.Y
		np.trail = nil
		p.particles = append(p.particles, np)
		added++
	}
	return added
}

// Step advances every particle by one frame and drops the ones that have
// faded out or fallen below bottom.
func (p *Pool) Step(bottom float64) {
	kept := p.particles[:0]
	for i := range p.particles {
		pt := p.particles[i]

		if p.TrailLength > 0 {
			if len(pt.trail) >= p.TrailLength {
				pt.trail = append(pt.trail[:0], pt.trail[1:]...)
			}
			pt.trail = append(pt.trail, Point2{X: pt.X, Y: pt.Y})
		}

		pt.VY += p.Gravity
		pt.X += pt.VX
		pt.Y += pt.VY
		pt.Life -= pt.Decay

		if pt.Life <= 0 || pt.Y > bottom {
			continue
		}
		kept = append(kept, pt)
	}
	// Release trails held by dropped slots.
	for i := len(kept); i < len(p.particles); i++ {
		p.particles[i] = Particle{}
	}
	p.particles = kept
}

// Draw renders each particle as a disc whose colour is scaled by
// life*intensity. Trails fade toward the oldest point.
func (p *Pool) Draw(c Canvas, intensity float64) {
	size := c.Size()
	for i := range p.particles {
		pt := &p.particles[i]
		alpha := clamp01(pt.Life * intensity)
		if alpha <= 0 {
			continue
		}
		col := pt.Color.Scale(alpha).Opaque()

		for j, tp := range pt.trail {
			fade := alpha * float64(j+1) / float64(len(pt.trail)+1)
			pos := tp.Pixel()
			if inFrame(pos, size) {
				c.Circle(pos, 1, pt.Color.Scale(fade).Opaque(), -1)
			}
		}

		pos := Point2{X: pt.X, Y: pt.Y}.Pixel()
		radius := int(pt.Size * pt.Life)
		if radius < 1 || !inFrame(pos, size) {
			continue
		}
		c.Circle(pos, radius, col, -1)
	}
}
