package particle

import "math/rand"

// Field is the particle store for one drawing surface. It is not safe for
// concurrent use; the animation driver owns it.
type Field struct {
	variant   Variant
	rng       *rand.Rand
	bounds    Bounds
	particles []Particle
}

// NewField creates an empty field for v. Reset must be called before the
// first Step.
func NewField(v Variant, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Field{variant: v, rng: rng}
}

// Reset replaces every particle with a fresh set sized for a w×h surface.
func (f *Field) Reset(w, h int) {
	f.bounds = Bounds{W: float64(w), H: float64(h)}
	f.particles = Initialize(w, h, f.variant, f.rng)
}

// Step advances every particle by one frame.
func (f *Field) Step(scroll ScrollSource) {
	switch f.variant.Policy {
	case Bounce:
		var y float64
		if scroll != nil {
			y = scroll.ScrollY()
		}
		for i := range f.particles {
			StepBounce(&f.particles[i], f.bounds, y)
		}
	default:
		for i := range f.particles {
			StepDrift(&f.particles[i], f.bounds, f.rng)
		}
	}
}

// Variant returns the configuration the field was built with.
func (f *Field) Variant() Variant { return f.variant }

// Bounds returns the current surface extent.
func (f *Field) Bounds() Bounds { return f.bounds }

// Len returns the number of particles.
func (f *Field) Len() int { return len(f.particles) }

// Particles exposes the live slice. Callers must not retain it across a
// Reset.
func (f *Field) Particles() []Particle { return f.particles }

// Snapshot returns a copy of the particle set.
func (f *Field) Snapshot() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}
