package particle

import (
	"math"
	"math/rand"
)

// ScrollSource reports the current vertical page scroll. The Bounce policy
// reads it once per frame to bias particles downward.
type ScrollSource interface {
	ScrollY() float64
}

// StaticScroll is a ScrollSource pinned to a fixed offset.
type StaticScroll float64

// ScrollY implements ScrollSource.
func (s StaticScroll) ScrollY() float64 { return float64(s) }

// scrollBias is the fraction of the page scroll folded into a bouncing
// particle's vertical motion, before its own parallax factor.
const scrollBias = 0.1

// Bounds is the logical extent particles live in.
type Bounds struct {
	W, H float64
}

// StepDrift moves p down by its speed and re-enters it from the top once it
// falls past the bottom edge.
func StepDrift(p *Particle, b Bounds, rng *rand.Rand) {
	p.Y += p.Speed
	if p.Y > b.H {
		p.Y = p.ResetY
		p.X = rng.Float64() * b.W
	}
}

// StepBounce moves p along its direction, adds the scroll bias, and reflects
// it off any edge it crossed. A non-finite scrollY counts as zero.
func StepBounce(p *Particle, b Bounds, scrollY float64) {
	if math.IsNaN(scrollY) || math.IsInf(scrollY, 0) {
		scrollY = 0
	}
	p.X += p.DirX * p.Speed
	p.Y += p.DirY*p.Speed + scrollY*p.ParallaxFactor*scrollBias

	if p.X < 0 || p.X > b.W {
		p.DirX = -p.DirX
		p.X = clamp(p.X, 0, b.W)
	}
	if p.Y < 0 || p.Y > b.H {
		p.DirY = -p.DirY
		p.Y = clamp(p.Y, 0, b.H)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
