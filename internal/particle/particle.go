// Package particle holds the particle records behind the section backgrounds
// and the per-frame motion rules that move them.
package particle

import (
	"image/color"
	"math"
	"math/rand"
)

// Policy selects how a particle moves each frame.
type Policy int

const (
	// Drift moves particles straight down and re-enters them from the top.
	Drift Policy = iota
	// Bounce moves particles along their own direction and reflects them at
	// the surface edges.
	Bounce
)

func (p Policy) String() string {
	switch p {
	case Drift:
		return "drift"
	case Bounce:
		return "bounce"
	default:
		return "unknown"
	}
}

// Particle is one animated point. Every field is set on creation; X, Y, DirX
// and DirY change in place each frame.
type Particle struct {
	X, Y   float64
	Radius float64
	Speed  float64

	// DirX and DirY are only used by the Bounce policy.
	DirX, DirY float64
	// ParallaxFactor scales the scroll bias applied by the Bounce policy.
	ParallaxFactor float64
	// ResetY is the (non-positive) y a Drift particle re-enters at.
	ResetY float64

	Opacity float64
	Color   color.NRGBA
}

// Span is a half-open [Min, Max) range sampled uniformly.
type Span struct {
	Min, Max float64
}

// Sample draws a value from the span.
func (s Span) Sample(rng *rand.Rand) float64 {
	return s.Min + rng.Float64()*(s.Max-s.Min)
}

// Variant is the per-section configuration of a particle background.
type Variant struct {
	Name string
	// Density is the number of square surface units per particle.
	Density float64
	Policy  Policy

	Radius   Span
	Speed    Span
	Opacity  Span
	Dir      Span
	Parallax Span
	// ResetDepth is how far above the top edge Drift particles re-enter.
	ResetDepth float64

	// Tint is the RGB of every particle; alpha comes from Opacity.
	Tint color.RGBA
	// Glow is the shadow blur drawn around each particle, 0 for none.
	Glow float64
	// Constellation draws lines between neighbouring particles.
	Constellation bool
}

// Indigo is the accent colour shared by every section.
var Indigo = color.RGBA{R: 99, G: 102, B: 241, A: 255}

// Count returns how many particles a w×h surface holds for this variant.
func (v Variant) Count(w, h int) int {
	if w <= 0 || h <= 0 || v.Density <= 0 {
		return 0
	}
	return int(math.Floor(float64(w) * float64(h) / v.Density))
}

// Spawn creates one particle anywhere on a w×h surface.
func (v Variant) Spawn(w, h int, rng *rand.Rand) Particle {
	p := Particle{
		X:      rng.Float64() * float64(w),
		Y:      rng.Float64() * float64(h),
		Radius: v.Radius.Sample(rng),
		Speed:  v.Speed.Sample(rng),
	}
	p.Opacity = v.Opacity.Sample(rng)
	p.Color = color.NRGBA{R: v.Tint.R, G: v.Tint.G, B: v.Tint.B, A: uint8(math.Round(p.Opacity * 255))}
	switch v.Policy {
	case Bounce:
		p.DirX = v.Dir.Sample(rng)
		p.DirY = v.Dir.Sample(rng)
		p.ParallaxFactor = v.Parallax.Sample(rng)
	default:
		p.ResetY = -rng.Float64() * v.ResetDepth
	}
	return p
}

// Initialize builds a fresh particle set sized by area for a w×h surface.
func Initialize(w, h int, v Variant, rng *rand.Rand) []Particle {
	n := v.Count(w, h)
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = v.Spawn(w, h, rng)
	}
	return ps
}
