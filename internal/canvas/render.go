package canvas

import (
	"image/color"
	"math"

	"github.com/Zachkp/portfolio/internal/particle"
)

// LinkRadius is the distance under which two particles are joined.
const LinkRadius = 150.0

// Renderer draws particle fields onto a Surface.
type Renderer struct {
	// LinkRadius overrides the constellation radius when non-zero.
	LinkRadius float64
}

// Render clears s and paints ps with the look configured by v.
func (r Renderer) Render(s Surface, ps []particle.Particle, v particle.Variant) {
	s.Clear()

	for i := range ps {
		p := &ps[i]
		s.SetShadow(0, color.NRGBA{})
		s.SetFill(p.Color)
		s.FillCircle(p.X, p.Y, p.Radius)
		if v.Glow > 0 {
			s.SetShadow(v.Glow, p.Color)
			s.FillCircle(p.X, p.Y, p.Radius)
		}
	}
	s.SetShadow(0, color.NRGBA{})

	if v.Constellation {
		r.links(s, ps, v.Tint)
	}

	if pr, ok := s.(Presenter); ok {
		pr.Present()
	}
}

// links joins every pair of particles closer than the link radius with a line
// that fades and thins with distance.
func (r Renderer) links(s Surface, ps []particle.Particle, tint color.RGBA) {
	radius := r.LinkRadius
	if radius <= 0 {
		radius = LinkRadius
	}
	base := color.NRGBA{R: tint.R, G: tint.G, B: tint.B}
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if d >= radius {
				continue
			}
			closeness := 1 - d/radius
			s.SetStroke(WithAlpha(base, 0.1*closeness), 0.5+closeness*0.5)
			s.StrokeLine(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y)
		}
	}
}
