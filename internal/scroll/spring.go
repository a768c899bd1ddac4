package scroll

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig is a mass-spring-damper described the way motion libraries
// take it. Mass defaults to 1.
type SpringConfig struct {
	Stiffness float64
	Damping   float64
	Mass      float64
}

// Critical returns the critically damped config for a stiffness.
func Critical(stiffness float64) SpringConfig {
	return SpringConfig{Stiffness: stiffness, Damping: 2 * math.Sqrt(stiffness)}
}

func (c SpringConfig) mass() float64 {
	if c.Mass <= 0 {
		return 1
	}
	return c.Mass
}

// AngularFrequency is sqrt(k/m).
func (c SpringConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.mass())
}

// DampingRatio is c / (2*sqrt(k*m)); 1 is critical.
func (c SpringConfig) DampingRatio() float64 {
	if c.Stiffness <= 0 {
		return 1
	}
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.mass()))
}

// Spring smooths a stream of targets, one Update per frame.
type Spring struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	primed bool
}

// NewSpring builds a spring stepping at fps frames per second.
func NewSpring(cfg SpringConfig, fps int) *Spring {
	if fps <= 0 {
		fps = 60
	}
	return &Spring{spring: harmonica.NewSpring(harmonica.FPS(fps), cfg.AngularFrequency(), cfg.DampingRatio())}
}

// Update moves one frame towards target and returns the new value. The
// first call snaps to the target.
func (s *Spring) Update(target float64) float64 {
	if !s.primed {
		s.pos, s.primed = target, true
		return s.pos
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	return s.pos
}

// Value returns the current smoothed value.
func (s *Spring) Value() float64 { return s.pos }

// Settled reports whether the spring is within eps of target and nearly at
// rest.
func (s *Spring) Settled(target, eps float64) bool {
	return math.Abs(s.pos-target) < eps && math.Abs(s.vel) < eps
}
