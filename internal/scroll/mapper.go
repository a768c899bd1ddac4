// Package scroll turns page scroll positions into parallax values: section
// progress, piecewise-linear breakpoint maps and spring smoothing.
package scroll

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadRange reports a breakpoint table that cannot be interpolated.
var ErrBadRange = errors.New("scroll: invalid range")

// Progress returns how far current is between start and end, clamped to
// [0, 1]. NaN inputs give 0.
func Progress(start, end, current float64) float64 {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsNaN(current) {
		return 0
	}
	if end <= start {
		if current <= start {
			return 0
		}
		return 1
	}
	return clamp01((current - start) / (end - start))
}

// Offset names where a section's progress starts and ends relative to the
// viewport.
type Offset int

const (
	// StartStartEndStart runs from the section top at the viewport top to
	// the section bottom at the viewport top.
	StartStartEndStart Offset = iota
	// StartEndEndStart runs from the section top at the viewport bottom to
	// the section bottom at the viewport top.
	StartEndEndStart
)

// Geometry is a section's extent in page coordinates plus the viewport
// height at read time.
type Geometry struct {
	Top      float64
	Height   float64
	Viewport float64
}

// SectionProgress is Progress for a section measured with offset o.
func SectionProgress(g Geometry, o Offset, scrollY float64) float64 {
	start, end := g.Top, g.Top+g.Height
	if o == StartEndEndStart {
		start = g.Top - g.Viewport
	}
	return Progress(start, end, scrollY)
}

// Range is a validated breakpoint table: In is strictly increasing and Out
// has one value per breakpoint.
type Range struct {
	in, out []float64
}

// NewRange validates in/out as a breakpoint table.
func NewRange(in, out []float64) (Range, error) {
	if len(in) < 2 {
		return Range{}, fmt.Errorf("%w: need at least two breakpoints, got %d", ErrBadRange, len(in))
	}
	if len(in) != len(out) {
		return Range{}, fmt.Errorf("%w: %d inputs for %d outputs", ErrBadRange, len(in), len(out))
	}
	for i := 1; i < len(in); i++ {
		if in[i] <= in[i-1] {
			return Range{}, fmt.Errorf("%w: input breakpoints must increase (index %d)", ErrBadRange, i)
		}
	}
	r := Range{in: make([]float64, len(in)), out: make([]float64, len(out))}
	copy(r.in, in)
	copy(r.out, out)
	return r, nil
}

// MustRange is NewRange for static tables.
func MustRange(in, out []float64) Range {
	r, err := NewRange(in, out)
	if err != nil {
		panic(err)
	}
	return r
}

// Map interpolates v between the surrounding breakpoints. Values outside the
// table clamp to the outer outputs and NaN maps like the first breakpoint.
func (r Range) Map(v float64) float64 {
	last := len(r.in) - 1
	if last < 1 {
		return 0
	}
	if math.IsNaN(v) || v <= r.in[0] {
		return r.out[0]
	}
	if v >= r.in[last] {
		return r.out[last]
	}
	i := 1
	for v > r.in[i] {
		i++
	}
	t := (v - r.in[i-1]) / (r.in[i] - r.in[i-1])
	return r.out[i-1] + t*(r.out[i]-r.out[i-1])
}

// Inputs returns a copy of the input breakpoints.
func (r Range) Inputs() []float64 { return append([]float64(nil), r.in...) }

// Outputs returns a copy of the output breakpoints.
func (r Range) Outputs() []float64 { return append([]float64(nil), r.out...) }

// MapRange validates the table and maps v through it.
func MapRange(v float64, in, out []float64) (float64, error) {
	r, err := NewRange(in, out)
	if err != nil {
		return 0, err
	}
	return r.Map(v), nil
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
