// Package canvas defines the 2D drawing capability the animations paint
// into, a few concrete surfaces, and the render step for particle fields.
package canvas

import "image/color"

// Surface is a resizable 2D drawing context. Style setters affect every
// subsequent draw call until changed, like a browser canvas context.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear()

	SetFill(c color.NRGBA)
	SetStroke(c color.NRGBA, width float64)
	// SetShadow sets the blur radius and colour drawn behind fills.
	// A blur of 0 disables it.
	SetShadow(blur float64, c color.NRGBA)

	FillCircle(x, y, r float64)
	StrokeLine(x0, y0, x1, y1 float64)
}

// Presenter is implemented by surfaces that buffer drawing and must be
// flushed once a frame is complete.
type Presenter interface {
	Present()
}

// Backdrop is the page background the particles are drawn over.
var Backdrop = color.NRGBA{R: 3, G: 7, B: 18, A: 255}

// WithAlpha returns c with its alpha replaced by a in [0,1].
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}
