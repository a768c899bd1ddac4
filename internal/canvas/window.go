//go:build ebiten

package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Window draws onto an ebiten image. Target must be set to the frame's
// screen image before each render.
type Window struct {
	Target *ebiten.Image
	bg     color.Color
	w, h   int

	fill   color.NRGBA
	stroke color.NRGBA
	width  float32
	blur   float64
	shadow color.NRGBA
}

// NewWindow returns a Window surface that clears to bg.
func NewWindow(w, h int, bg color.Color) *Window {
	return &Window{w: w, h: h, bg: bg, width: 1}
}

func (s *Window) Size() (int, int) { return s.w, s.h }

func (s *Window) Resize(w, h int) { s.w, s.h = w, h }

func (s *Window) Clear() {
	if s.Target == nil {
		return
	}
	if s.bg == nil {
		s.Target.Clear()
		return
	}
	s.Target.Fill(s.bg)
}

func (s *Window) SetFill(c color.NRGBA) { s.fill = c }

func (s *Window) SetStroke(c color.NRGBA, width float64) {
	s.stroke = c
	s.width = float32(width)
}

func (s *Window) SetShadow(blur float64, c color.NRGBA) {
	s.blur = blur
	s.shadow = c
}

func (s *Window) FillCircle(x, y, r float64) {
	if s.Target == nil {
		return
	}
	if s.blur > 0 {
		for i := glowRings; i >= 1; i-- {
			spread := r + s.blur*float64(i)/glowRings
			a := float64(s.shadow.A) / 255 / float64(glowRings*2)
			vector.DrawFilledCircle(s.Target, float32(x), float32(y), float32(spread), WithAlpha(s.shadow, a), true)
		}
	}
	vector.DrawFilledCircle(s.Target, float32(x), float32(y), float32(r), s.fill, true)
}

func (s *Window) StrokeLine(x0, y0, x1, y1 float64) {
	if s.Target == nil {
		return
	}
	vector.StrokeLine(s.Target, float32(x0), float32(y0), float32(x1), float32(y1), s.width, s.stroke, true)
}
