package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// glowRings is how many translucent rings approximate a shadow blur.
const glowRings = 4

// Raster is an in-memory RGBA Surface backed by golang.org/x/image/vector.
type Raster struct {
	img *image.RGBA
	ras *vector.Rasterizer

	background color.Color
	fill       color.NRGBA
	stroke     color.NRGBA
	lineWidth  float64
	blur       float64
	shadow     color.NRGBA
}

// NewRaster allocates a w×h raster. A nil background clears to transparent.
func NewRaster(w, h int, background color.Color) *Raster {
	r := &Raster{background: background, lineWidth: 1}
	r.Resize(w, h)
	return r
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.ras = vector.NewRasterizer(w, h)
	r.ras.DrawOp = draw.Over
	r.Clear()
}

func (r *Raster) Clear() {
	bg := r.background
	if bg == nil {
		bg = color.Transparent
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

func (r *Raster) SetFill(c color.NRGBA) { r.fill = c }

func (r *Raster) SetStroke(c color.NRGBA, width float64) {
	r.stroke = c
	r.lineWidth = width
}

func (r *Raster) SetShadow(blur float64, c color.NRGBA) {
	r.blur = blur
	r.shadow = c
}

// FillCircle paints a filled disc, preceded by a ring halo when a shadow is
// set.
func (r *Raster) FillCircle(x, y, rad float64) {
	if rad <= 0 || r.empty() {
		return
	}
	if r.blur > 0 {
		for i := glowRings; i >= 1; i-- {
			spread := rad + r.blur*float64(i)/glowRings
			a := float64(r.shadow.A) / 255 / float64(glowRings*2)
			r.disc(x, y, spread, WithAlpha(r.shadow, a))
		}
	}
	r.disc(x, y, rad, r.fill)
}

// StrokeLine paints the segment as a quad of the current line width.
func (r *Raster) StrokeLine(x0, y0, x1, y1 float64) {
	if r.empty() {
		return
	}
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	hw := math.Max(r.lineWidth, 0.5) / 2
	nx, ny := -dy/l*hw, dx/l*hw

	pts := [4][2]float64{{x0 + nx, y0 + ny}, {x1 + nx, y1 + ny}, {x1 - nx, y1 - ny}, {x0 - nx, y0 - ny}}
	box, ok := r.clip(math.Min(x0, x1)-hw, math.Min(y0, y1)-hw, math.Max(x0, x1)+hw, math.Max(y0, y1)+hw)
	if !ok {
		return
	}
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	r.ras.Reset(box.Dx(), box.Dy())
	r.ras.MoveTo(float32(pts[0][0]-ox), float32(pts[0][1]-oy))
	for _, p := range pts[1:] {
		r.ras.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	r.ras.ClosePath()
	r.ras.Draw(r.img, box, image.NewUniform(r.stroke), image.Point{})
}

func (r *Raster) disc(x, y, rad float64, c color.NRGBA) {
	box, ok := r.clip(x-rad, y-rad, x+rad, y+rad)
	if !ok {
		return
	}
	x -= float64(box.Min.X)
	y -= float64(box.Min.Y)
	segments := int(math.Max(12, math.Ceil(rad*4)))
	r.ras.Reset(box.Dx(), box.Dy())
	r.ras.MoveTo(float32(x+rad), float32(y))
	for i := 1; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		r.ras.LineTo(float32(x+rad*math.Cos(a)), float32(y+rad*math.Sin(a)))
	}
	r.ras.ClosePath()
	r.ras.Draw(r.img, box, image.NewUniform(c), image.Point{})
}

// clip returns the pixel box covering [x0,x1]×[y0,y1], cut to the image.
func (r *Raster) clip(x0, y0, x1, y1 float64) (image.Rectangle, bool) {
	if sum := x0 + y0 + x1 + y1; math.IsNaN(sum) || math.IsInf(sum, 0) {
		return image.Rectangle{}, false
	}
	box := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x1))+1, int(math.Ceil(y1))+1,
	).Intersect(r.img.Bounds())
	return box, !box.Empty()
}

func (r *Raster) empty() bool {
	b := r.img.Bounds()
	return b.Dx() == 0 || b.Dy() == 0
}

// Image returns the backing image. It is replaced on Resize.
func (r *Raster) Image() *image.RGBA { return r.img }

// EncodePNG writes the current frame as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}
