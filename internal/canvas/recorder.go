package canvas

import (
	"image/color"
	"sync"
)

// OpKind names a recorded draw call.
type OpKind string

const (
	OpClear  OpKind = "clear"
	OpCircle OpKind = "circle"
	OpLine   OpKind = "line"
)

// Op is one recorded draw call with the style in effect at the time.
type Op struct {
	Kind   OpKind
	X0, Y0 float64
	X1, Y1 float64
	R      float64
	Color  color.NRGBA
	Width  float64
	Blur   float64
}

// Recorder is a Surface that keeps a log of draw calls instead of pixels.
type Recorder struct {
	mu     sync.Mutex
	w, h   int
	fill   color.NRGBA
	stroke color.NRGBA
	width  float64
	blur   float64
	shadow color.NRGBA
	ops    []Op
	frames int
}

// NewRecorder returns a w×h recorder.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{w: w, h: h}
}

func (r *Recorder) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w, r.h
}

func (r *Recorder) Resize(w, h int) {
	r.mu.Lock()
	r.w, r.h = w, h
	r.mu.Unlock()
}

// Clear starts a new frame; ops from the previous frame are dropped.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.ops = append(r.ops[:0], Op{Kind: OpClear})
	r.mu.Unlock()
}

func (r *Recorder) SetFill(c color.NRGBA) {
	r.mu.Lock()
	r.fill = c
	r.mu.Unlock()
}

func (r *Recorder) SetStroke(c color.NRGBA, width float64) {
	r.mu.Lock()
	r.stroke, r.width = c, width
	r.mu.Unlock()
}

func (r *Recorder) SetShadow(blur float64, c color.NRGBA) {
	r.mu.Lock()
	r.blur, r.shadow = blur, c
	r.mu.Unlock()
}

func (r *Recorder) FillCircle(x, y, rad float64) {
	r.mu.Lock()
	r.ops = append(r.ops, Op{Kind: OpCircle, X0: x, Y0: y, R: rad, Color: r.fill, Blur: r.blur})
	r.mu.Unlock()
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1 float64) {
	r.mu.Lock()
	r.ops = append(r.ops, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Color: r.stroke, Width: r.width})
	r.mu.Unlock()
}

// Present counts completed frames.
func (r *Recorder) Present() {
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
}

// Ops returns a copy of the current frame's draw calls.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Count returns how many ops of kind k the current frame holds.
func (r *Recorder) Count(k OpKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Frames returns how many frames have been presented.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
