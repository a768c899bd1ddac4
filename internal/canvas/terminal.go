package canvas

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Cell dimensions in surface units. A terminal cell is roughly twice as tall
// as it is wide.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Terminal draws onto a tcell screen, one particle per cell.
type Terminal struct {
	screen tcell.Screen
	bg     color.NRGBA
	w, h   int

	fill   color.NRGBA
	stroke color.NRGBA
	blur   float64
}

// NewTerminal wraps an initialised screen. Colours are blended over bg.
func NewTerminal(screen tcell.Screen, bg color.NRGBA) *Terminal {
	t := &Terminal{screen: screen, bg: bg}
	cols, rows := screen.Size()
	t.w, t.h = int(float64(cols)*CellWidth), int(float64(rows)*CellHeight)
	return t
}

// SurfaceSize converts a screen size in cells to surface units.
func SurfaceSize(cols, rows int) (int, int) {
	return int(float64(cols) * CellWidth), int(float64(rows) * CellHeight)
}

func (t *Terminal) Size() (int, int) { return t.w, t.h }

func (t *Terminal) Resize(w, h int) { t.w, t.h = w, h }

func (t *Terminal) Clear() { t.screen.Clear() }

func (t *Terminal) SetFill(c color.NRGBA) { t.fill = c }

func (t *Terminal) SetStroke(c color.NRGBA, _ float64) { t.stroke = c }

func (t *Terminal) SetShadow(blur float64, _ color.NRGBA) { t.blur = blur }

// FillCircle marks the cell under (x, y). Glowing particles get a heavier
// glyph rather than a second draw.
func (t *Terminal) FillCircle(x, y, r float64) {
	col, row, ok := t.cell(x, y)
	if !ok {
		return
	}
	glyph := '·'
	switch {
	case t.blur > 0 || r >= 3:
		glyph = '●'
	case r >= 1.5:
		glyph = '•'
	}
	t.screen.SetContent(col, row, glyph, nil, t.style(t.fill))
}

// StrokeLine walks the segment cell by cell, leaving particle cells intact.
func (t *Terminal) StrokeLine(x0, y0, x1, y1 float64) {
	steps := int(math.Max(math.Abs(x1-x0)/CellWidth, math.Abs(y1-y0)/CellHeight))
	if steps == 0 {
		return
	}
	for i := 1; i < steps; i++ {
		f := float64(i) / float64(steps)
		col, row, ok := t.cell(x0+(x1-x0)*f, y0+(y1-y0)*f)
		if !ok {
			continue
		}
		if r, _, _, _ := t.screen.GetContent(col, row); r != ' ' && r != 0 {
			continue
		}
		t.screen.SetContent(col, row, '.', nil, t.style(t.stroke))
	}
}

// Present shows the frame.
func (t *Terminal) Present() { t.screen.Show() }

func (t *Terminal) cell(x, y float64) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row := int(x/CellWidth), int(y/CellHeight)
	cols, rows := t.screen.Size()
	if col >= cols || row >= rows {
		return 0, 0, false
	}
	return col, row, true
}

// style blends c over the background, since cells have no alpha.
func (t *Terminal) style(c color.NRGBA) tcell.Style {
	a := float64(c.A) / 255
	// Lift faint particles so they stay visible on a terminal palette.
	a = math.Min(1, a*2.5)
	mix := func(fg, bg uint8) int32 {
		return int32(math.Round(float64(fg)*a + float64(bg)*(1-a)))
	}
	fg := tcell.NewRGBColor(mix(c.R, t.bg.R), mix(c.G, t.bg.G), mix(c.B, t.bg.B))
	return tcell.StyleDefault.
		Foreground(fg).
		Background(tcell.NewRGBColor(int32(t.bg.R), int32(t.bg.G), int32(t.bg.B)))
}
