package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"particlenet/network"
)

const (
	// CellWidth and CellHeight are the logical pixels covered by one terminal cell
	CellWidth  = 8.0
	CellHeight = 16.0

	// lineGain boosts link opacity: a glyph stands in for a whole cell of thin line
	lineGain = 5.0
)

type rgb [3]float64

type cell struct {
	bg, fg rgb
	glyph  rune
}

// Canvas draws a network onto a grid of terminal cells
type Canvas struct {
	cols, rows int
	cells      []cell
}

// NewCanvas creates an empty canvas; call Reset before drawing
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Reset sizes the grid to cover s
func (c *Canvas) Reset(s network.Surface) {
	c.cols = int(math.Ceil(s.Width / CellWidth))
	c.rows = int(math.Ceil(s.Height / CellHeight))
	c.cells = make([]cell, c.cols*c.rows)
	c.Clear()
}

// Size returns the grid dimensions
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Clear blanks every cell
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{glyph: ' '}
	}
}

// FillRect composites the gradient, sampled at cell centers, onto cell backgrounds
func (c *Canvas) FillRect(x, y, w, h float64, g network.LinearGradient) {
	for row := 0; row < c.rows; row++ {
		cy := (float64(row) + 0.5) * CellHeight
		if cy < y || cy >= y+h {
			continue
		}
		for col := 0; col < c.cols; col++ {
			cx := (float64(col) + 0.5) * CellWidth
			if cx < x || cx >= x+w {
				continue
			}
			cl := &c.cells[row*c.cols+col]
			cl.bg = over(cl.bg, g.At(cx, cy), 1)
			cl.fg = cl.bg
		}
	}
}

// StrokeLine marks every cell the segment passes through with a direction glyph
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	glyph := lineGlyph(x1-x0, y1-y0)
	step := math.Min(CellWidth, CellHeight) / 2
	n := max(1, int(math.Ceil(math.Hypot(x1-x0, y1-y0)/step)))

	lastCol, lastRow := -1, -1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		col, row, ok := c.cellAt(x0+(x1-x0)*t, y0+(y1-y0)*t)
		if !ok || (col == lastCol && row == lastRow) {
			continue
		}
		lastCol, lastRow = col, row

		cl := &c.cells[row*c.cols+col]
		if isParticle(cl.glyph) {
			continue
		}
		cl.glyph = glyph
		cl.fg = over(cl.fg, clr, lineGain)
	}
}

// FillCircle puts a particle glyph colored by the gradient center into one cell
func (c *Canvas) FillCircle(cx, cy, r float64, g network.RadialGradient) {
	col, row, ok := c.cellAt(cx, cy)
	if !ok {
		return
	}
	cl := &c.cells[row*c.cols+col]
	cl.glyph = '•'
	if r >= 2 {
		cl.glyph = '●'
	}
	cl.fg = over(cl.bg, g.At(0), 1)
}

// Glyph returns the rune at a cell
func (c *Canvas) Glyph(col, row int) rune {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0
	}
	return c.cells[row*c.cols+col].glyph
}

// String renders the grid with lipgloss, one style per run of equal colors
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		line := c.cells[row*c.cols : (row+1)*c.cols]
		for start := 0; start < len(line); {
			end := start + 1
			for end < len(line) && line[end].fg == line[start].fg && line[end].bg == line[start].bg {
				end++
			}
			var run strings.Builder
			for _, cl := range line[start:end] {
				run.WriteRune(cl.glyph)
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(line[start].fg))).
				Background(lipgloss.Color(hex(line[start].bg)))
			b.WriteString(style.Render(run.String()))
			start = end
		}
	}
	return b.String()
}

func (c *Canvas) cellAt(x, y float64) (int, int, bool) {
	col := int(math.Floor(x / CellWidth))
	row := int(math.Floor(y / CellHeight))
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, 0, false
	}
	return col, row, true
}

// lineGlyph picks a box-drawing rune for a direction, y pointing down
func lineGlyph(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ax > 2*ay:
		return '─'
	case ay > 2*ax:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func isParticle(r rune) bool {
	return r == '•' || r == '●'
}

// over composites src with its alpha scaled by gain onto an opaque dst
func over(dst rgb, src color.NRGBA, gain float64) rgb {
	a := math.Min(1, float64(src.A)/255*gain)
	return rgb{
		dst[0] + (float64(src.R)-dst[0])*a,
		dst[1] + (float64(src.G)-dst[1])*a,
		dst[2] + (float64(src.B)-dst[2])*a,
	}
}

func hex(c rgb) string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(math.Round(c[0])), uint8(math.Round(c[1])), uint8(math.Round(c[2])))
}
