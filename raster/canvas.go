// Package raster implements network.Canvas in software, at backing-store resolution,
// for headless snapshots.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"particlenet/network"
)

// circleSegments is the polygon resolution of a filled circle at scale 1
const circleSegments = 24

// Canvas rasterizes into an RGBA image. Coordinates are logical and scaled by the
// surface ratio.
type Canvas struct {
	img   *image.RGBA
	scale float64
	r     *vector.Rasterizer
}

// New creates a canvas with an empty backing store; call Reset before drawing
func New() *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, 0, 0)),
		scale: 1,
		r:     vector.NewRasterizer(0, 0),
	}
}

// Reset reallocates the backing store for s
func (c *Canvas) Reset(s network.Surface) {
	w, h := s.BackingSize()
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.scale = s.Ratio
}

// Image returns the backing store
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// WritePNG encodes the backing store
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// Clear makes every pixel transparent
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// FillRect fills a rectangle with a linear gradient
func (c *Canvas) FillRect(x, y, w, h float64, g network.LinearGradient) {
	s := c.scale
	c.fill([][2]float64{
		{x * s, y * s}, {(x + w) * s, y * s}, {(x + w) * s, (y + h) * s}, {x * s, (y + h) * s},
	}, linearSource{g: g, scale: s})
}

// StrokeLine draws the segment as a quad of the given width
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	s := c.scale
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	// half-width normal
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.fill([][2]float64{
		{(x0 + nx) * s, (y0 + ny) * s},
		{(x1 + nx) * s, (y1 + ny) * s},
		{(x1 - nx) * s, (y1 - ny) * s},
		{(x0 - nx) * s, (y0 - ny) * s},
	}, image.NewUniform(clr))
}

// FillCircle fills a polygonal disc shaded by g
func (c *Canvas) FillCircle(cx, cy, r float64, g network.RadialGradient) {
	s := c.scale
	n := max(circleSegments, int(r*s*4))
	pts := make([][2]float64, n)
	for i := range pts {
		a := float64(i) / float64(n) * 2 * math.Pi
		pts[i] = [2]float64{(cx + math.Cos(a)*r) * s, (cy + math.Sin(a)*r) * s}
	}
	c.fill(pts, radialSource{g: g, scale: s})
}

// fill rasterizes a closed polygon in device coordinates, sizing the rasterizer to
// the polygon's clipped bounding box
func (c *Canvas) fill(pts [][2]float64, src image.Image) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	box = box.Intersect(c.img.Bounds())
	if box.Empty() {
		return
	}

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	c.r.Reset(box.Dx(), box.Dy())
	c.r.DrawOp = draw.Over
	c.r.MoveTo(float32(pts[0][0]-ox), float32(pts[0][1]-oy))
	for _, p := range pts[1:] {
		c.r.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	c.r.ClosePath()
	c.r.Draw(c.img, box, src, box.Min)
}

// boundless is the bounds of the gradient source images
var boundless = image.Rect(-1<<24, -1<<24, 1<<24, 1<<24)

// linearSource samples a linear gradient at device pixel centers
type linearSource struct {
	g     network.LinearGradient
	scale float64
}

func (linearSource) ColorModel() color.Model { return color.NRGBAModel }
func (linearSource) Bounds() image.Rectangle { return boundless }
func (l linearSource) At(x, y int) color.Color {
	return l.g.At((float64(x)+0.5)/l.scale, (float64(y)+0.5)/l.scale)
}

// radialSource samples a radial gradient at device pixel centers
type radialSource struct {
	g     network.RadialGradient
	scale float64
}

func (radialSource) ColorModel() color.Model { return color.NRGBAModel }
func (radialSource) Bounds() image.Rectangle { return boundless }
func (r radialSource) At(x, y int) color.Color {
	return r.g.AtPoint((float64(x)+0.5)/r.scale, (float64(y)+0.5)/r.scale)
}
