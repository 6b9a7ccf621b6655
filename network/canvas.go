package network

import (
	"image/color"
	"math"
)

// Canvas is a 2D drawing surface addressed in logical coordinates.
// Implementations scale by the surface ratio passed to Reset.
type Canvas interface {
	// Reset resizes the backing store for s and drops all accumulated drawing state
	Reset(s Surface)

	// Clear makes the whole surface transparent
	Clear()

	// FillRect fills a rectangle with a linear gradient
	FillRect(x, y, w, h float64, g LinearGradient)

	// StrokeLine draws a straight line segment
	StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA)

	// FillCircle fills a disc of radius r, shaded by g
	FillCircle(cx, cy, r float64, g RadialGradient)
}

// LinearGradient interpolates between two colors along the segment (X0,Y0)-(X1,Y1)
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	From, To       color.NRGBA
}

// Solid returns a gradient that paints a single color
func Solid(clr color.NRGBA) LinearGradient {
	return LinearGradient{X1: 1, From: clr, To: clr}
}

// At returns the gradient color at a point, projecting onto the gradient axis
func (g LinearGradient) At(x, y float64) color.NRGBA {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return g.From
	}
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / l2
	return Lerp(g.From, g.To, t)
}

// RadialGradient interpolates from Inner at the center (CX,CY) to Outer at radius R
type RadialGradient struct {
	CX, CY, R    float64
	Inner, Outer color.NRGBA
}

// At returns the gradient color at distance d from the center
func (g RadialGradient) At(d float64) color.NRGBA {
	if g.R <= 0 {
		return g.Outer
	}
	return Lerp(g.Inner, g.Outer, d/g.R)
}

// AtPoint returns the gradient color at a point
func (g RadialGradient) AtPoint(x, y float64) color.NRGBA {
	return g.At(math.Hypot(x-g.CX, y-g.CY))
}

// Lerp interpolates two non-premultiplied colors, t is clamped to [0, 1]
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	t = max(0, min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
