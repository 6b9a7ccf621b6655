package network

import "math"

// Surface describes the drawing area in logical pixels and its device pixel ratio
type Surface struct {
	Width  float64
	Height float64
	Ratio  float64
}

// NewSurface builds a surface; ratios below 1 (or unknown) are treated as 1
func NewSurface(width, height, ratio float64) Surface {
	if !(ratio >= 1) {
		ratio = 1
	}
	return Surface{
		Width:  max(0, width),
		Height: max(0, height),
		Ratio:  ratio,
	}
}

// BackingSize returns the physical pixel dimensions of the backing store
func (s Surface) BackingSize() (int, int) {
	return int(math.Floor(s.Width * s.Ratio)), int(math.Floor(s.Height * s.Ratio))
}

// Center returns the logical center of the surface
func (s Surface) Center() (float64, float64) {
	return s.Width / 2, s.Height / 2
}

// Area returns the logical area
func (s Surface) Area() float64 {
	return s.Width * s.Height
}
