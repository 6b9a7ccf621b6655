// Package pulse animates the glowing shadow of the call-to-action button.
package pulse

import (
	"image/color"
	"math"
	"time"

	"particlenet/network"
)

// Shadow is a drop shadow below an element
type Shadow struct {
	OffsetX, OffsetY float64
	Blur             float64
	Color            color.NRGBA
}

// Pulse loops between two shadows, reversing direction every cycle
type Pulse struct {
	From, To Shadow
	Period   time.Duration
}

// Default returns the download button pulse: a dark resting shadow swelling into a
// wide violet glow over 1.6s, then back
func Default() Pulse {
	return Pulse{
		From:   Shadow{OffsetY: 10, Blur: 30, Color: color.NRGBA{R: 11, G: 13, B: 22, A: 153}},
		To:     Shadow{OffsetY: 22, Blur: 80, Color: color.NRGBA{R: 123, G: 92, B: 255, A: 71}},
		Period: 1600 * time.Millisecond,
	}
}

// Progress returns the position in [0, 1] between From and To after elapsed
func (p Pulse) Progress(elapsed time.Duration) float64 {
	if elapsed <= 0 || p.Period <= 0 {
		return 0
	}
	cycle := elapsed / p.Period
	t := float64(elapsed%p.Period) / float64(p.Period)
	if cycle%2 == 1 {
		t = 1 - t
	}
	return t
}

// At returns the shadow after elapsed
func (p Pulse) At(elapsed time.Duration) Shadow {
	t := p.Progress(elapsed)
	lerp := func(a, b float64) float64 { return a + (b-a)*t }
	return Shadow{
		OffsetX: lerp(p.From.OffsetX, p.To.OffsetX),
		OffsetY: lerp(p.From.OffsetY, p.To.OffsetY),
		Blur:    lerp(p.From.Blur, p.To.Blur),
		Color:   network.Lerp(p.From.Color, p.To.Color, t),
	}
}

// Layers approximates the blurred shadow of a w×h box at (x, y) as n concentric
// rectangles, largest first, whose alphas add up to the shadow alpha
func (s Shadow) Layers(x, y, w, h float64, n int) []Layer {
	if n <= 0 {
		return nil
	}
	layers := make([]Layer, 0, n)
	alpha := float64(s.Color.A) / 255
	// straight alpha per layer so that n stacked layers reach the shadow alpha at the core
	per := 1 - math.Pow(1-alpha, 1/float64(n))
	for i := 0; i < n; i++ {
		grow := s.Blur / 2 * float64(n-i) / float64(n)
		layers = append(layers, Layer{
			X:     x + s.OffsetX - grow,
			Y:     y + s.OffsetY - grow,
			W:     w + 2*grow,
			H:     h + 2*grow,
			Color: network.WithAlpha(s.Color, per),
		})
	}
	return layers
}

// Layer is one rectangle of an approximated shadow
type Layer struct {
	X, Y, W, H float64
	Color      color.NRGBA
}
