package game

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"particlenet/network"
	"particlenet/pulse"
)

const (
	ctaWidth       = 180.0
	ctaHeight      = 48.0
	ctaShadowSteps = 12
)

// CTA draws the download button with its pulsing shadow
type CTA struct {
	label string
	pulse pulse.Pulse
	face  text.Face
	from  color.NRGBA
	to    color.NRGBA
}

// NewCTA creates a button painted with the network's two colors
func NewCTA(label string, cfg network.Config) *CTA {
	return &CTA{
		label: label,
		pulse: pulse.Default(),
		face:  text.NewGoXFace(basicfont.Face7x13),
		from:  cfg.ColorA,
		to:    cfg.ColorB,
	}
}

// Bounds returns the button rectangle in logical pixels for a surface
func (c *CTA) Bounds(s network.Surface) (x, y, w, h float64) {
	return (s.Width - ctaWidth) / 2, s.Height*0.72 - ctaHeight/2, ctaWidth, ctaHeight
}

// Draw paints the button after elapsed time since start
func (c *CTA) Draw(screen *ebiten.Image, r *Renderer, s network.Surface, elapsed time.Duration) {
	x, y, w, h := c.Bounds(s)
	k := s.Ratio

	for _, l := range c.pulse.At(elapsed).Layers(x, y, w, h, ctaShadowSteps) {
		vector.DrawFilledRect(screen, float32(l.X*k), float32(l.Y*k), float32(l.W*k), float32(l.H*k), l.Color, true)
	}

	r.FillRect(x, y, w, h, network.LinearGradient{X0: x, Y0: y, X1: x + w, Y1: y + h, From: c.from, To: c.to})

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	// basicfont is tiny; scale it up with the button
	op.GeoM.Scale(2*k, 2*k)
	op.GeoM.Translate((x+w/2)*k, (y+h/2)*k)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, c.label, c.face, op)
}
