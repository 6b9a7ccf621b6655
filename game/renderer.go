package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"particlenet/network"
)

var (
	whiteImage = ebiten.NewImage(3, 3)

	// whiteSubImage is an internal sub image of whiteImage; sampling its edges would bleed
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Renderer draws a network onto the ebiten screen. Coordinates arrive in logical
// pixels and are scaled by the surface ratio to the backing store.
type Renderer struct {
	screen *ebiten.Image
	scale  float64

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewRenderer creates a renderer; call Begin before every frame
func NewRenderer() *Renderer {
	return &Renderer{scale: 1}
}

// Begin sets the image the next frame is drawn onto
func (r *Renderer) Begin(screen *ebiten.Image) {
	r.screen = screen
}

// Reset adopts the surface's pixel ratio
func (r *Renderer) Reset(s network.Surface) {
	r.scale = s.Ratio
}

// Clear fills the screen with transparent black
func (r *Renderer) Clear() {
	if r.screen == nil {
		return
	}
	r.screen.Clear()
}

// FillRect draws a quad whose corner colors come from the gradient; the gradient is
// linear so per-vertex interpolation reproduces it inside the axis segment
func (r *Renderer) FillRect(x, y, w, h float64, g network.LinearGradient) {
	if r.screen == nil || w <= 0 || h <= 0 {
		return
	}
	r.vertices = r.vertices[:0]
	r.indices = append(r.indices[:0], 0, 1, 2, 1, 3, 2)
	for _, c := range [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
		r.vertices = append(r.vertices, r.vertex(c[0], c[1], g.At(c[0], c[1])))
	}
	r.draw()
}

// StrokeLine draws an anti-aliased segment
func (r *Renderer) StrokeLine(x0, y0, x1, y1, width float64, clr color.NRGBA) {
	if r.screen == nil {
		return
	}
	s := r.scale
	vector.StrokeLine(r.screen, float32(x0*s), float32(y0*s), float32(x1*s), float32(y1*s), float32(width*s), clr, true)
}

// FillCircle draws a triangle fan shaded from the gradient at the center to the
// gradient at the rim
func (r *Renderer) FillCircle(cx, cy, rad float64, g network.RadialGradient) {
	if r.screen == nil || rad <= 0 {
		return
	}
	segments := max(24, int(math.Ceil(rad*r.scale*4)))
	r.vertices = append(r.vertices[:0], r.vertex(cx, cy, g.AtPoint(cx, cy)))
	r.indices = r.indices[:0]
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x, y := cx+math.Cos(a)*rad, cy+math.Sin(a)*rad
		r.vertices = append(r.vertices, r.vertex(x, y, g.AtPoint(x, y)))
		next := uint16(i+1)%uint16(segments) + 1
		r.indices = append(r.indices, 0, uint16(i+1), next)
	}
	r.draw()
}

func (r *Renderer) vertex(x, y float64, c color.NRGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x * r.scale),
		DstY:   float32(y * r.scale),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 0xff,
		ColorG: float32(c.G) / 0xff,
		ColorB: float32(c.B) / 0xff,
		ColorA: float32(c.A) / 0xff,
	}
}

func (r *Renderer) draw() {
	op := &ebiten.DrawTrianglesOptions{
		// vertex colors are straight alpha, as produced by the gradients
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		AntiAlias:      true,
	}
	r.screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, op)
}
