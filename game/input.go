package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"particlenet/network"
)

// Input feeds cursor and keyboard state into the network once per tick
type Input struct {
	poller network.PointerPoller
}

// NewInput creates an input handler
func NewInput() *Input {
	return &Input{}
}

// Update samples the cursor; positions arrive in backing pixels and are converted
// to logical pixels
func (in *Input) Update(net *network.Network) {
	s := net.Surface()
	cx, cy := ebiten.CursorPosition()
	in.poller.Sample(net.Pointer(), s, float64(cx)/s.Ratio, float64(cy)/s.Ratio, ebiten.IsFocused())
}

// QuitRequested reports whether the user asked to close the background
func (in *Input) QuitRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
}

// ToggleFullscreenRequested reports a press of F11
func (in *Input) ToggleFullscreenRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF11)
}
