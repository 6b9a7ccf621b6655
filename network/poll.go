package network

// PointerPoller turns periodic cursor samples into move and leave events, for hosts
// that expose the current cursor position instead of delivering events
type PointerPoller struct {
	lastX, lastY float64
	seen         bool
	inside       bool
}

// Sample feeds one cursor observation in logical coordinates. A leave is emitted
// when the cursor exits the surface or the window loses focus; a move when it enters
// or changes position. The very first sample only establishes the baseline.
func (pp *PointerPoller) Sample(p *Pointer, s Surface, x, y float64, focused bool) {
	inside := focused && x >= 0 && y >= 0 && x <= s.Width && y <= s.Height
	if !inside {
		if pp.inside {
			p.Leave()
		}
		pp.seen = true
		pp.inside = false
		return
	}

	moved := pp.seen && (!pp.inside || x != pp.lastX || y != pp.lastY)
	pp.seen = true
	pp.inside = true
	pp.lastX, pp.lastY = x, y
	if moved {
		p.Move(x, y)
	}
}
