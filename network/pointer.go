package network

// Pointer tracks the last known pointer position and whether it is over the viewport.
// It is not safe for concurrent use; input and frames run on the same goroutine.
type Pointer struct {
	X, Y   float64
	Active bool
}

// Move records a pointer-move event
func (p *Pointer) Move(x, y float64) {
	p.X = x
	p.Y = y
	p.Active = true
}

// Leave records a pointer-leave event; the position is kept
func (p *Pointer) Leave() {
	p.Active = false
}
