package network

import "math"

// Cell is one bucket of the spatial grid, holding particle indices
type Cell struct {
	// Indices of the particles in this cell (preallocated slice)
	Indices []int

	// Current count of indices in use
	Count int
}

// NewCell creates a cell with preallocated index storage
func NewCell(initialCapacity int) *Cell {
	return &Cell{
		Indices: make([]int, 0, initialCapacity),
	}
}

// Add appends a particle index
func (c *Cell) Add(i int) {
	if c.Count < len(c.Indices) {
		c.Indices[c.Count] = i
	} else {
		c.Indices = append(c.Indices, i)
	}
	c.Count++
}

// Get returns the indices in use
func (c *Cell) Get() []int {
	return c.Indices[:c.Count]
}

// Clear empties the cell but keeps its capacity
func (c *Cell) Clear() {
	c.Count = 0
}

// Grid buckets particles into square cells of CellSize so that every pair closer
// than CellSize lies in the same or a neighboring cell
type Grid struct {
	// CellSize is the side of a cell in logical pixels
	CellSize float64

	// MinX, MinY is the logical coordinate of the grid origin
	MinX, MinY float64

	// Cells[x][y]
	Cells [][]*Cell

	cols, rows int
}

// NewGrid creates an empty grid; call Rebuild before searching
func NewGrid(cellSize float64) *Grid {
	return &Grid{CellSize: cellSize}
}

// half of the neighborhood; the other half is visited from the neighbor's side
var neighborOffsets = [...][2]int{{1, 0}, {-1, 1}, {0, 1}, {1, 1}}

// Rebuild sizes the grid for the wrap region of s and buckets ps into it
func (g *Grid) Rebuild(ps []Particle, s Surface, margin float64) {
	g.MinX, g.MinY = -margin, -margin
	cols := max(1, int(math.Ceil((s.Width+2*margin)/g.CellSize))+1)
	rows := max(1, int(math.Ceil((s.Height+2*margin)/g.CellSize))+1)

	if cols != g.cols || rows != g.rows {
		g.cols, g.rows = cols, rows
		g.Cells = make([][]*Cell, cols)
		for x := 0; x < cols; x++ {
			g.Cells[x] = make([]*Cell, rows)
			for y := 0; y < rows; y++ {
				g.Cells[x][y] = NewCell(8)
			}
		}
	} else {
		for x := range g.Cells {
			for _, c := range g.Cells[x] {
				c.Clear()
			}
		}
	}

	for i := range ps {
		cx, cy := g.CellOf(ps[i].X, ps[i].Y)
		g.Cells[cx][cy].Add(i)
	}
}

// CellOf converts a logical position to clamped cell coordinates
func (g *Grid) CellOf(x, y float64) (int, int) {
	cx := int(math.Floor((x - g.MinX) / g.CellSize))
	cy := int(math.Floor((y - g.MinY) / g.CellSize))
	cx = max(0, min(cx, g.cols-1))
	cy = max(0, min(cy, g.rows-1))
	return cx, cy
}

// ForEachPair calls fn for every unordered pair (i < j) closer than maxDist.
// maxDist must not exceed CellSize.
func (g *Grid) ForEachPair(ps []Particle, maxDist float64, fn func(i, j int, d float64)) {
	visit := func(a, b int) {
		if d := distance(ps[a], ps[b]); d < maxDist {
			if a > b {
				a, b = b, a
			}
			fn(a, b, d)
		}
	}

	for x := 0; x < g.cols; x++ {
		for y := 0; y < g.rows; y++ {
			own := g.Cells[x][y].Get()
			for ai, a := range own {
				for _, b := range own[ai+1:] {
					visit(a, b)
				}
			}
			for _, off := range neighborOffsets {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || nx >= g.cols || ny >= g.rows {
					continue
				}
				for _, a := range own {
					for _, b := range g.Cells[nx][ny].Get() {
						visit(a, b)
					}
				}
			}
		}
	}
}

// ForEachPairBrute is the O(n²) reference search
func ForEachPairBrute(ps []Particle, maxDist float64, fn func(i, j int, d float64)) {
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if d := distance(ps[i], ps[j]); d < maxDist {
				fn(i, j, d)
			}
		}
	}
}

func distance(p, q Particle) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}
