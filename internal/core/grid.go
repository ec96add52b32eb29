package core

// FloatGrid stores a 2D grid of float32 cell values in row-major order.
type FloatGrid struct {
	W, H int
	data []float32
}

// NewFloatGrid allocates a zeroed grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float32, w*h)}
}

// Values exposes the backing slice so callers can read/write cells directly.
func (g *FloatGrid) Values() []float32 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// Clear fills the grid with zeros.
func (g *FloatGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// CopyFrom copies the cell values of src, which must share dimensions.
func (g *FloatGrid) CopyFrom(src *FloatGrid) {
	copy(g.data, src.data)
}

// Sum returns the total of all cell values, accumulated in float64 so
// large grids do not lose precision to sequential float32 rounding.
func (g *FloatGrid) Sum() float64 {
	var total float64
	for _, v := range g.data {
		total += float64(v)
	}
	return total
}

// Scale multiplies every cell by s.
func (g *FloatGrid) Scale(s float32) {
	for i := range g.data {
		g.data[i] *= s
	}
}
