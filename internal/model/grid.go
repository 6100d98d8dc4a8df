package model

// occupancyGrid tracks which resolution-sized cells of the cargo space hold
// cargo. Cells live in one flat buffer indexed x-major, then y, then z, so
// height queries walk contiguous memory.
type occupancyGrid struct {
	nx, ny, nz int
	res        int
	cells      []uint8
}

func newOccupancyGrid(spec TrailerSpec) *occupancyGrid {
	g := &occupancyGrid{
		nx:  cellCount(spec.Length, spec.Resolution),
		ny:  cellCount(spec.Width, spec.Resolution),
		nz:  cellCount(spec.Height, spec.Resolution),
		res: spec.Resolution,
	}
	g.cells = make([]uint8, g.nx*g.ny*g.nz)
	return g
}

// cellCount returns the number of cells covering dim mm, rounding up so a
// trailing partial cell is still tracked.
func cellCount(dim, res int) int {
	return (dim + res - 1) / res
}

func (g *occupancyGrid) index(x, y, z int) int {
	return (x*g.ny+y)*g.nz + z
}

// cellRange converts a mm extent to the half-open cell range covering it,
// clipped to n cells.
func (g *occupancyGrid) cellRange(pos, dim, n int) (lo, hi int) {
	lo = pos / g.res
	hi = (pos + dim + g.res - 1) / g.res
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}

// mark fills every cell covered by the pallet's box.
func (g *occupancyGrid) mark(p *Pallet) {
	x0, x1 := g.cellRange(p.Position.X, p.PlacedLength(), g.nx)
	y0, y1 := g.cellRange(p.Position.Y, p.PlacedWidth(), g.ny)
	z0, z1 := g.cellRange(p.Position.Z, p.Height, g.nz)
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			for z := z0; z < z1; z++ {
				g.cells[g.index(x, y, z)] = 1
			}
		}
	}
}

func (g *occupancyGrid) clear() {
	for i := range g.cells {
		g.cells[i] = 0
	}
}

// columnTop returns the mm height just above the highest occupied cell in
// the (x, y) column, or 0 for a free column.
func (g *occupancyGrid) columnTop(x, y int) int {
	base := (x*g.ny + y) * g.nz
	for z := g.nz - 1; z >= 0; z-- {
		if g.cells[base+z] != 0 {
			return (z + 1) * g.res
		}
	}
	return 0
}
