package optics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ExposureGrid records which cells of the canvas any traced light has passed through.
//
// Cells only ever go from dark to lit; Reset is the one way back. An ExposureGrid is not safe
// for concurrent use.
type ExposureGrid struct {
	CellSize   float64
	Cols, Rows int

	cells []bool
	lit   int
}

// NewExposureGrid covers a width x height canvas with square cells
func NewExposureGrid(width, height, cellSize float64) *ExposureGrid {
	var cols, rows int
	if cellSize > 0 {
		cols = max(0, int(math.Ceil(width/cellSize)))
		rows = max(0, int(math.Ceil(height/cellSize)))
	}
	return &ExposureGrid{
		CellSize: cellSize,
		Cols:     cols,
		Rows:     rows,
		cells:    make([]bool, cols*rows),
	}
}

// Lit reports whether a cell has been touched. Cells outside the grid are never lit.
func (g *ExposureGrid) Lit(col, row int) bool {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return false
	}
	return g.cells[row*g.Cols+col]
}

// CellCenter is the canvas position at the middle of a cell
func (g *ExposureGrid) CellCenter(col, row int) r2.Vec {
	return V((float64(col)+0.5)*g.CellSize, (float64(row)+0.5)*g.CellSize)
}

// Mark lights every cell whose center lies within half a cell diagonal of the segment.
// Segments with non-finite endpoints are skipped.
func (g *ExposureGrid) Mark(seg Segment) {
	if !seg.Finite() || len(g.cells) == 0 {
		return
	}
	radius := g.CellSize * math.Sqrt2 / 2

	box := BoundingBox([]r2.Vec{seg.Start, seg.End})
	c0 := g.cellIndex(box.Min.X-radius, g.Cols)
	c1 := g.cellIndex(box.Max.X+radius, g.Cols)
	r0 := g.cellIndex(box.Min.Y-radius, g.Rows)
	r1 := g.cellIndex(box.Max.Y+radius, g.Rows)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			i := row*g.Cols + col
			if g.cells[i] {
				continue
			}
			if distanceToSegment(g.CellCenter(col, row), seg.Start, seg.End) <= radius {
				g.cells[i] = true
				g.lit++
			}
		}
	}
}

// MarkAll marks every segment in turn
func (g *ExposureGrid) MarkAll(segments []Segment) {
	for _, seg := range segments {
		g.Mark(seg)
	}
}

func (g *ExposureGrid) LitCount() int {
	return g.lit
}

// Coverage is the fraction of cells lit
func (g *ExposureGrid) Coverage() float64 {
	if len(g.cells) == 0 {
		return 0
	}
	return float64(g.lit) / float64(len(g.cells))
}

// Reset darkens every cell, for when the scene is regenerated
func (g *ExposureGrid) Reset() {
	for i := range g.cells {
		g.cells[i] = false
	}
	g.lit = 0
}

// cellIndex is the cell holding coordinate x along an axis of n cells, clamped to the grid.
// Clamping happens before the conversion so far-off coordinates cannot overflow int.
func (g *ExposureGrid) cellIndex(x float64, n int) int {
	return int(math.Max(0, math.Min(float64(n-1), math.Floor(x/g.CellSize))))
}
