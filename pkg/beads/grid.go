package beads

import "math"

// Grid is the staggered bead layout derived from Params.
//
// Rows are spaced Pitch apart and columns BoundBox apart; even rows are
// shifted back by half a BoundBox. Width is a whole number of columns and
// BeadsHeight is even, so the stagger closes when the canvas is repeated.
type Grid struct {
	BoundBox    int     // side of a bead's bounding square
	TubeRadius  float64 // radius of the tube cross-section
	Pitch       int     // distance between row origins
	Width       int     // canvas columns
	Height      int     // canvas rows
	BeadsWidth  int     // beads per row
	BeadsHeight int     // bead rows, always even
}

// NewGrid derives the canvas layout for p. p is assumed valid.
func NewGrid(p Params) Grid {
	boundBox := 2 * (p.OuterRadius + p.Padding)
	pitch := RowPitch(p.OuterRadius, p.Padding)

	width := boundBox * p.BeadsWidth
	beadsHeight := width / pitch
	if beadsHeight%2 == 1 {
		beadsHeight++
	}

	return Grid{
		BoundBox:    boundBox,
		TubeRadius:  p.tubeWidth() / 2,
		Pitch:       pitch,
		Width:       width,
		Height:      beadsHeight * pitch,
		BeadsWidth:  p.BeadsWidth,
		BeadsHeight: beadsHeight,
	}
}

// RowPitch returns the row spacing that makes beads in adjacent rows touch
// under 60 degree packing.
func RowPitch(outerRadius, padding int) int {
	r := float64(outerRadius)
	pad := float64(padding)
	return int(math.RoundToEven(math.Sqrt(3*r*r + 3*r*pad + 3*pad*pad)))
}

// BeadsDisjoint reports whether no two beads of the layout can cover the
// same pixel. Centers in one row are 2*(OuterRadius+Padding) apart, rows two
// apart are 2*Pitch apart and adjacent rows are Pitch down and half a
// bounding box across. Each must be at least 2*OuterRadius. Without padding
// the rounded pitch can fall short of that.
func (p Params) BeadsDisjoint() bool {
	pitch := RowPitch(p.OuterRadius, p.Padding)
	across := p.OuterRadius + p.Padding
	minDist := 2 * p.OuterRadius
	return pitch >= p.OuterRadius && pitch*pitch+across*across >= minDist*minDist
}

// Cell is one bead instance: the top-left corner of its bounding square in
// canvas space and its grid indices.
type Cell struct {
	Row, Col int // grid indices
	BaseRow  int
	BaseCol  int
}

// Cells enumerates the bead instances covering a canvas of repeatX by
// repeatY grids. Rows run 0..BeadsHeight*repeatY and columns
// 0..BeadsWidth*repeatX, both inclusive; the extra row and column are the
// overscan that completes beads clipped at the right and bottom edges.
func (g Grid) Cells(repeatX, repeatY int) []Cell {
	rows := g.BeadsHeight*repeatY + 1
	cols := g.BeadsWidth*repeatX + 1

	cells := make([]Cell, 0, rows*cols)
	for i := range rows {
		for j := range cols {
			baseCol := j * g.BoundBox
			if i%2 == 0 {
				baseCol -= g.BoundBox / 2
			}
			cells = append(cells, Cell{
				Row:     i,
				Col:     j,
				BaseRow: i*g.Pitch - g.Pitch/2,
				BaseCol: baseCol,
			})
		}
	}
	return cells
}

// Center returns the bead center for a cell.
func (g Grid) Center(c Cell, p Params) (row, col int) {
	off := g.BoundBox/2 + p.Padding
	return c.BaseRow + off, c.BaseCol + off
}
