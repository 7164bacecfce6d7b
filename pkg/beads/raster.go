package beads

import (
	"fmt"

	bmath "github.com/Faultbox/beadforge/pkg/math"
)

// Rasterizer draws single beads into a set of layers.
type Rasterizer struct {
	params    Params
	grid      Grid
	roughness uint8
}

// NewRasterizer creates a rasterizer for p. p must be valid.
func NewRasterizer(p Params) *Rasterizer {
	return &Rasterizer{
		params:    p,
		grid:      NewGrid(p),
		roughness: RatioToByte(p.Roughness),
	}
}

// Grid returns the layout the rasterizer was built for.
func (r *Rasterizer) Grid() Grid {
	return r.grid
}

// Bead rasterizes the bead of cell c. Every pixel of the bead's bounding
// square that lies on the canvas and strictly inside the annulus is written
// to each enabled layer; all other pixels are left untouched. Layers may be
// nil; all non-nil layers must have the same size.
func (r *Rasterizer) Bead(c Cell, layers Layers) error {
	width, height, ok := layerSize(layers)
	if !ok {
		return nil
	}

	cRow, cCol := r.grid.Center(c, r.params)
	center := bmath.Vec2{X: float64(cRow), Y: float64(cCol)}

	for i := range r.grid.BoundBox {
		for j := range r.grid.BoundBox {
			row := c.BaseRow + i
			col := c.BaseCol + j
			if row < 0 || col < 0 || row >= height || col >= width {
				continue
			}

			dist := center.Distance(bmath.Vec2{X: float64(row), Y: float64(col)})
			if !r.params.InAnnulus(dist) {
				continue
			}

			t := r.params.ThicknessRatio(dist)
			// The column axis is negated so angles turn the same way as in
			// a y-up frame.
			dir := bmath.Vec2{X: float64(cCol - col), Y: float64(row - cRow)}.Normalize()
			s := r.params.Shade(t, dir.Angle())

			if err := r.write(row, col, s, layers); err != nil {
				return fmt.Errorf("bead (%d, %d) pixel (%d, %d): %w", c.Row, c.Col, row, col, err)
			}
		}
	}
	return nil
}

func (r *Rasterizer) write(row, col int, s Sample, layers Layers) error {
	if layers.Normal != nil {
		rgb, err := EncodeNormal(s.Normal)
		if err != nil {
			return err
		}
		layers.Normal.Set(row, col, rgb.B, rgb.G, rgb.R)
	}
	if layers.ORD != nil {
		layers.ORD.Set(row, col, s.Displacement, r.roughness, s.Occlusion)
	}
	if layers.Mask != nil {
		layers.Mask.Set(row, col, 255, 255, 255)
	}
	return nil
}

// layerSize returns the common size of the enabled layers.
func layerSize(layers Layers) (width, height int, ok bool) {
	for _, m := range []*Map{layers.Normal, layers.Mask, layers.ORD} {
		if m != nil {
			return m.Width(), m.Height(), true
		}
	}
	return 0, 0, false
}
