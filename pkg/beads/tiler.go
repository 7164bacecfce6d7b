package beads

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Executor runs a batch of independent tasks and returns when all of them
// have finished.
type Executor interface {
	ExecuteAll(work []func())
}

// Tiler drives a Rasterizer over every cell of the grid.
type Tiler struct {
	raster   *Rasterizer
	exec     Executor
	disjoint bool
	bead     func(Cell, Layers) error
}

// NewTiler creates a tiler for p. With a nil executor, or when beads of p
// overlap, beads are rasterized sequentially in row-major order.
func NewTiler(p Params, exec Executor) *Tiler {
	t := &Tiler{
		raster:   NewRasterizer(p),
		exec:     exec,
		disjoint: p.BeadsDisjoint(),
	}
	t.bead = t.raster.Bead
	return t
}

// Parallel reports whether Render dispatches beads to the executor.
func (t *Tiler) Parallel() bool {
	return t.exec != nil && t.disjoint
}

// Grid returns the layout being tiled.
func (t *Tiler) Grid() Grid {
	return t.raster.Grid()
}

// Render rasterizes a repeatX by repeatY repetition of the grid into
// layers, which must be sized Width*repeatX by Height*repeatY.
func (t *Tiler) Render(layers Layers, repeatX, repeatY int) error {
	if repeatX < 1 || repeatY < 1 {
		return fmt.Errorf("invalid repeat %dx%d", repeatX, repeatY)
	}
	g := t.Grid()
	if err := checkLayerSize(layers, g.Width*repeatX, g.Height*repeatY); err != nil {
		return err
	}

	cells := g.Cells(repeatX, repeatY)
	if !t.Parallel() {
		for _, c := range cells {
			if err := t.bead(c, layers); err != nil {
				return err
			}
		}
		return nil
	}
	return t.renderParallel(cells, layers)
}

// renderParallel submits one task per bead. Only used for disjoint beads,
// so tasks never write the same pixel. After the first failure the remaining
// tasks return immediately.
func (t *Tiler) renderParallel(cells []Cell, layers Layers) error {
	var (
		failed   atomic.Bool
		errOnce  sync.Once
		firstErr error
	)

	work := make([]func(), len(cells))
	for i, c := range cells {
		work[i] = func() {
			if failed.Load() {
				return
			}
			if err := t.bead(c, layers); err != nil {
				failed.Store(true)
				errOnce.Do(func() { firstErr = err })
			}
		}
	}

	t.exec.ExecuteAll(work)
	return firstErr
}

func checkLayerSize(layers Layers, width, height int) error {
	return layers.Each(func(name string, m *Map) error {
		if m.Width() != width || m.Height() != height {
			return fmt.Errorf("%w: %s is %dx%d, want %dx%d",
				ErrCanvasSizeMismatch, name, m.Width(), m.Height(), width, height)
		}
		return nil
	})
}
