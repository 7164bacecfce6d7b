package beads

import (
	"errors"
	"sync"
	"testing"
)

// goExecutor runs every task on its own goroutine.
type goExecutor struct{}

func (goExecutor) ExecuteAll(work []func()) {
	var wg sync.WaitGroup
	wg.Add(len(work))
	for _, fn := range work {
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	wg.Wait()
}

func renderLayers(t *testing.T, p Params, exec Executor, repeatX, repeatY int) Layers {
	t.Helper()
	tiler := NewTiler(p, exec)
	g := tiler.Grid()
	layers := NewLayers(AllLayers(), g.Width*repeatX, g.Height*repeatY, p)
	if err := tiler.Render(layers, repeatX, repeatY); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return layers
}

func TestRenderSeamless(t *testing.T) {
	p := smallParams()
	single := renderLayers(t, p, nil, 1, 1)
	double := renderLayers(t, p, nil, 2, 2)
	g := NewGrid(p)

	for _, q := range []struct{ row, col int }{
		{0, 0}, {0, g.Width}, {g.Height, 0}, {g.Height, g.Width},
	} {
		crop := double.Normal.Crop(q.row, q.col, g.Width, g.Height)
		if !crop.Equal(single.Normal) {
			t.Errorf("normal map quadrant at (%d,%d) differs from a single tile", q.row, q.col)
		}
		if !double.Mask.Crop(q.row, q.col, g.Width, g.Height).Equal(single.Mask) {
			t.Errorf("mask quadrant at (%d,%d) differs from a single tile", q.row, q.col)
		}
		if !double.ORD.Crop(q.row, q.col, g.Width, g.Height).Equal(single.ORD) {
			t.Errorf("ORD quadrant at (%d,%d) differs from a single tile", q.row, q.col)
		}
	}
}

func TestRenderSeamAcrossEdges(t *testing.T) {
	p := smallParams()
	layers := renderLayers(t, p, nil, 1, 1)
	g := NewGrid(p)

	// In a 2x1 render the columns on both sides of the seam match the
	// single tile's last and first columns.
	wide := NewTiler(p, nil)
	w := NewLayers(LayerSet{Mask: true}, g.Width*2, g.Height, p)
	if err := wide.Render(w, 2, 1); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for row := range g.Height {
		if w.Mask.Triple(row, g.Width) != layers.Mask.Triple(row, 0) {
			t.Fatalf("row %d: seam column differs from tile's first column", row)
		}
		if w.Mask.Triple(row, g.Width-1) != layers.Mask.Triple(row, g.Width-1) {
			t.Fatalf("row %d: column before the seam differs", row)
		}
	}
}

func TestRenderParallelMatchesSequential(t *testing.T) {
	p := smallParams()
	p.BeadsWidth = 5
	seq := renderLayers(t, p, nil, 1, 1)
	par := renderLayers(t, p, goExecutor{}, 1, 1)

	if !seq.Normal.Equal(par.Normal) || !seq.Mask.Equal(par.Mask) || !seq.ORD.Equal(par.ORD) {
		t.Error("expected parallel render to match sequential render")
	}
}

// countingExecutor runs tasks in order on the calling goroutine.
type countingExecutor struct {
	batches int
}

func (e *countingExecutor) ExecuteAll(work []func()) {
	e.batches++
	for _, fn := range work {
		fn()
	}
}

func TestRenderOverlappingBeadsSequential(t *testing.T) {
	p := DefaultParams()
	p.InnerRadius = 2
	p.OuterRadius = 6
	p.Padding = 0
	p.BeadsWidth = 3

	exec := &countingExecutor{}
	tiler := NewTiler(p, exec)
	if tiler.Parallel() {
		t.Fatal("expected overlapping beads to disable parallel rendering")
	}
	par := renderLayers(t, p, exec, 1, 1)
	if exec.batches != 0 {
		t.Errorf("expected executor to be bypassed, got %d batches", exec.batches)
	}

	seq := renderLayers(t, p, nil, 1, 1)
	if !seq.Normal.Equal(par.Normal) || !seq.ORD.Equal(par.ORD) {
		t.Error("expected fallback render to match sequential render")
	}

	if !NewTiler(smallParams(), exec).Parallel() {
		t.Error("expected padded beads to render in parallel")
	}
}

func TestRenderStopsAtFirstError(t *testing.T) {
	errBead := errors.New("bead failed")
	p := smallParams()

	tests := []struct {
		name    string
		exec    Executor
		ordered bool
	}{
		{"sequential", nil, true},
		{"executor", &countingExecutor{}, true},
		{"goroutines", goExecutor{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiler := NewTiler(p, tt.exec)
			var (
				mu    sync.Mutex
				calls int
			)
			tiler.bead = func(c Cell, _ Layers) error {
				mu.Lock()
				defer mu.Unlock()
				calls++
				if c.Row == 1 && c.Col == 1 {
					return errBead
				}
				return nil
			}

			g := tiler.Grid()
			layers := NewLayers(AllLayers(), g.Width, g.Height, p)
			err := tiler.Render(layers, 1, 1)
			if !errors.Is(err, errBead) {
				t.Fatalf("expected bead error, got %v", err)
			}

			if !tt.ordered {
				return
			}
			// Row 1, column 1 is the second cell of the second row.
			failAt := g.BeadsWidth + 1 + 1
			if calls != failAt+1 {
				t.Errorf("expected %d bead calls before abort, got %d", failAt+1, calls)
			}
		})
	}
}

func TestRenderSizeMismatch(t *testing.T) {
	p := smallParams()
	tiler := NewTiler(p, nil)
	layers := NewLayers(AllLayers(), 10, 10, p)

	err := tiler.Render(layers, 1, 1)
	if !errors.Is(err, ErrCanvasSizeMismatch) {
		t.Errorf("expected ErrCanvasSizeMismatch, got %v", err)
	}
	if err := tiler.Render(layers, 0, 1); err == nil {
		t.Error("expected error for zero repeat")
	}
}

func TestRenderDefaultScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size render")
	}
	p := DefaultParams()
	layers := renderLayers(t, p, goExecutor{}, 1, 1)

	background := FlatNormal().BGR()
	white := [3]uint8{255, 255, 255}
	covered := 0
	for row := range layers.Mask.Height() {
		for col := range layers.Mask.Width() {
			mask := layers.Mask.Triple(row, col)
			switch mask {
			case white:
				covered++
				if got := layers.ORD.Triple(row, col)[1]; got != 127 {
					t.Fatalf("pixel (%d,%d): expected roughness 127, got %d", row, col, got)
				}
			case [3]uint8{}:
				if got := layers.Normal.Triple(row, col); got != background {
					t.Fatalf("pixel (%d,%d): expected background normal, got %v", row, col, got)
				}
				if got := layers.ORD.Triple(row, col); got != [3]uint8{0, 255, 0} {
					t.Fatalf("pixel (%d,%d): expected background ORD, got %v", row, col, got)
				}
			default:
				t.Fatalf("pixel (%d,%d): unexpected mask value %v", row, col, mask)
			}
		}
	}
	if covered == 0 {
		t.Error("expected at least one covered pixel")
	}
}
