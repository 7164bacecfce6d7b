package beads

import (
	"testing"
)

func newSquareLayers(p Params, size int) Layers {
	return NewLayers(AllLayers(), size, size, p)
}

func TestBeadDistanceBoundaries(t *testing.T) {
	p := smallParams()
	r := NewRasterizer(p)
	size := r.Grid().BoundBox
	layers := newSquareLayers(p, size)

	if err := r.Bead(Cell{}, layers); err != nil {
		t.Fatalf("Bead failed: %v", err)
	}

	// Center is (16, 16); radii are 4 and 12.
	background := []struct{ row, col int }{
		{16, 16 - 12}, // exactly on the outer radius
		{16, 16 - 4},  // exactly on the inner radius
		{16, 16},      // center
		{16 - 4, 16},  // inner radius, vertical
		{0, 0},        // corner of the bounding square
	}
	for _, px := range background {
		if got := layers.Mask.Triple(px.row, px.col); got != [3]uint8{} {
			t.Errorf("pixel %v: expected black mask, got %v", px, got)
		}
		if got := layers.Normal.Triple(px.row, px.col); got != FlatNormal().BGR() {
			t.Errorf("pixel %v: expected background normal, got %v", px, got)
		}
		if got := layers.ORD.Triple(px.row, px.col); got != [3]uint8{0, 255, 0} {
			t.Errorf("pixel %v: expected background ORD, got %v", px, got)
		}
	}

	covered := []struct{ row, col int }{
		{16, 16 - 11},
		{16, 16 - 5},
		{16 + 8, 16},
	}
	for _, px := range covered {
		if got := layers.Mask.Triple(px.row, px.col); got != [3]uint8{255, 255, 255} {
			t.Errorf("pixel %v: expected white mask, got %v", px, got)
		}
	}
}

func TestBeadPixelValues(t *testing.T) {
	p := smallParams()
	r := NewRasterizer(p)
	layers := newSquareLayers(p, r.Grid().BoundBox)

	if err := r.Bead(Cell{}, layers); err != nil {
		t.Fatalf("Bead failed: %v", err)
	}

	// Five pixels left of the center: t = 0.125, direction angle 0.
	row, col := 16, 11
	if got := layers.ORD.Triple(row, col); got != [3]uint8{168, 127, 0} {
		t.Errorf("expected ORD (168,127,0), got %v", got)
	}
	if got := layers.Normal.Triple(row, col); got != [3]uint8{176, 128, 245} {
		t.Errorf("expected BGR normal (176,128,245), got %v", got)
	}

	// Eight pixels left: t = 0.5, on the outer edge of the flat cap.
	if got := layers.ORD.Triple(16, 8); got != [3]uint8{255, 127, 255} {
		t.Errorf("expected ORD (255,127,255) at tube center, got %v", got)
	}
}

func TestBeadNormalRotatesWithDirection(t *testing.T) {
	p := smallParams()
	r := NewRasterizer(p)
	layers := newSquareLayers(p, r.Grid().BoundBox)
	if err := r.Bead(Cell{}, layers); err != nil {
		t.Fatalf("Bead failed: %v", err)
	}

	left := layers.Normal.Triple(16, 11)
	right := layers.Normal.Triple(16, 21)
	// Mirrored across the center the horizontal component flips.
	if left[2] <= 128 || right[2] >= 128 {
		t.Errorf("expected red channel on opposite sides of 128, got left %v right %v", left, right)
	}
	if left[0] != right[0] {
		t.Errorf("expected equal blue channel at equal thickness, got %d and %d", left[0], right[0])
	}
}

func TestBeadClipsToCanvas(t *testing.T) {
	p := smallParams()
	r := NewRasterizer(p)
	layers := newSquareLayers(p, 10)

	c := Cell{BaseRow: -20, BaseCol: -20}
	if err := r.Bead(c, layers); err != nil {
		t.Fatalf("Bead failed: %v", err)
	}
	// Center is (-4, -4); pixel (0, 0) is at distance sqrt(32), inside.
	if got := layers.Mask.Triple(0, 0); got != [3]uint8{255, 255, 255} {
		t.Errorf("expected clipped bead to cover (0,0), got %v", got)
	}
}

func TestBeadPartialLayers(t *testing.T) {
	p := smallParams()
	r := NewRasterizer(p)
	size := r.Grid().BoundBox

	maskOnly := NewLayers(LayerSet{Mask: true}, size, size, p)
	if err := r.Bead(Cell{}, maskOnly); err != nil {
		t.Fatalf("Bead failed: %v", err)
	}
	full := newSquareLayers(p, size)
	if err := r.Bead(Cell{}, full); err != nil {
		t.Fatalf("Bead failed: %v", err)
	}
	if !maskOnly.Mask.Equal(full.Mask) {
		t.Error("expected mask-only run to match the full run's mask")
	}

	if err := r.Bead(Cell{}, Layers{}); err != nil {
		t.Errorf("expected no-op for empty layers, got %v", err)
	}
}
