package beads

import (
	"image"
	"image/color"
)

// Map is a 3-channel 8-bit pixel buffer stored row-major in B, G, R byte
// order. It implements image.Image, presenting the bytes as opaque RGBA so
// any image encoder writes the conventional RGB file.
type Map struct {
	width  int
	height int
	pix    []uint8
}

// NewMap allocates a width x height map filled with zeros.
func NewMap(width, height int) *Map {
	return &Map{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// Pix returns the raw B, G, R bytes.
func (m *Map) Pix() []uint8 { return m.pix }

// Fill sets every pixel to the given triple, in storage order.
func (m *Map) Fill(b, g, r uint8) {
	for i := 0; i < len(m.pix); i += 3 {
		m.pix[i+0] = b
		m.pix[i+1] = g
		m.pix[i+2] = r
	}
}

// Contains reports whether (row, col) addresses a pixel of the map.
func (m *Map) Contains(row, col int) bool {
	return row >= 0 && col >= 0 && row < m.height && col < m.width
}

// Set writes a triple in storage order. Out-of-bounds writes are dropped.
func (m *Map) Set(row, col int, b, g, r uint8) {
	if !m.Contains(row, col) {
		return
	}
	i := (row*m.width + col) * 3
	m.pix[i+0] = b
	m.pix[i+1] = g
	m.pix[i+2] = r
}

// Triple returns the stored bytes at (row, col) in storage order.
func (m *Map) Triple(row, col int) [3]uint8 {
	if !m.Contains(row, col) {
		return [3]uint8{}
	}
	i := (row*m.width + col) * 3
	return [3]uint8{m.pix[i], m.pix[i+1], m.pix[i+2]}
}

// Equal reports whether two maps have the same size and bytes.
func (m *Map) Equal(other *Map) bool {
	if m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Crop copies the region starting at (row, col) with the given size.
// Pixels outside m are left zero.
func (m *Map) Crop(row, col, width, height int) *Map {
	out := NewMap(width, height)
	for y := range height {
		for x := range width {
			t := m.Triple(row+y, col+x)
			out.Set(y, x, t[0], t[1], t[2])
		}
	}
	return out
}

// ColorModel implements image.Image.
func (m *Map) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *Map) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

// At implements image.Image. x is the column and y the row.
func (m *Map) At(x, y int) color.Color {
	t := m.Triple(y, x)
	return color.RGBA{R: t[2], G: t[1], B: t[0], A: 255}
}

// Layers holds the output maps of one generation run. A nil map disables
// that layer.
type Layers struct {
	Normal *Map
	Mask   *Map
	ORD    *Map
}

// LayerSet selects which layers a run produces.
type LayerSet struct {
	Normal bool
	Mask   bool
	ORD    bool
}

// AllLayers enables the normal map, mask and ORD map.
func AllLayers() LayerSet {
	return LayerSet{Normal: true, Mask: true, ORD: true}
}

// Empty reports whether no layer is enabled.
func (s LayerSet) Empty() bool {
	return !s.Normal && !s.Mask && !s.ORD
}

// NewLayers allocates the enabled layers at the given size and fills each
// with its background: the +Z normal, black, and zero displacement and
// occlusion with the background roughness.
func NewLayers(set LayerSet, width, height int, p Params) Layers {
	var l Layers
	if set.Normal {
		l.Normal = NewMap(width, height)
		bg := FlatNormal().BGR()
		l.Normal.Fill(bg[0], bg[1], bg[2])
	}
	if set.Mask {
		l.Mask = NewMap(width, height)
	}
	if set.ORD {
		l.ORD = NewMap(width, height)
		l.ORD.Fill(0, RatioToByte(p.BackgroundRoughness), 0)
	}
	return l
}

// Each calls fn for every enabled layer with its name.
func (l Layers) Each(fn func(name string, m *Map) error) error {
	named := []struct {
		name string
		m    *Map
	}{
		{"normal", l.Normal},
		{"mask", l.Mask},
		{"ord", l.ORD},
	}
	for _, n := range named {
		if n.m == nil {
			continue
		}
		if err := fn(n.name, n.m); err != nil {
			return err
		}
	}
	return nil
}

// Opaque reports that every pixel is fully opaque, so encoders write
// three channels.
func (m *Map) Opaque() bool { return true }

// First returns the first enabled layer in normal, mask, ORD order.
func (l Layers) First() (name string, m *Map, ok bool) {
	_ = l.Each(func(n string, lm *Map) error {
		if !ok {
			name, m, ok = n, lm, true
		}
		return nil
	})
	return name, m, ok
}

// FirstOnly keeps only the first enabled layer in normal, mask, ORD order.
func (s LayerSet) FirstOnly() LayerSet {
	switch {
	case s.Normal:
		return LayerSet{Normal: true}
	case s.Mask:
		return LayerSet{Mask: true}
	case s.ORD:
		return LayerSet{ORD: true}
	}
	return LayerSet{}
}
