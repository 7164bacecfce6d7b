// Package beads renders tileable textures of hex-packed torus beads.
//
// A bead is a torus seen from above: an annulus between InnerRadius and
// OuterRadius whose cross-section is a semicircular tube. For every pixel
// inside the annulus the package computes a tangent-space normal, a coverage
// value and a packed occlusion/roughness/displacement triple. Beads are laid
// out on a staggered grid whose canvas size is derived so that the result
// repeats seamlessly in both directions.
package beads

import (
	"errors"
	"fmt"
)

// Parameter validation errors.
var (
	ErrInvalidRadius      = errors.New("invalid bead radii")
	ErrInvalidBeadsWidth  = errors.New("invalid bead count")
	ErrInvalidRatio       = errors.New("ratio out of [0, 1]")
	ErrInvalidThresholds  = errors.New("occlusion thresholds out of order")
	ErrInvalidFlatRange   = errors.New("invalid flat cap range")
	ErrNormalOutOfRange   = errors.New("normal component out of [-1, 1]")
	ErrCanvasSizeMismatch = errors.New("layer size does not match grid")
)

// Params describes the bead shape, its shading and the grid density.
// All radii are in pixels; all ratios are fractions of the tube width,
// 0 at the inner rim and 1 at the outer rim.
type Params struct {
	InnerRadius int
	OuterRadius int
	Padding     int
	BeadsWidth  int // beads per row

	Roughness           float64
	BackgroundRoughness float64

	InnerBlendBegin float64
	InnerBlendEnd   float64
	OuterBlendBegin float64
	OuterBlendEnd   float64

	FlatBegin float64
	FlatEnd   float64
}

// DefaultParams returns the reference bead set.
func DefaultParams() Params {
	return Params{
		InnerRadius: 21,
		OuterRadius: 105,
		Padding:     6,
		BeadsWidth:  10,

		Roughness:           0.5,
		BackgroundRoughness: 1.0,

		InnerBlendBegin: 0.2,
		InnerBlendEnd:   0.3,
		OuterBlendBegin: 0.5,
		OuterBlendEnd:   0.8,

		FlatBegin: 0.3,
		FlatEnd:   0.5,
	}
}

// Validate checks the ordering invariants between radii and thresholds.
// It must pass before any buffer is allocated.
func (p Params) Validate() error {
	if p.InnerRadius < 0 || p.OuterRadius <= p.InnerRadius {
		return fmt.Errorf("%w: inner %d, outer %d", ErrInvalidRadius, p.InnerRadius, p.OuterRadius)
	}
	if p.Padding < 0 {
		return fmt.Errorf("%w: negative padding %d", ErrInvalidRadius, p.Padding)
	}
	if p.BeadsWidth < 1 {
		return fmt.Errorf("%w: %d beads per row", ErrInvalidBeadsWidth, p.BeadsWidth)
	}

	ratios := []struct {
		name  string
		value float64
	}{
		{"roughness", p.Roughness},
		{"background roughness", p.BackgroundRoughness},
		{"inner blend begin", p.InnerBlendBegin},
		{"inner blend end", p.InnerBlendEnd},
		{"outer blend begin", p.OuterBlendBegin},
		{"outer blend end", p.OuterBlendEnd},
		{"flat begin", p.FlatBegin},
		{"flat end", p.FlatEnd},
	}
	for _, r := range ratios {
		if !(r.value >= 0 && r.value <= 1) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidRatio, r.name, r.value)
		}
	}

	if !(p.InnerBlendBegin < p.InnerBlendEnd &&
		p.InnerBlendEnd <= p.OuterBlendBegin &&
		p.OuterBlendBegin < p.OuterBlendEnd) {
		return fmt.Errorf("%w: %v < %v <= %v < %v required", ErrInvalidThresholds,
			p.InnerBlendBegin, p.InnerBlendEnd, p.OuterBlendBegin, p.OuterBlendEnd)
	}

	if !(p.FlatBegin > 0 && p.FlatEnd < 1 && p.FlatBegin <= p.FlatEnd) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidFlatRange, p.FlatBegin, p.FlatEnd)
	}
	return nil
}

// tubeWidth is the annulus width, OuterRadius - InnerRadius.
func (p Params) tubeWidth() float64 {
	return float64(p.OuterRadius - p.InnerRadius)
}

// ThicknessRatio maps a distance from the bead center to its position
// across the tube: 0 at the inner rim, 1 at the outer rim.
func (p Params) ThicknessRatio(dist float64) float64 {
	return (dist - float64(p.InnerRadius)) / p.tubeWidth()
}

// InAnnulus reports whether a distance lies strictly between the radii.
func (p Params) InAnnulus(dist float64) bool {
	return dist > float64(p.InnerRadius) && dist < float64(p.OuterRadius)
}
