package beads

import "math"

// Occlusion returns the ambient occlusion byte for thickness ratio t.
//
// The curve is 0 outside [InnerBlendBegin, OuterBlendEnd], ramps linearly
// up to 255 across the inner blend band, holds 255 between the bands and
// ramps back to 0 across the outer blend band. Each threshold belongs to
// the segment that makes the curve continuous there.
func (p Params) Occlusion(t float64) uint8 {
	switch {
	case t < p.InnerBlendBegin || t > p.OuterBlendEnd:
		return 0
	case t <= p.InnerBlendEnd:
		r := (t - p.InnerBlendBegin) / (p.InnerBlendEnd - p.InnerBlendBegin)
		return RatioToByte(r)
	case t <= p.OuterBlendBegin:
		return math.MaxUint8
	default:
		r := (t - p.OuterBlendBegin) / (p.OuterBlendEnd - p.OuterBlendBegin)
		return RatioToByte(1 - r)
	}
}
