package beads

import (
	"math"

	bmath "github.com/Faultbox/beadforge/pkg/math"
)

// Sample is the shading of one texel inside a bead.
type Sample struct {
	Normal       bmath.Vec3
	Displacement uint8
	Occlusion    uint8
}

// Profile returns the height of the tube at thickness ratio t and, inside
// the flat cap, the normal that replaces the torus normal.
//
// Outside the cap the height follows a semicircle of unit diameter,
// 2*sqrt(0.25 - (t-0.5)^2), which is 0 at both rims and 1 at t = 0.5.
func (p Params) Profile(t float64) (override *bmath.Vec3, displacement uint8) {
	if p.InFlatCap(t) {
		up := bmath.Up
		return &up, math.MaxUint8
	}
	return nil, RatioToByte(SemicircleHeight(t))
}

// InFlatCap reports whether t lies strictly inside the flat cap range.
func (p Params) InFlatCap(t float64) bool {
	return t > p.FlatBegin && t < p.FlatEnd
}

// SemicircleHeight returns the tube height at thickness ratio t in [0, 1].
func SemicircleHeight(t float64) float64 {
	d := t - 0.5
	return 2 * math.Sqrt(0.25-d*d)
}

// TubeAngle maps thickness ratio t to the angle across the tube, [0, pi].
func TubeAngle(t float64) float64 {
	return t * math.Pi
}

// Shade computes the full sample for a texel at thickness ratio t whose
// direction from the bead center has angle jAngle.
func (p Params) Shade(t, jAngle float64) Sample {
	override, disp := p.Profile(t)

	var n bmath.Vec3
	if override != nil {
		n = *override
	} else {
		n = TorusNormal(TubeAngle(t), jAngle)
	}

	return Sample{
		Normal:       n,
		Displacement: disp,
		Occlusion:    p.Occlusion(t),
	}
}
