package beads

import (
	"math"

	bmath "github.com/Faultbox/beadforge/pkg/math"
)

// TorusNormal returns the outward unit normal of a torus surface.
//
// jAngle runs around the bead's big circle and iAngle across the tube,
// from 0 at the inner rim to pi at the outer rim. The normal is the
// normalized cross product of the big-circle tangent and the tube tangent.
// See https://www.cs.ucdavis.edu/~amenta/s06/findnorm.pdf.
func TorusNormal(iAngle, jAngle float64) bmath.Vec3 {
	sinI, cosI := math.Sincos(iAngle)
	sinJ, cosJ := math.Sincos(jAngle)

	ring := bmath.Vec3{X: -sinJ, Y: cosJ, Z: 0}
	tube := bmath.Vec3{X: cosJ * -sinI, Y: sinJ * -sinI, Z: cosI}

	return ring.Cross(tube).Normalize()
}
