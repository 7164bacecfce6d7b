package beads

import (
	"fmt"
	"math"

	bmath "github.com/Faultbox/beadforge/pkg/math"
)

// RGB is an 8-bit color triple in natural channel order.
type RGB struct {
	R, G, B uint8
}

// BGR returns the triple in the byte order used by Map.
func (c RGB) BGR() [3]uint8 {
	return [3]uint8{c.B, c.G, c.R}
}

// EncodeNormal maps a normal with components in [-1, 1] to [0, 255] per
// channel using the tangent-space convention c -> (c+1)/2 * 255, rounded
// to nearest. Out-of-range components indicate a defect in the caller and
// return ErrNormalOutOfRange.
func EncodeNormal(n bmath.Vec3) (RGB, error) {
	if !n.InUnitCube() {
		return RGB{}, fmt.Errorf("%w: %v", ErrNormalOutOfRange, n)
	}
	return RGB{
		R: encodeComponent(n.X),
		G: encodeComponent(n.Y),
		B: encodeComponent(n.Z),
	}, nil
}

// FlatNormal is the encoded +Z normal, the normal map background.
func FlatNormal() RGB {
	return RGB{R: encodeComponent(0), G: encodeComponent(0), B: encodeComponent(1)}
}

func encodeComponent(c float64) uint8 {
	if c <= 0 {
		return uint8(math.Round(math.Abs((-1-c)/2) * 255))
	}
	return uint8(math.Round((c + 1) / 2 * 255))
}

// RatioToByte maps a ratio in [0, 1] to [0, 255], truncating.
func RatioToByte(ratio float64) uint8 {
	return uint8(math.Floor(ratio * 255))
}
