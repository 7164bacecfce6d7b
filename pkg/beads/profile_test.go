package beads

import (
	"math"
	"testing"

	bmath "github.com/Faultbox/beadforge/pkg/math"
)

func TestProfileFlatCap(t *testing.T) {
	p := DefaultParams()
	for _, ratio := range []float64{0.30001, 0.35, 0.4, 0.49999} {
		override, disp := p.Profile(ratio)
		if override == nil || *override != bmath.Up {
			t.Errorf("Profile(%v): expected +Z override, got %v", ratio, override)
		}
		if disp != 255 {
			t.Errorf("Profile(%v): expected displacement 255, got %d", ratio, disp)
		}
	}
}

func TestProfileFlatCapBoundsExclusive(t *testing.T) {
	p := DefaultParams()
	for _, ratio := range []float64{p.FlatBegin, p.FlatEnd} {
		if override, _ := p.Profile(ratio); override != nil {
			t.Errorf("Profile(%v): expected no override at the cap boundary", ratio)
		}
	}
}

func TestProfilePeak(t *testing.T) {
	p := DefaultParams()
	override, disp := p.Profile(0.5)
	if override != nil {
		t.Errorf("expected no override at t=0.5, got %v", *override)
	}
	if disp != 255 {
		t.Errorf("expected displacement 255 at t=0.5, got %d", disp)
	}
}

func TestProfileSemicircle(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		ratio float64
		want  uint8
	}{
		{0, 0},
		{1, 0},
		{0.125, 168},
		{0.875, 168},
	}
	for _, tt := range tests {
		override, disp := p.Profile(tt.ratio)
		if override != nil {
			t.Errorf("Profile(%v): unexpected override", tt.ratio)
		}
		if disp != tt.want {
			t.Errorf("Profile(%v) displacement = %d, expected %d", tt.ratio, disp, tt.want)
		}
	}
}

func TestSemicircleHeightSymmetric(t *testing.T) {
	for i := 0; i <= 50; i++ {
		ratio := float64(i) / 100
		a := SemicircleHeight(ratio)
		b := SemicircleHeight(1 - ratio)
		if math.Abs(a-b) > 1e-12 {
			t.Errorf("height(%v) = %v, height(%v) = %v", ratio, a, 1-ratio, b)
		}
	}
}

func TestShade(t *testing.T) {
	p := DefaultParams()

	flat := p.Shade(0.4, 2.0)
	if flat.Normal != bmath.Up || flat.Displacement != 255 || flat.Occlusion != 255 {
		t.Errorf("unexpected flat cap sample %+v", flat)
	}

	s := p.Shade(0.125, 0)
	want := TorusNormal(TubeAngle(0.125), 0)
	if s.Normal != want {
		t.Errorf("expected torus normal %v, got %v", want, s.Normal)
	}
	if s.Displacement != 168 || s.Occlusion != 0 {
		t.Errorf("unexpected sample %+v", s)
	}
}
