package shader

import (
	"math"

	"golang.org/x/image/math/f32"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/gradient"
)

// Radial is the two-point conical gradient shader of spec.md §4.8: two
// circles (C0,R0) and (C1,R1) are interpolated by t, and the sample point's
// t is recovered by solving for which interpolated circle it lies on. A
// plain radial gradient is the special case C0==C1, R0==0.
//
// This collapses spec.md's three specialized conical stages (xy_to_radius,
// focal-on-circle, well-behaved/greater) into one general quadratic solve;
// no kept original_source file contains the conical-gradient implementation
// to port the stage split from, so the case analysis below is written
// directly from the standard two-point-conical-gradient construction
// described in spec.md §4.8 and §9.
type Radial struct {
	Gradient *gradient.Gradient
	Inverse  geom.Transform // device space -> the two circles' shared local space

	C0 geom.Point
	R0 float32
	C1 geom.Point
	R1 float32
}

// Sample implements the degenerate-mask stage: points for which no
// non-negative-radius t exists sample as fully transparent.
func (s Radial) Sample(p geom.Point) f32.Vec4 {
	local := s.Inverse.Apply(p)

	dcx, dcy := s.C1.X-s.C0.X, s.C1.Y-s.C0.Y
	dr := s.R1 - s.R0
	pdx, pdy := local.X-s.C0.X, local.Y-s.C0.Y

	a := float64(dcx*dcx + dcy*dcy - dr*dr)
	b := 2 * float64(pdx*dcx+pdy*dcy+s.R0*dr)
	c := float64(pdx*pdx + pdy*pdy - s.R0*s.R0)

	t, ok := solveConical(a, b, c, float64(s.R0), float64(dr))
	if !ok {
		return f32.Vec4{}
	}
	return s.Gradient.At(float32(t))
}

// solveConical returns the larger root t of a*t^2 + b*t + c = 0 for which
// r0 + t*dr >= 0 (radius(t) must stay non-negative), falling back to the
// other root, or failing entirely if neither qualifies. a==0 degenerates to
// the linear case (single circle of constant radius through the focus).
func solveConical(a, b, c, r0, dr float64) (float64, bool) {
	const eps = 1e-9
	valid := func(t float64) bool { return r0+t*dr >= 0 }

	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return 0, false
		}
		t := -c / b
		if valid(t) {
			return t, true
		}
		return 0, false
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b + sq) / (2 * a)
	t1 := (-b - sq) / (2 * a)
	if t0 < t1 {
		t0, t1 = t1, t0
	}
	if valid(t0) {
		return t0, true
	}
	if valid(t1) {
		return t1, true
	}
	return 0, false
}
