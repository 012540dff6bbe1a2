package geom

import "math"

// Transform is a row-major 2x3 affine transform:
//
//	[ SX  KX  TX ]
//	[ KY  SY  TY ]
//
// applying (x,y) -> (SX*x + KX*y + TX, KY*x + SY*y + TY).
//
// This mirrors the field layout the teacher's matrix.Matrix exposes
// ([6]float64 indexed 0..5), generalized to spec.md §3's named fields.
type Transform struct {
	SX, KY, KX, SY, TX, TY float32
}

// Identity is the identity transform.
var Identity = Transform{SX: 1, SY: 1}

// NewTranslate builds a translation-only transform.
func NewTranslate(tx, ty float32) Transform {
	return Transform{SX: 1, SY: 1, TX: tx, TY: ty}
}

// NewScaleTranslate builds a transform that scales then translates.
func NewScaleTranslate(sx, sy, tx, ty float32) Transform {
	return Transform{SX: sx, SY: sy, TX: tx, TY: ty}
}

// Apply transforms a point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.SX*p.X + t.KX*p.Y + t.TX,
		Y: t.KY*p.X + t.SY*p.Y + t.TY,
	}
}

// ApplyVector transforms a vector (ignores translation).
func (t Transform) ApplyVector(p Point) Point {
	return Point{
		X: t.SX*p.X + t.KX*p.Y,
		Y: t.KY*p.X + t.SY*p.Y,
	}
}

// IsIdentity reports whether t is exactly the identity transform.
func (t Transform) IsIdentity() bool {
	return t == Identity
}

// IsTranslateOnly reports whether t has no scale or skew component.
func (t Transform) IsTranslateOnly() bool {
	return t.SX == 1 && t.SY == 1 && t.KX == 0 && t.KY == 0
}

// IsScaleTranslate reports whether t has no skew component.
func (t Transform) IsScaleTranslate() bool {
	return t.KX == 0 && t.KY == 0
}

// HasScale reports whether t scales along either axis.
func (t Transform) HasScale() bool {
	return t.SX != 1 || t.SY != 1
}

// HasSkew reports whether t has a nonzero off-diagonal (skew/rotation) term.
func (t Transform) HasSkew() bool {
	return t.KX != 0 || t.KY != 0
}

// HasPerspective always reports false: this module has no 3x3 / projective
// transform support (spec.md §3 queries include it only for symmetry with
// the teacher's matrix API).
func (t Transform) HasPerspective() bool { return false }

// Determinant returns the determinant of the 2x2 linear part.
func (t Transform) Determinant() float64 {
	return float64(t.SX)*float64(t.SY) - float64(t.KX)*float64(t.KY)
}

// nearZeroDeterminantThreshold is the cube-of-near-zero threshold below
// which a transform is considered non-invertible, per spec.md §3.
const nearZeroDeterminantThreshold = 1e-18

// Invert returns the inverse of t, and false if the magnitude of t's
// determinant is below the near-zero threshold.
func (t Transform) Invert() (Transform, bool) {
	det := t.Determinant()
	if math.Abs(det) < nearZeroDeterminantThreshold {
		return Transform{}, false
	}
	invDet := 1 / det
	sx := float32(float64(t.SY) * invDet)
	sy := float32(float64(t.SX) * invDet)
	kx := float32(-float64(t.KX) * invDet)
	ky := float32(-float64(t.KY) * invDet)
	tx := -(sx*t.TX + kx*t.TY)
	ty := -(ky*t.TX + sy*t.TY)
	out := Transform{SX: sx, KY: ky, KX: kx, SY: sy, TX: tx, TY: ty}
	if !isFiniteF32(out.SX) || !isFiniteF32(out.SY) || !isFiniteF32(out.KX) ||
		!isFiniteF32(out.KY) || !isFiniteF32(out.TX) || !isFiniteF32(out.TY) {
		return Transform{}, false
	}
	return out, true
}

// Concat returns the transform equivalent to applying t first, then u
// (u.Concat(t) in matrix-multiplication order: result = u * t).
func (u Transform) Concat(t Transform) Transform {
	return Transform{
		SX: u.SX*t.SX + u.KX*t.KY,
		KY: u.KY*t.SX + u.SY*t.KY,
		KX: u.SX*t.KX + u.KX*t.SY,
		SY: u.KY*t.KX + u.SY*t.SY,
		TX: u.SX*t.TX + u.KX*t.TY + u.TX,
		TY: u.KY*t.TX + u.SY*t.TY + u.TY,
	}
}

// MaxScale returns an upper bound on the factor by which t scales lengths,
// used to derive a resolution-appropriate flattening tolerance for strokes
// under zoom (spec.md §4.3).
func (t Transform) MaxScale() float32 {
	// Singular values of the 2x2 linear part, via the standard closed form.
	a, b, c, d := float64(t.SX), float64(t.KX), float64(t.KY), float64(t.SY)
	s1 := a*a + b*b + c*c + d*d
	s2 := math.Sqrt(math.Max(0, (a*a+b*b-c*c-d*d)*(a*a+b*b-c*c-d*d)+4*(a*c+b*d)*(a*c+b*d)))
	maxSV := math.Sqrt(math.Max(0, (s1+s2)/2))
	return float32(maxSV)
}
