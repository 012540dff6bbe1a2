package geom

import "math"

// TValue is a curve parameter strictly inside (0,1); boundary values are
// not valid split points (spec.md §4.1).
type TValue struct {
	v float32
}

// NewTValue validates t is in the open interval (0,1).
func NewTValue(t float32) (TValue, bool) {
	if !(t > 0 && t < 1) {
		return TValue{}, false
	}
	return TValue{t}, true
}

// Float32 returns the underlying parameter value.
func (t TValue) Float32() float32 { return t.v }

// unitDivide computes numer/denom, returning false if the result would not
// land cleanly in [0,1] (mirrors the teacher's tie-break need when a root
// solve produces a parameter just outside the valid range due to rounding).
func unitDivide(numer, denom float32) (float32, bool) {
	if denom == 0 {
		return 0, false
	}
	t := numer / denom
	if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
		return 0, false
	}
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// SplitQuadAt evaluates a quadratic Bezier (p0,p1,p2) via de Casteljau and
// returns the two halves split at t.
func SplitQuadAt(p0, p1, p2 Point, t TValue) (a0, a1, a2, b1, b2 Point) {
	tv := t.v
	ab := lerp(p0, p1, tv)
	bc := lerp(p1, p2, tv)
	abc := lerp(ab, bc, tv)
	return p0, ab, abc, bc, p2
}

// SplitCubicAt evaluates a cubic Bezier (p0..p3) via de Casteljau and
// returns the two halves split at t.
func SplitCubicAt(p0, p1, p2, p3 Point, t TValue) (a0, a1, a2, a3, b1, b2, b3 Point) {
	tv := t.v
	ab := lerp(p0, p1, tv)
	bc := lerp(p1, p2, tv)
	cd := lerp(p2, p3, tv)
	abc := lerp(ab, bc, tv)
	bcd := lerp(bc, cd, tv)
	abcd := lerp(abc, bcd, tv)
	return p0, ab, abc, abcd, bcd, cd, p3
}

func lerp(a, b Point, t float32) Point {
	return Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// ChopQuadAtYExtrema splits a quadratic Bezier into 1 or 2 pieces, each
// monotonic in Y. Returns the control points of each monotonic piece.
func ChopQuadAtYExtrema(p0, p1, p2 Point) [][3]Point {
	t, ok := findQuadExtremaT(p0.Y, p1.Y, p2.Y)
	if !ok {
		// Tie-break when no split parameter could be computed (e.g. the
		// division underflowed): force monotonicity by replacing the middle
		// Y with whichever endpoint Y is closer.
		if (p0.Y <= p1.Y) != (p1.Y <= p2.Y) {
			if absf32(p1.Y-p0.Y) < absf32(p1.Y-p2.Y) {
				p1.Y = p0.Y
			} else {
				p1.Y = p2.Y
			}
		}
		return [][3]Point{{p0, p1, p2}}
	}
	a0, a1, a2, b1, b2 := SplitQuadAt(p0, p1, p2, t)
	// The tangent is horizontal at the extremum, so both inner control
	// points share the split point's Y; snapping them removes rounding
	// that could leave either half non-monotonic.
	a1.Y = a2.Y
	b1.Y = a2.Y
	return [][3]Point{{a0, a1, a2}, {a2, b1, b2}}
}

// findQuadExtremaT finds the T value (in the open interval) where the
// quadratic's Y derivative is zero, i.e. the Y-extremum parameter.
func findQuadExtremaT(y0, y1, y2 float32) (TValue, bool) {
	// dY/dt = 0 at t = (y0-y1) / (y0 - 2y1 + y2)
	numer := y0 - y1
	denom := y0 - 2*y1 + y2
	t, ok := unitDivide(numer, denom)
	if !ok {
		return TValue{}, false
	}
	return NewTValue(t)
}

// ChopCubicAtYExtrema splits a cubic Bezier into 1, 2, or 3 pieces, each
// monotonic in Y.
func ChopCubicAtYExtrema(p0, p1, p2, p3 Point) [][4]Point {
	ts := findCubicExtremaT(p0.Y, p1.Y, p2.Y, p3.Y)
	if len(ts) == 0 {
		return [][4]Point{{p0, p1, p2, p3}}
	}
	out := make([][4]Point, 0, len(ts)+1)
	cp0, cp1, cp2, cp3 := p0, p1, p2, p3
	prevT := float32(0)
	for _, t := range ts {
		// Re-parameterize t relative to the remaining [prevT,1] segment.
		localT := (t.v - prevT) / (1 - prevT)
		if localT <= 0 || localT >= 1 || math.IsNaN(float64(localT)) {
			// Degenerate re-split: collapse remainder to a point at its end,
			// matching the teacher's invalid-unit_divide loop-prevention
			// (documented skbug#6491 behavior).
			out = append(out, [4]Point{cp0, cp1, cp2, cp3})
			cp0, cp1, cp2, cp3 = cp3, cp3, cp3, cp3
			prevT = 1
			continue
		}
		lt, _ := NewTValue(localT)
		a0, a1, a2, a3, b1, b2, b3 := SplitCubicAt(cp0, cp1, cp2, cp3, lt)
		out = append(out, [4]Point{a0, a1, a2, a3})
		cp0, cp1, cp2, cp3 = a3, b1, b2, b3
		prevT = t.v
	}
	out = append(out, [4]Point{cp0, cp1, cp2, cp3})
	return out
}

// findCubicExtremaT finds up to two Y-extremum parameters of a cubic,
// solving dY/dt=0 via the numerically stabilized quadratic formula
// Q = -1/2 (B + sgn(B) sqrt(B^2-4AC)), t0=Q/A, t1=C/Q (spec.md §4.1).
func findCubicExtremaT(y0, y1, y2, y3 float32) []TValue {
	// dY/dt is a quadratic in t: A t^2 + B t + C = 0, where (up to the
	// constant factor 3 which doesn't affect roots):
	a := -y0 + 3*y1 - 3*y2 + y3
	b := 2 * (y0 - 2*y1 + y2)
	c := y1 - y0

	var ts []TValue
	addRoot := func(t float32) {
		if tv, ok := NewTValue(t); ok {
			ts = append(ts, tv)
		}
	}

	if a == 0 {
		if b != 0 {
			addRoot(-c / b)
		}
	} else {
		disc := float64(b)*float64(b) - 4*float64(a)*float64(c)
		if disc >= 0 {
			sq := math.Sqrt(disc)
			sgnB := 1.0
			if b < 0 {
				sgnB = -1.0
			}
			q := -0.5 * (float64(b) + sgnB*sq)
			if q != 0 {
				addRoot(float32(q / float64(a)))
				addRoot(float32(float64(c) / q))
			} else {
				addRoot(0)
			}
		}
	}

	if len(ts) == 2 && ts[0].v > ts[1].v {
		ts[0], ts[1] = ts[1], ts[0]
	}
	// De-duplicate near-identical roots.
	if len(ts) == 2 && absf32(ts[0].v-ts[1].v) < 1e-6 {
		ts = ts[:1]
	}
	return ts
}
