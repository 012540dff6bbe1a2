package vpath

import (
	"math"

	"goraster.dev/raster2d/geom"
)

// Subpath is a flattened (curves-to-lines) polyline: a sequence of vertices
// with an explicit closed flag. Consecutive duplicate vertices are not
// removed; callers that need unit tangents should skip zero-length spans.
type Subpath struct {
	Points []geom.Point
	Closed bool
}

// Flatten converts every Quad/Cubic verb in p into a run of line segments,
// approximating each curve to within tolerance (in the units of the curve
// coordinates, scaled by scale — pass a device-space scale factor so a
// caller working in user space gets device-accurate flattening, per
// spec.md §4.3's "resolution scale derived from the current transform's
// maximum scale"). This is the same Wang's-formula-style error estimate
// the teacher's flattenQuadratic/flattenCubic use, generalized from
// "flatten for immediate scan conversion" to "flatten for stroking/dashing".
func (p *Path) Flatten(tolerance, scale float32) []Subpath {
	if p.IsEmpty() || tolerance <= 0 {
		return nil
	}
	if scale <= 0 {
		scale = 1
	}

	var out []Subpath
	var cur *Subpath
	var current geom.Point

	emitLine := func(_, to geom.Point) {
		cur.Points = append(cur.Points, to)
	}

	p.Segments(false, func(seg Segment) bool {
		switch seg.Verb {
		case Move:
			out = append(out, Subpath{Points: []geom.Point{seg.Points[0]}})
			cur = &out[len(out)-1]
			current = seg.Points[0]
		case Line:
			if cur == nil {
				out = append(out, Subpath{Points: []geom.Point{current}})
				cur = &out[len(out)-1]
			}
			cur.Points = append(cur.Points, seg.Points[0])
			current = seg.Points[0]
		case Quad:
			if cur == nil {
				out = append(out, Subpath{Points: []geom.Point{current}})
				cur = &out[len(out)-1]
			}
			flattenQuad(current, seg.Points[0], seg.Points[1], tolerance, scale, emitLine)
			current = seg.Points[1]
		case Cubic:
			if cur == nil {
				out = append(out, Subpath{Points: []geom.Point{current}})
				cur = &out[len(out)-1]
			}
			flattenCubic(current, seg.Points[0], seg.Points[1], seg.Points[2], tolerance, scale, emitLine)
			current = seg.Points[2]
		case Close:
			if cur != nil {
				cur.Closed = true
			}
			cur = nil
		}
		return true
	})
	return out
}

func flattenQuad(p0, p1, p2 geom.Point, tolerance, scale float32, emit func(from, to geom.Point)) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	errDev := e.Length() * scale

	n := 1
	if errDev > tolerance {
		n = int(math.Ceil(math.Sqrt(float64(errDev / tolerance))))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

func flattenCubic(p0, p1, p2, p3 geom.Point, tolerance, scale float32, emit func(from, to geom.Point)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)
	mDev := maxf(d1.Length(), d2.Length()) * scale

	n := 1
	if mDev > 0 {
		nf := math.Sqrt(3 * float64(mDev) / (4 * float64(tolerance)))
		if nf > 1 {
			n = int(math.Ceil(nf))
		}
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		omt := 1 - t
		omt2 := omt * omt
		omt3 := omt2 * omt
		t2 := t * t
		t3 := t2 * t
		pt := p0.Mul(omt3).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t3))
		emit(prev, pt)
		prev = pt
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
