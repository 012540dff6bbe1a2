package vpath

import "goraster.dev/raster2d/geom"

// Segment is one drawing command plus its endpoint-relevant points, as
// produced by Path.Segments. For Move/Line, Points[0] is the target point.
// For Quad, Points[0] is the control point and Points[1] the endpoint. For
// Cubic, Points[0:2] are control points and Points[2] the endpoint. For
// Close, Points is empty.
type Segment struct {
	Verb   Verb
	Points [3]geom.Point
	N      int // number of points valid in Points
}

// Segments walks p's verbs and points, calling yield for each segment in
// order. If autoClose is true, a Close segment's Points[0] is populated
// with the subpath's starting point, so that a stroker can form an
// end-correct join at a closed subpath's seam (spec.md §4.2).
//
// Iteration stops early if yield returns false.
func (p *Path) Segments(autoClose bool, yield func(Segment) bool) {
	if p.IsEmpty() {
		return
	}
	idx := 0
	var subpathStart geom.Point
	for _, v := range p.verbs {
		n := v.NumPoints()
		pts := p.points[idx : idx+n]
		idx += n

		var seg Segment
		seg.Verb = v
		seg.N = n
		copy(seg.Points[:], pts)

		switch v {
		case Move:
			subpathStart = pts[0]
		case Close:
			if autoClose {
				seg.Points[0] = subpathStart
				seg.N = 1
			}
		}

		if !yield(seg) {
			return
		}
	}
}

// ForEachPoint calls fn for every point in the path, in storage order. It
// is a cheap way to transform or measure a path without reconstructing its
// verb structure.
func (p *Path) ForEachPoint(fn func(geom.Point)) {
	if p.IsEmpty() {
		return
	}
	for _, pt := range p.points {
		fn(pt)
	}
}
