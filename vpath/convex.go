package vpath

import "goraster.dev/raster2d/geom"

// IsConvexHeuristic reports whether p is likely convex: a single subpath
// whose edge directions turn consistently in one rotational sense. This is
// a fast heuristic, not an exact convexity test — a "false" result may
// still be convex, but "true" is always correct for closed,
// non-self-intersecting single-subpath polygons.
func (p *Path) IsConvexHeuristic() bool {
	if p.IsEmpty() {
		return false
	}
	var prev, prevDir, firstDir geom.Point
	var have bool
	var sign int
	subpaths := 0
	ok := true

	p.Segments(true, func(seg Segment) bool {
		switch seg.Verb {
		case Move:
			subpaths++
			if subpaths > 1 {
				ok = false
				return false
			}
			prev, have = seg.Points[0], true
		case Line, Close:
			if seg.N == 0 {
				return true
			}
			to := seg.Points[0]
			if have {
				d := to.Sub(prev)
				if d.LengthSq() > 0 {
					cr := prevDir.Cross(d)
					s := 0
					if cr > 1e-9 {
						s = 1
					} else if cr < -1e-9 {
						s = -1
					}
					if s != 0 {
						if sign == 0 {
							sign = s
						} else if s != sign {
							ok = false
							return false
						}
					}
					prevDir = d
					if firstDir == (geom.Point{}) {
						firstDir = d
					}
				}
			}
			if seg.Verb == Close {
				if cr := prevDir.Cross(firstDir); (cr > 1e-9 && sign < 0) || (cr < -1e-9 && sign > 0) {
					ok = false
					return false
				}
			}
			prev = to
			have = true
		default:
			// Curves are not analyzed by this heuristic: treat as non-convex.
			ok = false
			return false
		}
		return true
	})

	return ok
}
