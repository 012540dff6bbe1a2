package stroke

import (
	"math"

	"goraster.dev/raster2d/geom"
)

// strokeSubpath builds the stroke outline for a single subpath into s.outline.
// The outline is built as a closed polygon: forward pass on the +N side,
// then backward pass on the -N side. Join geometry is added on the outer
// side of each corner, which depends on the turn direction. Zero-length
// subpaths are handled by the caller before invoking this method.
func (s *Stroker) strokeSubpath(segs []segment, closed bool, params Params, d float32) {
	if len(segs) == 0 {
		return
	}

	if closed {
		first := &segs[0]
		last := &segs[len(segs)-1]

		sinThetaClose := last.T.Cross(first.T)
		s.outline = append(s.outline, first.A.Add(first.N.Mul(d)))
		for i := range segs {
			seg := &segs[i]
			if i < len(segs)-1 {
				next := &segs[i+1]
				sinTheta := seg.T.Cross(next.T)
				switch {
				case math.Abs(float64(sinTheta)) < collinearityThreshold:
					s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
					s.outline = append(s.outline, next.A.Add(next.N.Mul(d)))
				case sinTheta > 0:
					s.addInnerIntersectionOrOffsets(seg.B, seg.T, next.T, seg.N, next.N, d, true)
				default:
					s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
					s.addJoin(seg.B, seg.T, next.T, params, d, true)
					s.outline = append(s.outline, next.A.Add(next.N.Mul(d)))
				}
			} else {
				switch {
				case math.Abs(float64(sinThetaClose)) < collinearityThreshold:
					s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
					s.outline = append(s.outline, first.A.Add(first.N.Mul(d)))
				case sinThetaClose > 0:
					s.addInnerIntersectionOrOffsets(seg.B, seg.T, first.T, seg.N, first.N, d, true)
				default:
					s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
					s.addJoin(seg.B, seg.T, first.T, params, d, true)
					s.outline = append(s.outline, first.A.Add(first.N.Mul(d)))
				}
			}
		}

		switch {
		case math.Abs(float64(sinThetaClose)) < collinearityThreshold:
			s.outline = append(s.outline, first.A.Sub(first.N.Mul(d)))
			s.outline = append(s.outline, last.B.Sub(last.N.Mul(d)))
		case sinThetaClose > 0:
			s.outline = append(s.outline, first.A.Sub(first.N.Mul(d)))
			s.addJoin(first.A, last.T, first.T, params, d, false)
			s.outline = append(s.outline, last.B.Sub(last.N.Mul(d)))
		default:
			s.addInnerIntersectionOrOffsets(first.A, last.T, first.T, last.N, first.N, d, false)
		}

		for i := len(segs) - 1; i >= 0; i-- {
			seg := &segs[i]
			if i > 0 {
				prev := &segs[i-1]
				sinTheta := prev.T.Cross(seg.T)
				switch {
				case math.Abs(float64(sinTheta)) < collinearityThreshold:
					s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)))
					s.outline = append(s.outline, prev.B.Sub(prev.N.Mul(d)))
				case sinTheta > 0:
					s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)))
					s.addJoin(seg.A, prev.T, seg.T, params, d, false)
					s.outline = append(s.outline, prev.B.Sub(prev.N.Mul(d)))
				default:
					s.addInnerIntersectionOrOffsets(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
				}
			} else {
				s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)))
			}
		}

	} else {
		first := &segs[0]
		last := &segs[len(segs)-1]

		s.addCap(first.A, first.T.Mul(-1), params, d)

		skipNextA := false
		for i := range segs {
			seg := &segs[i]
			if !skipNextA {
				s.outline = append(s.outline, seg.A.Add(seg.N.Mul(d)))
			}
			skipNextA = false
			if i < len(segs)-1 {
				next := &segs[i+1]
				sinTheta := seg.T.Cross(next.T)
				switch {
				case math.Abs(float64(sinTheta)) < collinearityThreshold:
					s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
				case sinTheta > 0:
					skipNextA = s.addInnerIntersectionOrOffsets(seg.B, seg.T, next.T, seg.N, next.N, d, true)
				default:
					s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
					s.addJoin(seg.B, seg.T, next.T, params, d, true)
				}
			} else {
				s.outline = append(s.outline, seg.B.Add(seg.N.Mul(d)))
			}
		}

		s.addCap(last.B, last.T, params, d)

		skipNextB := false
		for i := len(segs) - 1; i >= 0; i-- {
			seg := &segs[i]
			if !skipNextB {
				s.outline = append(s.outline, seg.B.Sub(seg.N.Mul(d)))
			}
			skipNextB = false
			if i > 0 {
				prev := &segs[i-1]
				sinTheta := prev.T.Cross(seg.T)
				switch {
				case math.Abs(float64(sinTheta)) < collinearityThreshold:
					s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)))
				case sinTheta > 0:
					s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)))
					s.addJoin(seg.A, prev.T, seg.T, params, d, false)
				default:
					skipNextB = s.addInnerIntersectionOrOffsets(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
				}
			} else {
				s.outline = append(s.outline, seg.A.Sub(seg.N.Mul(d)))
			}
		}
	}
}

// addCap adds a line cap to the outline at point P. T is the outward
// tangent direction (away from the stroke). d is half the stroke width.
func (s *Stroker) addCap(P, T geom.Point, params Params, d float32) {
	N := geom.Pt(-T.Y, T.X)

	switch params.Cap {
	case CapButt:
		// Nothing to add: the caller already placed the two offset points.

	case CapSquare:
		ext := P.Add(T.Mul(d))
		left := ext.Add(N.Mul(d))
		right := ext.Sub(N.Mul(d))
		s.outline = append(s.outline, left, right)

	case CapRound:
		// includeStart=true: the arc's first point is always emitted; where
		// the caller already placed that point, the outline repeats it.
		s.addArc(P, d, N, -pi, true)
	}
}

// computeInnerIntersection returns the intersection point of the two inner
// offset lines at a corner, and ok=true if the corner isn't nearly
// collinear.
func computeInnerIntersection(P, T1, T2 geom.Point, d float32, isPositiveNormalSide bool) (geom.Point, bool) {
	cosTheta := T1.Dot(T2)
	if cosTheta > 1-1e-9 {
		return geom.Point{}, false
	}

	halfAngle := float32(math.Sqrt((1 + float64(cosTheta)) / 2))
	if halfAngle < 1e-9 {
		return geom.Point{}, false
	}

	N1 := geom.Pt(-T1.Y, T1.X)
	N2 := geom.Pt(-T2.Y, T2.X)

	innerDir := N1.Add(N2)
	if !isPositiveNormalSide {
		innerDir = innerDir.Mul(-1)
	}

	innerDirLen := innerDir.Length()
	if innerDirLen < 1e-9 {
		return geom.Point{}, false
	}
	innerDir = innerDir.Mul(1 / innerDirLen)

	return P.Add(innerDir.Mul(d / halfAngle)), true
}

// addInnerIntersectionOrOffsets handles the inner side of a corner: adds
// the intersection point when one exists, falling back to both offset
// points. Returns true if the intersection was used (the caller should
// skip the following segment's leading offset point).
func (s *Stroker) addInnerIntersectionOrOffsets(P, T1, T2, N1, N2 geom.Point, d float32, isPositiveNormalSide bool) bool {
	if pt, ok := computeInnerIntersection(P, T1, T2, d, isPositiveNormalSide); ok {
		s.outline = append(s.outline, pt)
		return true
	}
	if isPositiveNormalSide {
		s.outline = append(s.outline, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
	} else {
		s.outline = append(s.outline, P.Sub(N1.Mul(d)), P.Sub(N2.Mul(d)))
	}
	return false
}

// addJoin adds a line join at point P where the tangent changes from T1 to
// T2. d is half the stroke width; isPositiveNormalSide indicates which
// side of the outline is currently being built.
func (s *Stroker) addJoin(P, T1, T2 geom.Point, params Params, d float32, isPositiveNormalSide bool) {
	cosTheta := T1.Dot(T2)
	sinTheta := T1.Cross(T2)

	if sinTheta > -collinearityThreshold && sinTheta < collinearityThreshold {
		return
	}

	if cosTheta < cuspCosineThreshold {
		// Path doubles back on itself: emit two caps instead of a join.
		s.addCap(P, T1, params, d)
		s.addCap(P, T2.Mul(-1), params, d)
		return
	}

	switch params.Join {
	case JoinMiter, JoinMiterClip:
		// sin(phi/2) where phi is the stroke's interior angle at the corner:
		// phi = pi - theta, so sin(phi/2) = cos(theta/2) = sqrt((1+cosTheta)/2).
		sinHalf := float32(math.Sqrt((1 + float64(cosTheta)) / 2))
		if sinHalf > 0 && 1/sinHalf <= params.MiterLimit+miterEpsilon {
			bisector := miterBisector(T1, T2, isPositiveNormalSide)
			bisectorLen := bisector.Length()
			if bisectorLen > zeroLengthThreshold {
				bisector = bisector.Mul(1 / bisectorLen)
				miterDist := d / sinHalf
				s.outline = append(s.outline, P.Add(bisector.Mul(miterDist)))
			}
			return
		}
		if params.Join == JoinMiterClip {
			s.addMiterClip(P, T1, T2, sinHalf, params, d, isPositiveNormalSide)
			return
		}
		// Plain miter over the limit falls back to a bevel.

	case JoinBevel:
		// Nothing to add: the two offset lines meet at points the caller
		// already placed.

	case JoinRound:
		angle := float32(math.Acos(clamp(float64(cosTheta), -1, 1)))
		if isPositiveNormalSide {
			N1 := geom.Pt(-T1.Y, T1.X)
			if sinTheta > 0 {
				s.addArc(P, d, N1, angle, false)
			} else {
				s.addArc(P, d, N1, -angle, false)
			}
		} else {
			N2 := geom.Pt(T2.Y, -T2.X)
			if sinTheta > 0 {
				s.addArc(P, d, N2, -angle, false)
			} else {
				s.addArc(P, d, N2, angle, false)
			}
		}
	}
}

// miterBisector returns the (unnormalized) direction of the miter spike on
// the given side of the outline.
func miterBisector(T1, T2 geom.Point, isPositiveNormalSide bool) geom.Point {
	N1 := geom.Pt(-T1.Y, T1.X)
	N2 := geom.Pt(-T2.Y, T2.X)
	bisector := N1.Add(N2)
	if !isPositiveNormalSide {
		bisector = bisector.Mul(-1)
	}
	return bisector
}

// addMiterClip adds the clipped-spike geometry for a JoinMiterClip corner
// whose plain miter exceeds MiterLimit: instead of the single miter apex,
// two points are added where each offset edge crosses the line
// perpendicular to the bisector at distance MiterLimit*d from P (spec.md
// §4.3: "MiterClip clips the spike at the limit instead of falling back to
// a bevel").
func (s *Stroker) addMiterClip(P, T1, T2 geom.Point, sinHalf float32, params Params, d float32, isPositiveNormalSide bool) {
	bisector := miterBisector(T1, T2, isPositiveNormalSide)
	bisectorLen := bisector.Length()
	if bisectorLen < zeroLengthThreshold || sinHalf <= 0 {
		return
	}
	bisector = bisector.Mul(1 / bisectorLen)
	clipDist := params.MiterLimit * d

	N1 := geom.Pt(-T1.Y, T1.X)
	N2 := geom.Pt(-T2.Y, T2.X)
	if !isPositiveNormalSide {
		N1, N2 = N1.Mul(-1), N2.Mul(-1)
	}

	p1, ok1 := intersectClipLine(P.Add(N1.Mul(d)), T1, bisector, P.Add(bisector.Mul(clipDist)))
	p2, ok2 := intersectClipLine(P.Add(N2.Mul(d)), T2, bisector, P.Add(bisector.Mul(clipDist)))
	if ok1 {
		s.outline = append(s.outline, p1)
	}
	if ok2 {
		s.outline = append(s.outline, p2)
	}
}

// intersectClipLine intersects the line through lineP with direction
// lineDir against the line through planeP perpendicular to planeNormal.
func intersectClipLine(lineP, lineDir, planeNormal, planeP geom.Point) (geom.Point, bool) {
	denom := lineDir.Dot(planeNormal)
	if denom > -1e-9 && denom < 1e-9 {
		return geom.Point{}, false
	}
	t := planeP.Sub(lineP).Dot(planeNormal) / denom
	return lineP.Add(lineDir.Mul(t)), true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// addArc adds arc vertices to the outline. center is the arc center,
// radius the arc radius, startDir the unit vector from center to the arc's
// start, sweep the sweep angle in radians (positive is CCW). includeStart
// controls whether the start point is emitted (false when the caller
// already placed it).
func (s *Stroker) addArc(center geom.Point, radius float32, startDir geom.Point, sweep float32, includeStart bool) {
	devRadius := radius * s.curScale
	flatness := s.curTolerance

	if devRadius < flatness {
		if includeStart {
			s.outline = append(s.outline, center.Add(startDir.Mul(radius)))
		}
		cos, sin := float32(math.Cos(float64(sweep))), float32(math.Sin(float64(sweep)))
		endDir := geom.Pt(startDir.X*cos-startDir.Y*sin, startDir.X*sin+startDir.Y*cos)
		s.outline = append(s.outline, center.Add(endDir.Mul(radius)))
		return
	}

	absSweep := math.Abs(float64(sweep))
	angleStep := 2 * math.Acos(1-float64(flatness)/float64(devRadius))
	if angleStep <= 0 || math.IsNaN(angleStep) {
		angleStep = math.Pi / 4
	}
	n := int(math.Ceil(absSweep / angleStep))
	if n < 1 {
		n = 1
	}

	dt := sweep / float32(n)
	startI := 0
	if !includeStart {
		startI = 1
	}
	for i := startI; i <= n; i++ {
		angle := float32(i) * dt
		cos, sin := float32(math.Cos(float64(angle))), float32(math.Sin(float64(angle)))
		dir := geom.Pt(startDir.X*cos-startDir.Y*sin, startDir.X*sin+startDir.Y*cos)
		s.outline = append(s.outline, center.Add(dir.Mul(radius)))
	}
}

// addSquare adds a filled square to the outline for a zero-length dash
// segment with square caps: side length 2*d (the line width), oriented by
// the tangent T.
func (s *Stroker) addSquare(center, T geom.Point, d float32) {
	N := geom.Pt(-T.Y, T.X)
	s.outline = append(s.outline,
		center.Add(T.Mul(d)).Add(N.Mul(d)),
		center.Add(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Add(N.Mul(d)),
	)
}
