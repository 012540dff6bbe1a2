package stroke

import (
	"goraster.dev/raster2d/dash"
	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/vpath"
)

// segment is a flattened line segment in user space, with precomputed
// unit tangent T and unit normal N (90 deg CCW from T). Mirrors the
// teacher's strokeSegment.
type segment struct {
	A, B geom.Point
	T, N geom.Point
}

// Stroker builds filled outline paths from skeletal paths. A Stroker owns
// scratch buffers that survive across Stroke calls; each returned Path is
// a fresh copy and does not share them.
//
// A Stroker is not safe for concurrent use.
type Stroker struct {
	segs             []segment
	segsOffsets      []int
	subpathClosed    []bool
	degeneratePoints []geom.Point

	outline        []geom.Point
	outlineOffsets []int

	builder *vpath.Builder

	// curTolerance/curScale are the flattening tolerance and device scale
	// passed to the current Stroke call, retained for addArc's segment
	// count estimate.
	curTolerance float32
	curScale     float32
}

// NewStroker returns a ready-to-use Stroker.
func NewStroker() *Stroker {
	return &Stroker{builder: vpath.NewBuilder()}
}

// Stroke converts src into a filled outline Path using the given stroke
// parameters. scale is the maximum scale factor of the transform that will
// eventually be applied to the result (spec.md §4.3's "resolution scale"),
// used to pick a device-accurate curve flattening tolerance; tolerance is
// the flattening tolerance in the same (user-space-scaled-by-scale) units
// as geom.Point coordinates, e.g. 0.25 device pixels.
//
// Returns false if the result is empty (e.g. an empty source path, or a
// zero-sum dash pattern with Params.Dash set).
func (s *Stroker) Stroke(src *vpath.Path, params Params, scale, tolerance float32) (*vpath.Path, bool) {
	if src.IsEmpty() {
		return nil, false
	}
	if scale <= 0 {
		scale = 1
	}
	if tolerance <= 0 {
		tolerance = 0.25
	}

	s.curTolerance = tolerance
	s.curScale = scale
	s.flatten(src, params, scale, tolerance)
	if len(s.segsOffsets) == 0 && len(s.degeneratePoints) == 0 {
		return nil, false
	}

	s.outline = s.outline[:0]
	s.outlineOffsets = s.outlineOffsets[:0]

	if params.Cap == CapRound {
		for _, pt := range s.degeneratePoints {
			start := len(s.outline)
			s.addArc(pt, params.Width/2, geom.Pt(1, 0), 2*pi, true)
			s.outlineOffsets = append(s.outlineOffsets, start)
		}
	} else if params.Cap == CapSquare {
		for _, pt := range s.degeneratePoints {
			start := len(s.outline)
			s.addSquare(pt, geom.Pt(1, 0), params.Width/2)
			s.outlineOffsets = append(s.outlineOffsets, start)
		}
	}

	d := params.Width / 2
	numSubpaths := len(s.segsOffsets)
	for i := range numSubpaths {
		segs := s.subpathSegments(i)
		closed := s.subpathClosed[i]
		start := len(s.outline)
		s.strokeSubpath(segs, closed, params, d)
		if len(s.outline)-start >= 3 {
			s.outlineOffsets = append(s.outlineOffsets, start)
		} else {
			s.outline = s.outline[:start]
		}
	}

	if len(s.outlineOffsets) == 0 {
		return nil, false
	}
	return s.buildOutlinePath()
}

// subpathSegments returns the segments belonging to subpath i.
func (s *Stroker) subpathSegments(i int) []segment {
	start := s.segsOffsets[i]
	end := len(s.segs)
	if i+1 < len(s.segsOffsets) {
		end = s.segsOffsets[i+1]
	}
	return s.segs[start:end]
}

// flatten populates s.segs/segsOffsets/subpathClosed/degeneratePoints from
// src, applying the dash pattern first if params.Dash is set (mirroring
// the teacher's strokeDashedSubpaths/applyDashPattern call order).
func (s *Stroker) flatten(src *vpath.Path, params Params, scale, tolerance float32) {
	s.segs = s.segs[:0]
	s.segsOffsets = s.segsOffsets[:0]
	s.subpathClosed = s.subpathClosed[:0]
	s.degeneratePoints = s.degeneratePoints[:0]

	var subpaths []vpath.Subpath
	if params.Dash != nil {
		dashed, ok := dash.Apply(src, *params.Dash, tolerance, scale)
		if !ok {
			return
		}
		subpaths = dashed.Flatten(tolerance, scale)
	} else {
		subpaths = src.Flatten(tolerance, scale)
	}

	for _, sp := range subpaths {
		if len(sp.Points) == 1 {
			s.degeneratePoints = append(s.degeneratePoints, sp.Points[0])
			continue
		}
		start := len(s.segs)
		pts := sp.Points
		n := len(pts) - 1
		if sp.Closed {
			n++
		}
		for i := 0; i < n; i++ {
			a := pts[i]
			var b geom.Point
			if i == len(pts)-1 {
				b = pts[0]
			} else {
				b = pts[i+1]
			}
			s.addSegment(a, b)
		}
		if len(s.segs) == start {
			s.degeneratePoints = append(s.degeneratePoints, pts[0])
			continue
		}
		s.segsOffsets = append(s.segsOffsets, start)
		s.subpathClosed = append(s.subpathClosed, sp.Closed)
	}
}

func (s *Stroker) addSegment(a, b geom.Point) {
	d := b.Sub(a)
	t, ok := d.Normalize()
	if !ok || d.Length() < zeroLengthThreshold {
		return
	}
	n := geom.Pt(-t.Y, t.X)
	s.segs = append(s.segs, segment{A: a, B: b, T: t, N: n})
}

// buildOutlinePath converts the accumulated outline polygons into a
// vpath.Path: one closed subpath per polygon. The scan converter fills the
// result with the nonzero rule so overlapping polygons (joins, dashes,
// degenerate dots) composite correctly.
func (s *Stroker) buildOutlinePath() (*vpath.Path, bool) {
	b := s.builder.Reset()
	for i, start := range s.outlineOffsets {
		end := len(s.outline)
		if i+1 < len(s.outlineOffsets) {
			end = s.outlineOffsets[i+1]
		}
		poly := s.outline[start:end]
		if len(poly) < 3 {
			continue
		}
		b.MoveTo(poly[0])
		for _, p := range poly[1:] {
			b.LineTo(p)
		}
		b.Close()
	}
	return b.Finish()
}

const pi = 3.14159265358979323846
