// Package vpath implements the path model (C3): an immutable container of
// verbs and points, built through Builder and walked through Segments.
package vpath

import (
	"goraster.dev/raster2d/geom"
)

// Verb identifies a path command. Point counts follow spec.md §3: Move 1,
// Line 1, Quad 2, Cubic 3, Close 0.
type Verb uint8

const (
	Move Verb = iota
	Line
	Quad
	Cubic
	Close
)

// NumPoints returns how many points follow a verb of this kind.
func (v Verb) NumPoints() int {
	switch v {
	case Move, Line:
		return 1
	case Quad:
		return 2
	case Cubic:
		return 3
	default: // Close
		return 0
	}
}

// Path is an immutable sequence of verbs and points. Construct one with
// Builder; a Path's Bounds are computed once at Finish and cached.
type Path struct {
	verbs  []Verb
	points []geom.Point
	bounds geom.Rect
	hasBounds bool
}

// Verbs returns the path's verb sequence. The caller must not mutate it.
func (p *Path) Verbs() []Verb { return p.verbs }

// Points returns the path's flat point sequence. The caller must not
// mutate it.
func (p *Path) Points() []geom.Point { return p.points }

// IsEmpty reports whether the path has no verbs at all.
func (p *Path) IsEmpty() bool { return p == nil || len(p.verbs) == 0 }

// Bounds returns the cached bounding rectangle of all points in the path,
// and false if the path is empty.
func (p *Path) Bounds() (geom.Rect, bool) {
	if p == nil || !p.hasBounds {
		return geom.Rect{}, false
	}
	return p.bounds, true
}

// LastPoint returns the final point written to the path (the current
// point a new subpath command would continue from), and false if the path
// has no points.
func (p *Path) LastPoint() (geom.Point, bool) {
	if p == nil || len(p.points) == 0 {
		return geom.Point{}, false
	}
	return p.points[len(p.points)-1], true
}

// Transform returns a new Path with every point transformed by t. Returns
// false (and the original path unchanged) if any transformed coordinate is
// non-finite, per spec.md §4.2.
func (p *Path) Transform(t geom.Transform) (*Path, bool) {
	if p.IsEmpty() {
		return p, true
	}
	pts := make([]geom.Point, len(p.points))
	for i, pt := range p.points {
		tp := t.Apply(pt)
		if !tp.IsFinite() {
			return p, false
		}
		pts[i] = tp
	}
	out := &Path{
		verbs:  p.verbs, // verbs are unaffected by transform; safe to share
		points: pts,
	}
	out.bounds, out.hasBounds = geom.BoundsOfPoints(pts)
	return out, true
}
