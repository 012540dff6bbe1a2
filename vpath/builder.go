package vpath

import "goraster.dev/raster2d/geom"

// Builder accumulates verbs and points for a Path, enforcing the
// well-formedness invariants of spec.md §3:
//   - the first verb of any subpath is Move; a stray Line/Quad/Cubic before
//     any Move is promoted to Move(0,0) followed by the verb;
//   - consecutive Moves without intervening geometry collapse to the last;
//   - a Close with no geometry in its subpath is dropped.
//
// A Builder can reclaim the backing storage of a Path it consumed (ReclaimFrom),
// so callers that rebuild paths every frame avoid reallocating.
type Builder struct {
	verbs  []Verb
	points []geom.Point

	haveMove       bool // at least one Move has been issued
	sawGeometry    bool // the current subpath has a Line/Quad/Cubic
	subpathStartAt int  // verb index of the most recent Move
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Reset clears b, keeping its own storage for reuse. ReclaimFrom is the
// variant that takes over a Path's buffers instead.
func (b *Builder) Reset() *Builder {
	b.verbs = b.verbs[:0]
	b.points = b.points[:0]
	b.haveMove = false
	b.sawGeometry = false
	b.subpathStartAt = 0
	return b
}

// ReclaimFrom resets b and reuses p's backing arrays as scratch storage.
// p must not be used afterward.
func (b *Builder) ReclaimFrom(p *Path) *Builder {
	if p != nil {
		b.verbs = p.verbs[:0]
		b.points = p.points[:0]
	} else {
		b.verbs = b.verbs[:0]
		b.points = b.points[:0]
	}
	b.haveMove = false
	b.sawGeometry = false
	b.subpathStartAt = 0
	return b
}

func (b *Builder) ensureMove() {
	if !b.haveMove {
		b.rawMoveTo(geom.Point{})
	}
}

func (b *Builder) rawMoveTo(p geom.Point) {
	if b.haveMove && len(b.verbs) > 0 && b.verbs[len(b.verbs)-1] == Move {
		// Consecutive Moves collapse to the last one.
		b.points[len(b.points)-1] = p
		return
	}
	b.subpathStartAt = len(b.verbs)
	b.verbs = append(b.verbs, Move)
	b.points = append(b.points, p)
	b.haveMove = true
	b.sawGeometry = false
}

// MoveTo starts a new subpath at p.
func (b *Builder) MoveTo(p geom.Point) *Builder {
	b.rawMoveTo(p)
	return b
}

// LineTo appends a line segment ending at p.
func (b *Builder) LineTo(p geom.Point) *Builder {
	b.ensureMove()
	b.verbs = append(b.verbs, Line)
	b.points = append(b.points, p)
	b.sawGeometry = true
	return b
}

// QuadTo appends a quadratic Bezier with control point c and endpoint p.
func (b *Builder) QuadTo(c, p geom.Point) *Builder {
	b.ensureMove()
	b.verbs = append(b.verbs, Quad)
	b.points = append(b.points, c, p)
	b.sawGeometry = true
	return b
}

// CubicTo appends a cubic Bezier with control points c1,c2 and endpoint p.
func (b *Builder) CubicTo(c1, c2, p geom.Point) *Builder {
	b.ensureMove()
	b.verbs = append(b.verbs, Cubic)
	b.points = append(b.points, c1, c2, p)
	b.sawGeometry = true
	return b
}

// Close closes the current subpath. A Close on a subpath with no geometry
// since its Move is silently dropped.
func (b *Builder) Close() *Builder {
	if !b.haveMove || !b.sawGeometry {
		return b
	}
	b.verbs = append(b.verbs, Close)
	b.haveMove = false
	b.sawGeometry = false
	return b
}

// PushRect appends a closed rectangular subpath, clockwise from the
// top-left corner.
func (b *Builder) PushRect(r geom.Rect) *Builder {
	return b.MoveTo(geom.Pt(r.Left, r.Top)).
		LineTo(geom.Pt(r.Right, r.Top)).
		LineTo(geom.Pt(r.Right, r.Bottom)).
		LineTo(geom.Pt(r.Left, r.Bottom)).
		Close()
}

// kappa is the cubic-Bezier magic number approximating a quarter circle.
const kappa = 0.5522847498307936

// PushCircle appends a closed circular subpath approximated by four cubic
// Beziers, centered at c with the given radius.
func (b *Builder) PushCircle(c geom.Point, radius float32) *Builder {
	k := radius * kappa
	return b.MoveTo(geom.Pt(c.X+radius, c.Y)).
		CubicTo(geom.Pt(c.X+radius, c.Y-k), geom.Pt(c.X+k, c.Y-radius), geom.Pt(c.X, c.Y-radius)).
		CubicTo(geom.Pt(c.X-k, c.Y-radius), geom.Pt(c.X-radius, c.Y-k), geom.Pt(c.X-radius, c.Y)).
		CubicTo(geom.Pt(c.X-radius, c.Y+k), geom.Pt(c.X-k, c.Y+radius), geom.Pt(c.X, c.Y+radius)).
		CubicTo(geom.Pt(c.X+k, c.Y+radius), geom.Pt(c.X+radius, c.Y+k), geom.Pt(c.X+radius, c.Y)).
		Close()
}

// FromRect returns a new closed rectangular Path.
func FromRect(r geom.Rect) (*Path, bool) {
	return NewBuilder().PushRect(r).Finish()
}

// FromBounds is an alias of FromRect, named to match spec.md §6's
// from_bound constructor.
func FromBounds(r geom.Rect) (*Path, bool) {
	return FromRect(r)
}

// Finish produces an immutable Path from the accumulated verbs/points.
// Returns false if the path is empty or contains a non-finite coordinate.
func (b *Builder) Finish() (*Path, bool) {
	if len(b.verbs) == 0 {
		return nil, false
	}
	for _, p := range b.points {
		if !p.IsFinite() {
			return nil, false
		}
	}
	verbs := make([]Verb, len(b.verbs))
	copy(verbs, b.verbs)
	points := make([]geom.Point, len(b.points))
	copy(points, b.points)

	out := &Path{verbs: verbs, points: points}
	out.bounds, out.hasBounds = geom.BoundsOfPoints(points)
	return out, true
}
