package geom

import "math"

// Rect is an axis-aligned rectangle with finite float32 edges.
//
// Invariants: Left <= Right, Top <= Bottom, and Width()/Height() are
// representable as finite float32 values.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// NewRect builds a Rect from four edges, returning false if the edges are
// non-finite, not ordered (left<=right, top<=bottom), or the resulting
// width/height would overflow float32.
func NewRect(left, top, right, bottom float32) (Rect, bool) {
	r := Rect{left, top, right, bottom}
	if !r.isValid() {
		return Rect{}, false
	}
	return r, true
}

// NewRectXYWH builds a Rect from an origin and a non-negative size.
func NewRectXYWH(x, y, w, h float32) (Rect, bool) {
	return NewRect(x, y, x+w, y+h)
}

func (r Rect) isValid() bool {
	if !isFiniteF32(r.Left) || !isFiniteF32(r.Top) || !isFiniteF32(r.Right) || !isFiniteF32(r.Bottom) {
		return false
	}
	if r.Left > r.Right || r.Top > r.Bottom {
		return false
	}
	w := float64(r.Right) - float64(r.Left)
	h := float64(r.Bottom) - float64(r.Top)
	if w > math.MaxFloat32 || h > math.MaxFloat32 {
		return false
	}
	return true
}

// Width returns Right-Left.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns Bottom-Top.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// IsEmpty reports whether the rect has zero area.
func (r Rect) IsEmpty() bool { return r.Left >= r.Right || r.Top >= r.Bottom }

// Intersect returns the intersection of r and s, and false if they are
// disjoint (spec.md §7's "intersection of two disjoint rects" error case).
func (r Rect) Intersect(s Rect) (Rect, bool) {
	out := Rect{
		Left:   max32(r.Left, s.Left),
		Top:    max32(r.Top, s.Top),
		Right:  min32(r.Right, s.Right),
		Bottom: min32(r.Bottom, s.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}, false
	}
	return out, true
}

// BoundsOfPoints computes the tight bounding Rect of a non-empty point set.
// Returns false if the set is empty or any point is non-finite.
func BoundsOfPoints(pts []Point) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r := Rect{Left: pts[0].X, Top: pts[0].Y, Right: pts[0].X, Bottom: pts[0].Y}
	for _, p := range pts[1:] {
		if !p.IsFinite() {
			return Rect{}, false
		}
		r.Left = min32(r.Left, p.X)
		r.Top = min32(r.Top, p.Y)
		r.Right = max32(r.Right, p.X)
		r.Bottom = max32(r.Bottom, p.Y)
	}
	if !pts[0].IsFinite() {
		return Rect{}, false
	}
	return r, true
}

// IntRect is an integer-edged rectangle in device coordinates.
//
// Invariants: Left <= Right, Top <= Bottom, and Right-Left, Bottom-Top are
// representable as non-zero uint32 without overflow.
type IntRect struct {
	Left, Top, Right, Bottom int32
}

// NewIntRect validates and builds an IntRect.
func NewIntRect(left, top, right, bottom int32) (IntRect, bool) {
	if left >= right || top >= bottom {
		return IntRect{}, false
	}
	w := int64(right) - int64(left)
	h := int64(bottom) - int64(top)
	if w <= 0 || h <= 0 || w > math.MaxUint32 || h > math.MaxUint32 {
		return IntRect{}, false
	}
	return IntRect{left, top, right, bottom}, true
}

// Width returns Right-Left.
func (r IntRect) Width() int32 { return r.Right - r.Left }

// Height returns Bottom-Top.
func (r IntRect) Height() int32 { return r.Bottom - r.Top }

// Round produces the smallest IntRect enclosing r ("round out"), returning
// false on overflow or non-finite input.
func (r Rect) Round() (IntRect, bool) {
	if !r.isValid() {
		return IntRect{}, false
	}
	left := math.Floor(float64(r.Left))
	top := math.Floor(float64(r.Top))
	right := math.Ceil(float64(r.Right))
	bottom := math.Ceil(float64(r.Bottom))
	if left < math.MinInt32 || right > math.MaxInt32 || top < math.MinInt32 || bottom > math.MaxInt32 {
		return IntRect{}, false
	}
	return NewIntRect(int32(left), int32(top), int32(right), int32(bottom))
}

// ScreenIntRect is an IntRect additionally required to have a non-negative
// origin, i.e. it is expressible directly in device pixel coordinates.
type ScreenIntRect struct {
	IntRect
}

// NewScreenIntRect validates and builds a ScreenIntRect.
func NewScreenIntRect(left, top, right, bottom int32) (ScreenIntRect, bool) {
	if left < 0 || top < 0 {
		return ScreenIntRect{}, false
	}
	r, ok := NewIntRect(left, top, right, bottom)
	if !ok {
		return ScreenIntRect{}, false
	}
	return ScreenIntRect{r}, true
}

// IntSize is a non-zero, overflow-free pixel extent.
type IntSize struct {
	Width, Height uint32
}

// NewIntSize validates and builds an IntSize.
func NewIntSize(w, h uint32) (IntSize, bool) {
	if w == 0 || h == 0 || w == math.MaxUint32 || h == math.MaxUint32 {
		return IntSize{}, false
	}
	return IntSize{w, h}, true
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
