package scan

import "goraster.dev/raster2d/geom"

// HairlinePixelFunc receives one device pixel's hairline coverage in
// [0,1]. The same pixel may be emitted more than once across adjacent
// segments of a polyline (e.g. at a join); callers composite each call
// in turn rather than expecting a single authoritative value per pixel,
// exactly as Skia's own hairline blitters do.
type HairlinePixelFunc func(x, y int, coverage float32)

// Hairline rasterizes a one-device-pixel-wide antialiased line along pts
// (already in device space) by emitting per-pixel coverage to emit, per
// spec.md GLOSSARY's "Hairline" entry: "a stroke whose width is below one
// pixel, rendered as a coverage-modulated one-pixel-wide line rather than
// via the offset-curve stroker."
//
// Ported from gogpu-gg's internal/raster hairline_aa.go (itself based on
// Skia/tiny-skia's hairline_aa.rs): a mostly-horizontal segment is walked
// column by column, splitting each column's coverage between the two
// vertically adjacent rows by the segment's fractional y position there;
// a mostly-vertical segment walks rows and splits between adjacent
// columns the same way. Unlike the source, this works directly in
// float32 device coordinates rather than FDot6/FDot16 fixed point, since
// the rest of this module is already float32 throughout, and it folds
// the source's separate global-alpha parameter into the emitted
// coverage, since the caller (the raster pipeline) already applies
// shader/blend/coverage compositing uniformly for every other draw path.
func Hairline(pts []geom.Point, emit HairlinePixelFunc) {
	for i := 0; i+1 < len(pts); i++ {
		hairlineSegment(pts[i], pts[i+1], emit)
	}
}

func hairlineSegment(a, b geom.Point, emit HairlinePixelFunc) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return
	}
	if abs32(dx) >= abs32(dy) {
		horishHairline(a, b, emit)
	} else {
		vertishHairline(a, b, emit)
	}
}

// horishHairline walks a mostly-horizontal segment column by column.
func horishHairline(a, b geom.Point, emit HairlinePixelFunc) {
	if a.X > b.X {
		a, b = b, a
	}
	dx := b.X - a.X
	var slope float32
	if dx != 0 {
		slope = (b.Y - a.Y) / dx
	}

	istart := int(floor32(a.X))
	istop := int(ceil32(b.X))
	if istop <= istart {
		istop = istart + 1
	}

	for x := istart; x < istop; x++ {
		colStart, colEnd := clampSpan(float32(x), float32(x+1), a.X, b.X)
		hCov := colEnd - colStart
		if hCov <= 0 {
			continue
		}
		xc := colStart + hCov/2
		y := a.Y + slope*(xc-a.X)
		emitSplit(x, y, hCov, emit, false)
	}
}

// vertishHairline walks a mostly-vertical segment row by row.
func vertishHairline(a, b geom.Point, emit HairlinePixelFunc) {
	if a.Y > b.Y {
		a, b = b, a
	}
	dy := b.Y - a.Y
	var slope float32
	if dy != 0 {
		slope = (b.X - a.X) / dy
	}

	istart := int(floor32(a.Y))
	istop := int(ceil32(b.Y))
	if istop <= istart {
		istop = istart + 1
	}

	for y := istart; y < istop; y++ {
		rowStart, rowEnd := clampSpan(float32(y), float32(y+1), a.Y, b.Y)
		vCov := rowEnd - rowStart
		if vCov <= 0 {
			continue
		}
		yc := rowStart + vCov/2
		x := a.X + slope*(yc-a.Y)
		emitSplit(y, x, vCov, emit, true)
	}
}

// clampSpan intersects [lo,hi) with [loSeg,hiSeg].
func clampSpan(lo, hi, loSeg, hiSeg float32) (float32, float32) {
	if loSeg > lo {
		lo = loSeg
	}
	if hiSeg < hi {
		hi = hiSeg
	}
	return lo, hi
}

// emitSplit distributes perpendicular-axis coverage perpCov between the
// two pixels straddling fv (the perpendicular coordinate, e.g. y for a
// horish segment) proportional to fv's offset from the nearer pixel
// center, then emits both through emit. transposed swaps (x,y) back for
// the vertish case, where fixed is the row and fv is the column.
func emitSplit(fixed int, fv float32, perpCov float32, emit HairlinePixelFunc, transposed bool) {
	fy := fv - 0.5
	lowRow := int(floor32(fy))
	frac := fy - float32(lowRow)

	covLow := perpCov * (1 - frac)
	covHigh := perpCov * frac

	if transposed {
		if covLow > 0 {
			emit(lowRow, fixed, covLow)
		}
		if covHigh > 0 {
			emit(lowRow+1, fixed, covHigh)
		}
		return
	}
	if covLow > 0 {
		emit(fixed, lowRow, covLow)
	}
	if covHigh > 0 {
		emit(fixed, lowRow+1, covHigh)
	}
}

func floor32(v float32) float32 {
	i := float32(int32(v))
	if v < 0 && i != v {
		i--
	}
	return i
}

func ceil32(v float32) float32 {
	i := float32(int32(v))
	if v > 0 && i != v {
		i++
	}
	return i
}
