// Package scan implements the anti-aliased scan converter (C6): it walks a
// flattened path's edges in device space and produces, for each scanline
// touched, a row of fractional pixel coverage values. It is a near-verbatim
// port of the teacher's raster.go fill/fillSmallPath/fillLargePath/
// accumulateEdge/integrateScanline* functions, generalized from
// seehuhn.de/go/geom/path.Data to vpath.Path.
package scan

import (
	"cmp"
	"math"
	"slices"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/vpath"
)

// FillRule selects how overlapping subpaths and self-intersections combine.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// edge is a line segment in device coordinates, y-monotonic by construction
// (horizontal edges are dropped during collection).
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

// Rasterizer converts device-space paths into pixel coverage. Create one
// instance and reuse it across calls; its buffers grow as needed but never
// shrink, giving zero allocations in steady state.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM transforms from the path's own coordinate space into device
	// space. Must be non-singular.
	CTM geom.Transform

	// Clip bounds output to this device-coordinate rectangle.
	Clip geom.IntRect

	// Flatness controls curve approximation accuracy in device pixels.
	Flatness float32

	smallPathThreshold int

	cover       []float32
	area        []float32
	edges       []edge
	activeIdx   []int
	rowHasEdges []bool

	edgeBBoxFirst bool
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewRasterizer returns a Rasterizer clipped to clip, with the default
// flattening tolerance.
func NewRasterizer(clip geom.IntRect) *Rasterizer {
	return &Rasterizer{
		CTM:                geom.Identity,
		Clip:               clip,
		Flatness:           defaultFlatness,
		smallPathThreshold: smallPathThreshold,
	}
}

// defaultFlatness is the default curve flattening tolerance in device
// pixels; 0.25 is below the threshold of visual perception.
const defaultFlatness = 0.25

// smallPathThreshold is the maximum bounding-box area (in pixels) for using
// 2D buffers (Approach A); larger paths use the active edge list
// (Approach B).
const smallPathThreshold = 65536

// horizontalEdgeThreshold is the minimum vertical extent for an edge to
// contribute to coverage.
const horizontalEdgeThreshold = 1e-10

// Fill rasterises p using the given fill rule. The emit callback receives
// coverage row-by-row; its slice argument is only valid during the call.
func (r *Rasterizer) Fill(p *vpath.Path, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.collectPathEdges(p)
	if !ok {
		return
	}

	width := xMax - xMin
	height := yMax - yMin
	if width*height < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, rule, emit)
	}
}

func (r *Rasterizer) collectPathEdges(p *vpath.Path) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true

	var current, subpathStart geom.Point
	haveCurrent := false

	p.Segments(false, func(seg vpath.Segment) bool {
		switch seg.Verb {
		case vpath.Move:
			current = seg.Points[0]
			subpathStart = current
			haveCurrent = true
		case vpath.Line:
			if haveCurrent {
				r.addEdge(current, seg.Points[0])
			}
			current = seg.Points[0]
		case vpath.Quad:
			if haveCurrent {
				flattenQuad(current, seg.Points[0], seg.Points[1], r.Flatness, r.CTM.ApplyVector, func(_, to geom.Point) {
					r.addEdge(current, to)
					current = to
				})
			}
			current = seg.Points[1]
		case vpath.Cubic:
			if haveCurrent {
				flattenCubic(current, seg.Points[0], seg.Points[1], seg.Points[2], r.Flatness, r.CTM.ApplyVector, func(_, to geom.Point) {
					r.addEdge(current, to)
					current = to
				})
			}
			current = seg.Points[2]
		case vpath.Close:
			if haveCurrent && current != subpathStart {
				r.addEdge(current, subpathStart)
			}
			current = subpathStart
		}
		return true
	})

	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	clipXMin, clipXMax := int(r.Clip.Left), int(r.Clip.Right)
	clipYMin, clipYMax := int(r.Clip.Top), int(r.Clip.Bottom)

	xMin = max(int(math.Floor(r.edgeDevXMin)), clipXMin)
	xMax = min(int(math.Floor(r.edgeDevXMax))+1, clipXMax)
	yMin = max(int(math.Floor(r.edgeDevYMin)), clipYMin)
	yMax = min(int(math.Floor(r.edgeDevYMax))+1, clipYMax)

	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge transforms p0/p1 by CTM into device space and records the edge,
// skipping near-horizontal segments.
func (r *Rasterizer) addEdge(p0, p1 geom.Point) {
	d0 := r.CTM.Apply(p0)
	d1 := r.CTM.Apply(p1)

	dy := float64(d1.Y - d0.Y)
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	dx0, dy0 := float64(d0.X), float64(d0.Y)
	dx1, dy1 := float64(d1.X), float64(d1.Y)
	dxdy := (dx1 - dx0) / dy

	r.edges = append(r.edges, edge{x0: dx0, y0: dy0, x1: dx1, y1: dy1, dxdy: dxdy})

	if r.edgeBBoxFirst {
		r.edgeDevXMin, r.edgeDevXMax = min(dx0, dx1), max(dx0, dx1)
		r.edgeDevYMin, r.edgeDevYMax = min(dy0, dy1), max(dy0, dy1)
		r.edgeBBoxFirst = false
	} else {
		r.edgeDevXMin = min(r.edgeDevXMin, min(dx0, dx1))
		r.edgeDevXMax = max(r.edgeDevXMax, max(dx0, dx1))
		r.edgeDevYMin = min(r.edgeDevYMin, min(dy0, dy1))
		r.edgeDevYMax = max(r.edgeDevYMax, max(dy0, dy1))
	}
}

// accumulateEdge adds e's contribution to the cover/area buffers for
// scanline y. The buffers are indexed by (x - bboxXMin).
func (r *Rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xAtYTop := e.x0 + e.dxdy*(yTop-e.y0)
	xAtYBot := e.x0 + e.dxdy*(yBot-e.y0)
	xLeft, xRight := xAtYTop, xAtYBot
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}

	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		r.accumulateEdgeInColumn(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yAtPixLeft := e.y0 + dydx*(float64(pix)-e.x0)
		yAtPixRight := e.y0 + dydx*(float64(pix+1)-e.x0)

		segYMin := max(min(yAtPixLeft, yAtPixRight), yTop)
		segYMax := min(max(yAtPixLeft, yAtPixRight), yBot)
		segDy := segYMax - segYMin
		if segDy <= 0 {
			continue
		}

		coverVal := sign * float32(segDy)
		yMid := (segYMin + segYMax) / 2
		xMid := e.x0 + e.dxdy*(yMid-e.y0)
		xFrac := xMid - float64(pix)
		areaVal := coverVal * float32(1-xFrac)

		if pix < bboxXMin {
			cover[0] += coverVal
			area[0] += coverVal
		} else if pix < bboxXMax {
			idx := pix - bboxXMin
			cover[idx] += coverVal
			area[idx] += areaVal
		}
	}
}

func (r *Rasterizer) accumulateEdgeInColumn(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)
	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	xFrac := xMid - float64(pix)
	areaVal := coverVal * float32(1-xFrac)

	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += areaVal
}

func integrateScanlineNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		cov := raw
		if raw < 0 {
			cov = -raw
		}
		if cov > 1 {
			cov = 1
		}
		cover[i] = cov
	}
}

func integrateScanlineEvenOdd(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		mod := raw - 2*float32(int(raw/2))
		cover[i] = 1 - abs32(1-mod)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros returns the non-zero portion of coverage and its starting
// offset, or nil, 0 if coverage is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

func (r *Rasterizer) fillSmallPath(xMin, xMax, yMin, yMax int, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]

		var edgeYMin, edgeYMax int
		if e.y0 < e.y1 {
			edgeYMin, edgeYMax = int(math.Floor(e.y0)), int(math.Floor(e.y1))+1
		} else {
			edgeYMin, edgeYMax = int(math.Floor(e.y1)), int(math.Floor(e.y0))+1
		}
		edgeYMin = max(edgeYMin, yMin)
		edgeYMax = min(edgeYMax, yMax)

		for y := edgeYMin; y < edgeYMax; y++ {
			row := y - yMin
			rowOffset := row * width
			r.accumulateEdge(e, y, r.cover[rowOffset:rowOffset+width], r.area[rowOffset:rowOffset+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		y := yMin + row
		rowOffset := row * width
		coverage := r.cover[rowOffset : rowOffset+width]
		if rule == NonZero {
			integrateScanlineNonZero(coverage, r.area[rowOffset:rowOffset+width])
		} else {
			integrateScanlineEvenOdd(coverage, r.area[rowOffset:rowOffset+width])
		}
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

func (r *Rasterizer) fillLargePath(xMin, xMax, yMin, yMax int, rule FillRule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for nextEdge < len(r.edges) {
			e := &r.edges[nextEdge]
			if min(e.y0, e.y1) >= yfNext {
				break
			}
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}

		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		xMinBound := width
		xMaxBound := -1

		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]

			if max(e.y0, e.y1) <= yf {
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}

			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)

			yTop := max(yf, min(e.y0, e.y1))
			yBot := min(yfNext, max(e.y0, e.y1))
			if yBot > yTop {
				yMid := (yTop + yBot) / 2
				xMidF := e.x0 + e.dxdy*(yMid-e.y0)
				x := int(math.Floor(xMidF))
				x = max(x, xMin)
				x = min(x, xMax-1)
				xIdx := x - xMin
				if xIdx < xMinBound {
					xMinBound = xIdx
				}
				if xIdx > xMaxBound {
					xMaxBound = xIdx
				}
			}

			i++
		}

		if xMaxBound < 0 {
			continue
		}

		if rule == NonZero {
			integrateScanlineNonZero(r.cover, r.area)
		} else {
			integrateScanlineEvenOdd(r.cover, r.area)
		}
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}
