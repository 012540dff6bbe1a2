package scan

import (
	"math"
	"slices"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/vpath"
)

// AliasedRasterizer converts device-space paths into binary inside/outside
// pixel runs, sampling each scanline at its pixel-center row y+0.5 rather
// than accumulating fractional coverage. It is adapted from the edge model
// shared with Rasterizer (addEdge/collectPathEdges), reworking rasteriser.go's
// unused per-edge crossings bookkeeping into a genuine non-AA scanline
// fill: intercepts are computed once per row and paired by the fill rule
// into contiguous "on" spans, matching spec.md §4.5's Aliased mode.
//
// A AliasedRasterizer is not safe for concurrent use.
type AliasedRasterizer struct {
	CTM      geom.Transform
	Clip     geom.IntRect
	Flatness float32

	edges []edge

	edgeBBoxFirst bool
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64

	xs []float64
	w  []int
}

// NewAliasedRasterizer returns an AliasedRasterizer clipped to clip.
func NewAliasedRasterizer(clip geom.IntRect) *AliasedRasterizer {
	return &AliasedRasterizer{CTM: geom.Identity, Clip: clip, Flatness: defaultFlatness}
}

// Run is a contiguous span of "on" pixels on one scanline, [X, X+Len).
type Run struct {
	Y, X, Len int
}

// Fill rasterises p using the given fill rule, calling emit once per
// contiguous on-span per scanline touched.
func (r *AliasedRasterizer) Fill(p *vpath.Path, rule FillRule, emit func(run Run)) {
	xMin, xMax, yMin, yMax, ok := r.collectPathEdges(p)
	if !ok {
		return
	}

	for y := yMin; y < yMax; y++ {
		yCenter := float64(y) + 0.5
		r.xs = r.xs[:0]
		r.w = r.w[:0]

		for i := range r.edges {
			e := &r.edges[i]
			edgeYMin, edgeYMax := min(e.y0, e.y1), max(e.y0, e.y1)
			if yCenter < edgeYMin || yCenter >= edgeYMax {
				continue
			}
			x := e.x0 + e.dxdy*(yCenter-e.y0)
			winding := 1
			if e.y1 < e.y0 {
				winding = -1
			}
			r.xs = append(r.xs, x)
			r.w = append(r.w, winding)
		}
		if len(r.xs) == 0 {
			continue
		}

		r.sortByX()
		r.emitRowRuns(y, xMin, xMax, rule, emit)
	}
}

// sortByX sorts r.xs (and r.w in lockstep) ascending.
func (r *AliasedRasterizer) sortByX() {
	idx := make([]int, len(r.xs))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int {
		if r.xs[a] < r.xs[b] {
			return -1
		}
		if r.xs[a] > r.xs[b] {
			return 1
		}
		return 0
	})
	xs := make([]float64, len(r.xs))
	w := make([]int, len(r.w))
	for i, j := range idx {
		xs[i], w[i] = r.xs[j], r.w[j]
	}
	r.xs, r.w = xs, w
}

// emitRowRuns pairs sorted intercepts by the fill rule and emits integer
// pixel spans, clamped to [xMin, xMax).
func (r *AliasedRasterizer) emitRowRuns(y, xMin, xMax int, rule FillRule, emit func(run Run)) {
	winding := 0
	insideStart := math.Inf(1)
	inside := false

	flush := func(xStart, xEnd float64) {
		lo := max(int(math.Round(xStart)), xMin)
		hi := min(int(math.Round(xEnd)), xMax)
		if hi > lo {
			emit(Run{Y: y, X: lo, Len: hi - lo})
		}
	}

	for i, x := range r.xs {
		wasInside := inside
		if rule == NonZero {
			winding += r.w[i]
			inside = winding != 0
		} else {
			winding++
			inside = winding%2 != 0
		}
		if inside && !wasInside {
			insideStart = x
		} else if !inside && wasInside {
			flush(insideStart, x)
		}
	}
}

func (r *AliasedRasterizer) collectPathEdges(p *vpath.Path) (xMin, xMax, yMin, yMax int, ok bool) {
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

func (r *AliasedRasterizer) addEdge(p0, p1 geom.Point) {
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
