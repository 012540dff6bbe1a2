// Package dash modulates a path by an on/off interval list (C5): it
// produces a new Path consisting only of the "on" portions, with the dash
// phase folded modulo the pattern's total length.
package dash

import (
	"math"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/vpath"
)

// Pattern is a dash interval list with a phase offset, both in
// user-space (pre-transform) units, per spec.md §3.
type Pattern struct {
	// Intervals alternates on,off,on,off,... Must have length >= 2 after
	// normalization (an odd-length list is conceptually doubled) and a
	// positive sum.
	Intervals []float32
	Phase     float32
}

// maxDashIterations bounds the inner walking loop so pathological
// dash/path-length ratios (spec.md §4.4 cites crbug 124652/140642) cannot
// hang: the loop terminates after this many dash transitions regardless of
// how the float64 accumulators round.
const maxDashIterations = 1 << 20

// normalize validates and doubles an odd-length pattern, returning the
// total pattern length. Returns false for an empty or zero/negative-sum
// pattern (spec.md §3: "Zero-sum dash is rejected").
func normalize(p Pattern) ([]float32, float64, bool) {
	if len(p.Intervals) == 0 {
		return nil, 0, false
	}
	for _, v := range p.Intervals {
		if v < 0 || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, 0, false
		}
	}
	intervals := p.Intervals
	if len(intervals)%2 == 1 {
		intervals = append(append([]float32{}, intervals...), intervals...)
	}
	var total float64
	for _, v := range intervals {
		total += float64(v)
	}
	if total <= 0 {
		return nil, 0, false
	}
	return intervals, total, true
}

// Apply dashes every subpath of p (after flattening curves to the given
// tolerance/scale, matching stroke.Stroker's own flattening so dash
// boundaries land consistently) and returns a new Path containing only
// the "on" segments. Returns false if the pattern is degenerate (see
// normalize) or if dashing removes everything.
func Apply(p *vpath.Path, pattern Pattern, tolerance, scale float32) (*vpath.Path, bool) {
	intervals, total, ok := normalize(pattern)
	if !ok {
		return nil, false
	}
	subpaths := p.Flatten(tolerance, scale)
	if len(subpaths) == 0 {
		return nil, false
	}

	phase := math.Mod(float64(pattern.Phase), total)
	if phase < 0 {
		phase += total
	}

	b := vpath.NewBuilder()
	wroteAny := false

	for _, sp := range subpaths {
		if len(sp.Points) < 2 {
			continue
		}
		if emitDashedSubpath(b, sp, intervals, total, phase) {
			wroteAny = true
		}
	}
	if !wroteAny {
		return nil, false
	}
	return b.Finish()
}

// emitDashedSubpath walks one flattened subpath's vertices, splitting it
// into on/off spans per the dash pattern, emitting Move/Line runs for each
// "on" span into b. Returns true if anything was emitted.
func emitDashedSubpath(b *vpath.Builder, sp vpath.Subpath, intervals []float32, total float64, phase float64) bool {
	n := len(intervals)

	dashIdx := 0
	dist := phase
	iterations := 0
	for dist >= float64(intervals[dashIdx%n]) && intervals[dashIdx%n] > 0 && iterations < maxDashIterations {
		dist -= float64(intervals[dashIdx%n])
		dashIdx++
		iterations++
	}
	remaining := float64(intervals[dashIdx%n]) - dist
	isOn := dashIdx%2 == 0

	wrote := false
	inOnRun := false
	var lastEmitted geom.Point

	emitStart := func(p geom.Point) {
		b.MoveTo(p)
		inOnRun = true
		lastEmitted = p
		wrote = true
	}
	emitTo := func(p geom.Point) {
		b.LineTo(p)
		lastEmitted = p
	}
	endRun := func() {
		if inOnRun {
			inOnRun = false
		}
	}

	pts := sp.Points
	segCount := len(pts) - 1
	if sp.Closed {
		segCount++ // implicit closing edge
	}

	iterations = 0
	for i := 0; i < segCount && iterations < maxDashIterations; i++ {
		a := pts[i]
		var bEnd geom.Point
		if i == len(pts)-1 {
			bEnd = pts[0] // closing edge
		} else {
			bEnd = pts[i+1]
		}
		segLen := float64(a.Distance(bEnd))
		segDist := 0.0

		for segDist < segLen && iterations < maxDashIterations {
			iterations++
			segRemaining := segLen - segDist
			if remaining >= segRemaining {
				if isOn {
					if !inOnRun {
						t := float32(segDist / segLen)
						emitStart(lerp(a, bEnd, t))
					}
					emitTo(bEnd)
				} else {
					endRun()
				}
				remaining -= segRemaining
				segDist = segLen
			} else {
				endDist := segDist + remaining
				t := float32(endDist / segLen)
				splitPt := lerp(a, bEnd, t)
				if isOn {
					if !inOnRun {
						t0 := float32(segDist / segLen)
						emitStart(lerp(a, bEnd, t0))
					}
					emitTo(splitPt)
					endRun()
				}
				segDist = endDist
				dashIdx++
				remaining = float64(intervals[dashIdx%n])
				isOn = dashIdx%2 == 0
			}
		}
	}
	_ = lastEmitted
	return wrote
}

func lerp(a, b geom.Point, t float32) geom.Point {
	return geom.Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}
