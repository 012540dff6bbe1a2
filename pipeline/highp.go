package pipeline

import (
	stdcolor "image/color"

	"goraster.dev/raster2d/blend"
	"goraster.dev/raster2d/pixmap"
)

// runRowHighp is the high-precision engine: it walks p.highpStages in
// order across the whole row, once per stage, per spec.md §4.7's
// tail-call-free ordered stage sequence (see stage_highp.go).
func (p *Program) runRowHighp(pm *pixmap.Pixmap, y, xStart, xEnd int, coverage []float32) {
	n := xEnd - xStart
	if n <= 0 {
		return
	}
	lanes := newHighpLanes(n, coverage)
	for _, stage := range p.highpStages {
		stage(pm, y, xStart, lanes)
	}
}

func toPixel(c blend.RGBA) stdcolor.RGBA {
	clamp := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	a := clamp(c.A)
	r, g, b := clamp(c.R), clamp(c.G), clamp(c.B)
	if r > a {
		r = a
	}
	if g > a {
		g = a
	}
	if b > a {
		b = a
	}
	return stdcolor.RGBA{R: r, G: g, B: b, A: a}
}
