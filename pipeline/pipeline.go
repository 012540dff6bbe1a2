// Package pipeline implements the raster pipeline of spec.md §4.7/§4.9: a
// tagged sequence of stages that seeds a shader, applies coverage and a clip
// mask, blends against the destination, and stores back to the pixmap.
// Compile performs "Program synthesis": it picks a precision, then builds
// the matching ordered stage list (stage_highp.go/stage_lowp.go) once, so
// each row dispatches a fixed, tail-call-free sequence rather than
// re-deciding which stages apply per pixel.
//
// Lane width is spec.md's vectorization unit (8 wide in high precision, 16
// wide in low precision); per §9's "fall back to scalar arrays behind a
// uniform lane API" instruction, each stage processes a full destination
// row as one scalar-array pass rather than hand-rolled SIMD, since Go has
// no portable SIMD intrinsics to target. The two precisions differ in
// exactly the dimension spec.md cares about: value representation
// (float32 vs. normalized uint16) and which blend modes are implemented,
// not in the shape of the stage sequence itself.
package pipeline

import (
	"goraster.dev/raster2d/blend"
	"goraster.dev/raster2d/mask"
	"goraster.dev/raster2d/pixmap"
	"goraster.dev/raster2d/shader"
)

// Precision selects which engine executes a Program.
type Precision uint8

const (
	HighPrecision Precision = iota
	LowPrecision
)

// Program is a compiled draw: a shader sampling function, a blend mode, an
// optional per-pixel coverage source (scan-converter AA coverage combined
// with any clip mask_u8 multiply), the precision to execute it at, and the
// ordered stage list Compile built for that precision.
type Program struct {
	Precision Precision
	Shader    shader.Shader
	Blend     blend.Mode
	ClipMask  *mask.Mask // nil if no clip mask is bound

	highpStages []highpStage
	lowpStages  []lowpStage
}

// RunRow executes the program against one destination row [xStart, xEnd) at
// device row y, sourcing per-pixel coverage (the scan converter's
// scale_u8/lerp_u8 stage) from coverage. coverage must be exactly
// (xEnd-xStart) long or nil (full coverage, the source_over_rgba fused
// fast path's precondition).
func (p *Program) RunRow(pm *pixmap.Pixmap, y, xStart, xEnd int, coverage []float32) {
	if p.Precision == LowPrecision {
		p.runRowLowp(pm, y, xStart, xEnd, coverage)
		return
	}
	p.runRowHighp(pm, y, xStart, xEnd, coverage)
}

// loadDest loads the current premultiplied destination pixel as a
// blend.RGBA in [0,1].
func loadDest(pm *pixmap.Pixmap, x, y int) blend.RGBA {
	c, ok := pm.Pixel(x, y)
	if !ok {
		return blend.RGBA{}
	}
	return blend.RGBA{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}
