// Package raster2d is the module's root package: the external-interface
// entry points of spec.md §6 (Canvas/FillPath/StrokePath/FillRect/Fill/
// DrawPixmap), adapting the teacher's RenderExample stub (package render,
// render.go) into real draw calls that orchestrate
// stroke -> dash -> scan -> pipeline exactly as spec.md §2's "Flow"
// paragraph describes: geometry is built and transformed, optionally
// stroked and dashed, rasterized into coverage runs, and those runs are
// fed to a compiled pipeline.Program that samples the paint's shader and
// composites into the destination pixmap.
package raster2d

import (
	"goraster.dev/raster2d/dash"
	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/gradient"
	"goraster.dev/raster2d/mask"
	"goraster.dev/raster2d/paint"
	"goraster.dev/raster2d/pipeline"
	"goraster.dev/raster2d/pixmap"
	"goraster.dev/raster2d/scan"
	"goraster.dev/raster2d/shader"
	"goraster.dev/raster2d/stroke"
	"goraster.dev/raster2d/vpath"
)

// hairlineCapExtent is the per-endpoint extension applied for Square and
// Round caps on a hairline stroke (half of the one-device-pixel width).
// Round is approximated as Square here: at a one-pixel width the two
// differ by a fraction of a pixel, well under the AA rounding this module
// already performs, and spec.md's hairline definition calls for a single
// coverage-modulated line rather than a second offset-curve cap pass.
const hairlineCapExtent = 0.5

// defaultFlatness matches the scan converter and stroker's own default
// (scan.defaultFlatness / stroke's internal tolerance), used whenever a
// Canvas hasn't been given an explicit override.
const defaultFlatness = 0.25

// Canvas binds a destination pixmap to the current transform and clip
// mask that every draw call on it uses; it owns no scratch state of its
// own (the stroker, dasher, and rasterizer below it each own theirs).
type Canvas struct {
	Pixmap   *pixmap.Pixmap
	CTM      geom.Transform
	ClipMask *mask.Mask // nil means unclipped

	stroker *stroke.Stroker
}

// NewCanvas returns a Canvas targeting pm with the identity transform and
// no clip.
func NewCanvas(pm *pixmap.Pixmap) *Canvas {
	return &Canvas{Pixmap: pm, CTM: geom.Identity, stroker: stroke.NewStroker()}
}

// FillPath rasterizes p under the canvas's current transform and clip,
// compositing pnt's shader into the pixmap via a compiled pipeline.Program.
func (c *Canvas) FillPath(p *vpath.Path, pnt paint.Paint) {
	c.fill(p, pnt.FillRule, pnt)
}

// StrokePath strokes p with params at the canvas's current resolution
// scale, then fills the resulting outline — spec.md §2's intended
// composition of the stroker with the fill path. A zero Width is
// spec.md §3/GLOSSARY's "hairline" and bypasses the offset-curve stroker
// entirely in favor of hairlineStroke's direct coverage rasterization.
func (c *Canvas) StrokePath(p *vpath.Path, params stroke.Params, pnt paint.Paint) {
	if params.Width == 0 {
		c.hairlineStroke(p, params, pnt)
		return
	}
	scale := c.CTM.MaxScale()
	outline, ok := c.stroker.Stroke(p, params, scale, defaultFlatness)
	if !ok {
		return
	}
	c.fill(outline, scan.NonZero, pnt)
}

// hairlineStroke implements spec.md GLOSSARY's "Hairline" entry: "a
// stroke whose width is below one pixel, rendered as a coverage-modulated
// one-pixel-wide line rather than via the offset-curve stroker." StrokePath
// routes only Width == 0 here; any positive width, including widths below
// one pixel, goes through the offset-curve stroker. Dashing
// is applied first (mirroring stroke.Stroker.flatten's call order), the
// result is flattened to polylines and transformed to device space, and
// each polyline is rasterized directly by scan.Hairline, compositing
// straight through the same pipeline.Program every other draw call uses.
func (c *Canvas) hairlineStroke(p *vpath.Path, params stroke.Params, pnt paint.Paint) {
	src := p
	scale := c.CTM.MaxScale()
	if params.Dash != nil {
		dashed, ok := dash.Apply(p, *params.Dash, defaultFlatness, scale)
		if !ok {
			return
		}
		src = dashed
	}

	prog := pipeline.Compile(pnt.Shader, pnt.BlendMode, c.ClipMask, pnt.ForceHighPrecision)
	emit := func(x, y int, cov float32) {
		if cov <= 0 {
			return
		}
		if cov > 1 {
			cov = 1
		}
		prog.RunRow(c.Pixmap, y, x, x+1, []float32{cov})
	}

	for _, sub := range src.Flatten(defaultFlatness, scale) {
		if len(sub.Points) < 2 {
			continue
		}
		pts := make([]geom.Point, len(sub.Points))
		for i, pt := range sub.Points {
			pts[i] = c.CTM.Apply(pt)
		}
		if sub.Closed {
			pts = append(pts, pts[0])
		} else {
			extendHairlineCaps(pts, params.Cap)
		}
		scan.Hairline(pts, emit)
	}
}

// extendHairlineCaps extends an open polyline's two endpoints along their
// segment tangents for Square/Round caps; Butt leaves them untouched.
func extendHairlineCaps(pts []geom.Point, cap stroke.Cap) {
	if cap == stroke.CapButt {
		return
	}
	extend := func(anchor, away geom.Point) geom.Point {
		d := anchor.Sub(away)
		l := d.Length()
		if l == 0 {
			return anchor
		}
		return anchor.Add(d.Mul(hairlineCapExtent / l))
	}
	last := len(pts) - 1
	pts[0] = extend(pts[0], pts[1])
	pts[last] = extend(pts[last], pts[last-1])
}

// FillRect is a convenience wrapper over FillPath for an axis-aligned
// rectangle.
func (c *Canvas) FillRect(r geom.Rect, pnt paint.Paint) {
	p, ok := vpath.FromRect(r)
	if !ok {
		return
	}
	c.FillPath(p, pnt)
}

// DrawPixmap composites src into the canvas at device offset (x, y), per
// spec.md §6's draw_pixmap(x, y, src, pixmap_paint, transform, clip_mask?):
// x, y and the canvas's current transform both apply to the placement (as
// in the original's draw_pixmap tests, which set a transform before the
// call and see it bend the whole placed rectangle, not just src's
// content), and clipMask, if non-nil, additionally restricts this one draw
// on top of (not instead of) the canvas's own ClipMask. pnt.Shader is
// unused here; DrawPixmap builds its own shader.Pattern sourcing src, using
// pnt.Quality as the resampling kernel (downgraded to Nearest under pure
// integer translation by shader.EffectiveQuality, same as any other
// pattern fill) and Pad spread on both axes, since placement is not
// tiling.
func (c *Canvas) DrawPixmap(x, y int, src *pixmap.Pixmap, pnt paint.Paint, clipMask *mask.Mask) {
	if src == nil || src.Width <= 0 || src.Height <= 0 {
		return
	}
	r, ok := geom.NewRect(float32(x), float32(y), float32(x+src.Width), float32(y+src.Height))
	if !ok {
		return
	}
	p, ok := vpath.FromRect(r)
	if !ok {
		return
	}

	ctmInv, ok := c.CTM.Invert()
	if !ok {
		return
	}
	placementInv := geom.NewTranslate(-float32(x), -float32(y)).Concat(ctmInv)

	pattern := shader.Pattern{
		Source:  src,
		Width:   src.Width,
		Height:  src.Height,
		Inverse: placementInv,
		TileX:   gradient.Pad,
		TileY:   gradient.Pad,
		Quality: pnt.Quality,
	}
	pnt.Shader = pattern

	effective := c.ClipMask
	if clipMask != nil {
		if effective == nil {
			effective = clipMask
		} else {
			data := make([]uint8, len(effective.Data))
			copy(data, effective.Data)
			merged := &mask.Mask{Width: effective.Width, Height: effective.Height, Data: data}
			merged.Intersect(clipMask)
			effective = merged
		}
	}

	saved := c.ClipMask
	c.ClipMask = effective
	c.FillPath(p, pnt)
	c.ClipMask = saved
}

func (c *Canvas) fill(p *vpath.Path, rule scan.FillRule, pnt paint.Paint) {
	clip, ok := geom.NewIntRect(0, 0, int32(c.Pixmap.Width), int32(c.Pixmap.Height))
	if !ok {
		return
	}
	c.fillClipped(p, rule, pnt, clip)
}

// fillClipped is fill restricted to an explicit device-space clip rect,
// the hook tile.go uses to subdivide a draw across windows without
// changing per-pixel output (spec.md §8 property 4).
func (c *Canvas) fillClipped(p *vpath.Path, rule scan.FillRule, pnt paint.Paint, clip geom.IntRect) {
	prog := pipeline.Compile(pnt.Shader, pnt.BlendMode, c.ClipMask, pnt.ForceHighPrecision)

	if pnt.AntiAlias {
		r := scan.NewRasterizer(clip)
		r.CTM = c.CTM
		r.Flatness = defaultFlatness
		r.Fill(p, rule, func(y, xMin int, coverage []float32) {
			prog.RunRow(c.Pixmap, y, xMin, xMin+len(coverage), coverage)
		})
		return
	}

	ar := scan.NewAliasedRasterizer(clip)
	ar.CTM = c.CTM
	ar.Flatness = defaultFlatness
	ar.Fill(p, rule, func(run scan.Run) {
		prog.RunRow(c.Pixmap, run.Y, run.X, run.X+run.Len, nil)
	})
}
