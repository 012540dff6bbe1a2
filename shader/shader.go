// Package shader implements the shader sum type of spec.md §3/§4.8: Solid,
// Linear and Radial gradients, and image Pattern, each able to sample a
// premultiplied color at a device-space point. No repo in the pack wires a
// shader straight to a tagged-stage pipeline, so Sample's control flow here
// mirrors spec.md §4.8's per-kind stage sequence directly (transform ->
// spread -> gradient lookup -> premultiply, or transform -> tile -> sample),
// executed as an ordinary function call rather than compiled stages; the
// pipeline package is the layer that turns the same sequence into
// lane-register stages for a full scanline.
package shader

import (
	"golang.org/x/image/math/f32"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/gradient"
)

// Shader produces a premultiplied color for a device-space point.
type Shader interface {
	Sample(p geom.Point) f32.Vec4
}

// Solid is a uniform color shader: one uniform_color stage (spec.md §4.8).
type Solid struct {
	Color f32.Vec4
}

func (s Solid) Sample(geom.Point) f32.Vec4 { return s.Color }

// FilterQuality selects the resampling kernel for Pattern.
type FilterQuality uint8

const (
	Nearest FilterQuality = iota
	Bilinear
	Bicubic
)

// Linear is a linear-gradient shader: canonicalizes the sample point onto
// the gradient's local x-axis via Inverse, then looks up the gradient at
// the resulting x.
type Linear struct {
	Gradient *gradient.Gradient
	Inverse  geom.Transform // paint-space -> gradient-local space, p0=(0,0), p1=(1,0)
}

func (s Linear) Sample(p geom.Point) f32.Vec4 {
	local := s.Inverse.Apply(p)
	return s.Gradient.At(local.X)
}
