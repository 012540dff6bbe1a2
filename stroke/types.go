// Package stroke implements the stroker (C4): it converts a skeletal path
// plus stroke parameters into a filled outline path tracing the two offset
// curves at +/-width/2, with joins and caps. It is a near-verbatim port of
// the teacher's stroke.go, generalized from "emit directly into scan
// buffers" to "emit a reusable vpath.Path outline" per spec.md §2.
package stroke

import "goraster.dev/raster2d/dash"

// Cap selects the style for stroke endpoints.
type Cap uint8

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join selects the style for stroke corners.
type Join uint8

const (
	JoinMiter Join = iota
	JoinMiterClip
	JoinRound
	JoinBevel
)

// Params holds the stroke parameters of spec.md §3.
type Params struct {
	Width      float32 // >= 0; 0 means hairline, handled by Canvas.hairlineStroke instead of Stroker
	MiterLimit float32 // >= 1
	Cap        Cap
	Join       Join
	Dash       *dash.Pattern // nil means solid
}

// defaultMiterLimit matches the teacher's default, which follows
// PDF/PostScript convention.
const defaultMiterLimit = 10.0

// DefaultParams returns stroke parameters with width 1 and the common
// defaults (butt cap, miter join).
func DefaultParams() Params {
	return Params{Width: 1, MiterLimit: defaultMiterLimit, Cap: CapButt, Join: JoinMiter}
}

// Numerical tolerances, matching the teacher's constants.
const (
	collinearityThreshold = 1e-6
	cuspCosineThreshold    = -0.9999
	zeroLengthThreshold    = 1e-10
	miterEpsilon           = 1e-10
)
