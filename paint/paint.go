// Package paint implements the Paint value of spec.md §3: the active fill
// description consumed by a draw call. It has no teacher analogue; the
// field set is copied directly from the spec's Paint glossary entry.
package paint

import (
	"goraster.dev/raster2d/blend"
	"goraster.dev/raster2d/scan"
	"goraster.dev/raster2d/shader"
)

// GammaMode selects the colorspace a shader's output is interpreted in
// before compositing.
type GammaMode uint8

const (
	Linear GammaMode = iota
	Gamma2
	SimpleSRGB
	FullSRGBGamma
)

// Paint is the active fill description consumed by a draw.
type Paint struct {
	Shader             shader.Shader
	BlendMode          blend.Mode
	AntiAlias          bool
	FillRule           scan.FillRule
	ForceHighPrecision bool
	Gamma              GammaMode

	// Quality is the resampling kernel Canvas.DrawPixmap builds its
	// internal shader.Pattern with ("pixmap_paint" in spec.md §6); unused
	// by FillPath/StrokePath/FillRect, which sample Shader directly.
	Quality shader.FilterQuality
}

// NewSolid returns a Paint filling with a uniform color under SourceOver,
// anti-aliased, non-zero winding — the common default.
func NewSolid(s shader.Solid) Paint {
	return Paint{
		Shader:    s,
		BlendMode: blend.SourceOver,
		AntiAlias: true,
		FillRule:  scan.NonZero,
		Gamma:     SimpleSRGB,
	}
}
