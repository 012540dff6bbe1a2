package pipeline

import (
	"goraster.dev/raster2d/blend"
	"goraster.dev/raster2d/mask"
	"goraster.dev/raster2d/shader"
)

// lowpMode is the reduced blend-mode enum the low-precision engine
// implements, per spec.md §4.7's low-precision stage taxonomy.
type lowpMode uint8

const (
	lowpClear lowpMode = iota
	lowpSource
	lowpDestination
	lowpSourceOver
	lowpDestinationOver
	lowpSourceIn
	lowpDestinationIn
	lowpSourceOut
	lowpDestinationOut
	lowpSourceAtop
	lowpDestinationAtop
	lowpXor
	lowpPlus
	lowpModulate
	lowpMultiply
	lowpScreen
	lowpDarken
	lowpLighten
	lowpDifference
	lowpExclusion
	lowpHardLight
	lowpOverlay
)

// toLowpMode maps a blend.Mode to its lowp equivalent, or false if mode
// isn't in the low-precision subset (HSL, SoftLight, ColorDodge, ColorBurn
// are excluded per spec.md §4.7).
func toLowpMode(mode blend.Mode) (lowpMode, bool) {
	switch mode {
	case blend.Clear:
		return lowpClear, true
	case blend.Source:
		return lowpSource, true
	case blend.Destination:
		return lowpDestination, true
	case blend.SourceOver:
		return lowpSourceOver, true
	case blend.DestinationOver:
		return lowpDestinationOver, true
	case blend.SourceIn:
		return lowpSourceIn, true
	case blend.DestinationIn:
		return lowpDestinationIn, true
	case blend.SourceOut:
		return lowpSourceOut, true
	case blend.DestinationOut:
		return lowpDestinationOut, true
	case blend.SourceAtop:
		return lowpSourceAtop, true
	case blend.DestinationAtop:
		return lowpDestinationAtop, true
	case blend.Xor:
		return lowpXor, true
	case blend.Plus:
		return lowpPlus, true
	case blend.Modulate:
		return lowpModulate, true
	case blend.Multiply:
		return lowpMultiply, true
	case blend.Screen:
		return lowpScreen, true
	case blend.Darken:
		return lowpDarken, true
	case blend.Lighten:
		return lowpLighten, true
	case blend.Difference:
		return lowpDifference, true
	case blend.Exclusion:
		return lowpExclusion, true
	case blend.HardLight:
		return lowpHardLight, true
	case blend.Overlay:
		return lowpOverlay, true
	default:
		return 0, false
	}
}

// EightBitExactShader is implemented by shaders whose output never needs
// more than 8 bits of precision to reproduce exactly (spec.md §4.7
// condition (a)). Solid colors and nearest-filtered patterns qualify;
// gradients and filtered patterns don't, since their interpolation can
// produce values a straight 8-bit round-trip would visibly band.
type EightBitExactShader interface {
	EightBitExact() bool
}

func (shader.Solid) EightBitExact() bool { return true }

// eightBitExact reports whether s satisfies spec.md §4.7 condition (a);
// shaders that don't implement EightBitExactShader are conservatively
// treated as not 8-bit-exact.
func eightBitExact(s shader.Shader) bool {
	e, ok := s.(EightBitExactShader)
	return ok && e.EightBitExact()
}

// Compile selects a precision and builds a Program, per spec.md §4.7's four
// lowp-eligibility conditions and §9's resolved Open Question
// (forceHighPrecision disables lowp unconditionally), then synthesizes the
// ordered stage list (buildStages) the chosen precision's engine will run.
func Compile(s shader.Shader, mode blend.Mode, clipMask *mask.Mask, forceHighPrecision bool) *Program {
	p := &Program{Precision: HighPrecision, Shader: s, Blend: mode, ClipMask: clipMask}
	if lowpEligible(s, mode, clipMask, forceHighPrecision) {
		p.Precision = LowPrecision
	}
	p.buildStages()
	return p
}

func lowpEligible(s shader.Shader, mode blend.Mode, clipMask *mask.Mask, forceHighPrecision bool) bool {
	if forceHighPrecision {
		return false
	}
	if _, ok := toLowpMode(mode); !ok {
		return false
	}
	if !eightBitExact(s) {
		return false
	}
	if clipMask != nil && !maskIsEightBit(clipMask) {
		return false
	}
	return true
}

// buildStages is spec.md §4.7's "Program synthesis" recipe: it assembles
// the tail-call-free ordered stage list for whichever precision Compile
// selected: gather (seed shader), load destination, an optional
// mask-multiply stage only when a clip mask is bound, blend, coverage
// lerp, and store.
func (p *Program) buildStages() {
	if p.Precision == LowPrecision {
		mode, _ := toLowpMode(p.Blend) // Compile only selects LowPrecision when this succeeds
		stages := []lowpStage{lowpSeedShader(p.Shader), lowpLoadDest}
		if p.ClipMask != nil {
			stages = append(stages, lowpMaskMultiply(p.ClipMask))
		}
		p.lowpStages = append(stages, lowpBlendStage(mode), lowpCoverageLerp, lowpStore)
		return
	}
	stages := []highpStage{highpSeedShader(p.Shader), highpLoadDest}
	if p.ClipMask != nil {
		stages = append(stages, highpMaskMultiply(p.ClipMask))
	}
	p.highpStages = append(stages, highpBlend(p.Blend), highpCoverageLerp, highpStore)
}

// maskIsEightBit is always true for mask.Mask, which stores exactly 8 bits
// of coverage per sample (spec.md §4.7 condition (d) only excludes masks
// with sub-8-bit precision, which this module never produces).
func maskIsEightBit(*mask.Mask) bool { return true }
