package pipeline

import "goraster.dev/raster2d/pixmap"

// lowpRGBA holds premultiplied channels normalized to 0..255 in uint16,
// matching spec.md §4.7's "values stored as u16 normalized to 0..255"
// low-precision representation.
type lowpRGBA struct {
	R, G, B, A uint16
}

// div255 approximates x/255 via mul-then-shift-with-round-up, per
// spec.md §4.7 ("mul-then-div-by-256-with-round-up approximates /255").
func div255(x uint32) uint16 {
	x += 128
	return uint16((x + (x >> 8)) >> 8)
}

func mul255(a, b uint16) uint16 {
	return div255(uint32(a) * uint32(b))
}

// lowpBlend implements the reduced blend-mode subset of spec.md §4.7's
// low-precision stage taxonomy directly in u16 arithmetic, rather than
// routing through the blend package's float32 formulas: the whole point of
// the lowp engine is to avoid float32 math on the hot path.
func lowpBlend(mode lowpMode, s, d lowpRGBA) lowpRGBA {
	inv := func(v uint16) uint16 { return 255 - v }
	over := func(sc, dc uint16, sa uint16) uint16 { return sc + mul255(dc, inv(sa)) }

	switch mode {
	case lowpClear:
		return lowpRGBA{}
	case lowpSource:
		return s
	case lowpDestination:
		return d
	case lowpSourceOver:
		return lowpRGBA{over(s.R, d.R, s.A), over(s.G, d.G, s.A), over(s.B, d.B, s.A), over(s.A, d.A, s.A)}
	case lowpDestinationOver:
		return lowpRGBA{over(d.R, s.R, d.A), over(d.G, s.G, d.A), over(d.B, s.B, d.A), over(d.A, s.A, d.A)}
	case lowpSourceIn:
		return lowpRGBA{mul255(s.R, d.A), mul255(s.G, d.A), mul255(s.B, d.A), mul255(s.A, d.A)}
	case lowpDestinationIn:
		return lowpRGBA{mul255(d.R, s.A), mul255(d.G, s.A), mul255(d.B, s.A), mul255(d.A, s.A)}
	case lowpSourceOut:
		return lowpRGBA{mul255(s.R, inv(d.A)), mul255(s.G, inv(d.A)), mul255(s.B, inv(d.A)), mul255(s.A, inv(d.A))}
	case lowpDestinationOut:
		return lowpRGBA{mul255(d.R, inv(s.A)), mul255(d.G, inv(s.A)), mul255(d.B, inv(s.A)), mul255(d.A, inv(s.A))}
	case lowpSourceAtop:
		return lowpRGBA{
			mul255(s.R, d.A) + mul255(d.R, inv(s.A)),
			mul255(s.G, d.A) + mul255(d.G, inv(s.A)),
			mul255(s.B, d.A) + mul255(d.B, inv(s.A)),
			d.A,
		}
	case lowpDestinationAtop:
		return lowpRGBA{
			mul255(d.R, s.A) + mul255(s.R, inv(d.A)),
			mul255(d.G, s.A) + mul255(s.G, inv(d.A)),
			mul255(d.B, s.A) + mul255(s.B, inv(d.A)),
			s.A,
		}
	case lowpXor:
		return lowpRGBA{
			mul255(s.R, inv(d.A)) + mul255(d.R, inv(s.A)),
			mul255(s.G, inv(d.A)) + mul255(d.G, inv(s.A)),
			mul255(s.B, inv(d.A)) + mul255(d.B, inv(s.A)),
			mul255(s.A, inv(d.A)) + mul255(d.A, inv(s.A)),
		}
	case lowpPlus:
		sat := func(a, b uint16) uint16 {
			v := uint32(a) + uint32(b)
			if v > 255 {
				return 255
			}
			return uint16(v)
		}
		return lowpRGBA{sat(s.R, d.R), sat(s.G, d.G), sat(s.B, d.B), sat(s.A, d.A)}
	case lowpModulate:
		return lowpRGBA{mul255(s.R, d.R), mul255(s.G, d.G), mul255(s.B, d.B), mul255(s.A, d.A)}
	default:
		return lowpSeparable(mode, s, d)
	}
}

// lowpSeparable implements Multiply/Screen/Darken/Lighten/Difference/
// Exclusion/HardLight/Overlay in u16, via the same Co formula as the
// float32 separable path, unpremultiplying through a 0..255 scale.
func lowpSeparable(mode lowpMode, s, d lowpRGBA) lowpRGBA {
	inv := func(v uint16) uint16 { return 255 - v }
	unpremul := func(c, a uint16) uint16 {
		if a == 0 {
			return 0
		}
		v := (uint32(c) * 255) / uint32(a)
		if v > 255 {
			v = 255
		}
		return uint16(v)
	}
	blendCh := func(sc, dc uint16) uint16 {
		cs, cb := unpremul(sc, s.A), unpremul(dc, d.A)
		var b uint16
		switch mode {
		case lowpMultiply:
			b = mul255(cs, cb)
		case lowpScreen:
			b = cs + cb - mul255(cs, cb)
		case lowpDarken:
			b = min16(cs, cb)
		case lowpLighten:
			b = max16(cs, cb)
		case lowpDifference:
			if cs > cb {
				b = cs - cb
			} else {
				b = cb - cs
			}
		case lowpExclusion:
			b = cs + cb - 2*mul255(cs, cb)
		case lowpHardLight:
			b = hardLight16(cs, cb)
		case lowpOverlay:
			b = hardLight16(cb, cs)
		}
		return mul255(sc, inv(d.A)) + mul255(dc, inv(s.A)) + mul255(mul255(s.A, d.A), b)
	}
	a := s.A + mul255(d.A, inv(s.A))
	return lowpRGBA{blendCh(s.R, d.R), blendCh(s.G, d.G), blendCh(s.B, d.B), a}
}

func hardLight16(cs, cb uint16) uint16 {
	if cs <= 127 {
		return 2 * mul255(cs, cb)
	}
	return 255 - 2*mul255(255-cs, 255-cb)
}

func min16(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}

func max16(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}

// runRowLowp is the low-precision engine of spec.md §4.7: it walks
// p.lowpStages in order across the whole row, operating on normalized
// uint16 channels (see stage_lowp.go). Only the blend-mode subset
// Compile selected LowPrecision for is ever reachable here; if Compile
// somehow produced a Program with no lowp stages (defensive, since
// buildStages always fills one when Precision is LowPrecision), this
// falls back to the high-precision engine rather than rendering nothing.
func (p *Program) runRowLowp(pm *pixmap.Pixmap, y, xStart, xEnd int, coverage []float32) {
	if len(p.lowpStages) == 0 {
		hp := *p
		hp.Precision = HighPrecision
		hp.buildStages()
		hp.runRowHighp(pm, y, xStart, xEnd, coverage)
		return
	}
	n := xEnd - xStart
	if n <= 0 {
		return
	}
	lanes := newLowpLanes(n, coverage)
	for _, stage := range p.lowpStages {
		stage(pm, y, xStart, lanes)
	}
}

func toU8(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint16(v*255 + 0.5)
}
