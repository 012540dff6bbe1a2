// Package gradient implements the Gradient descriptor of spec.md §3/§4.8: a
// sorted stop list plus spread mode, precomputed into either a two-stop
// (factor, bias) fast path or a general piecewise-linear lookup table. The
// two-case split is grounded on original_source/tests/gradients.rs and
// benches/src/gradients.rs, which exercise the two-stop and general cases as
// visibly distinct test/bench functions; the lookup-table math itself has no
// kept original_source file to port from and is written directly from
// spec.md §4.8.
package gradient

import (
	"sort"

	"golang.org/x/image/math/f32"
)

// Spread selects how a gradient's T parameter is mapped back into [0,1]
// once it leaves the defined range.
type Spread uint8

const (
	Pad Spread = iota
	Reflect
	Repeat
)

// Stop is one color stop of a gradient, at position t in [0,1].
type Stop struct {
	T     float32
	Color f32.Vec4 // premultiplied RGBA, each component in [0,1]
}

// lutSize is the resolution of the general piecewise-linear lookup table.
const lutSize = 256

// Gradient is a precomputed color ramp: either the two-stop fast path or a
// general lutSize-entry (factor, bias) table, selected once at construction.
type Gradient struct {
	Spread Spread

	twoStop bool
	factor0 f32.Vec4
	bias0   f32.Vec4

	lutFactor [lutSize]f32.Vec4
	lutBias   [lutSize]f32.Vec4
}

// New builds a Gradient from an unsorted stop list. Stops are sorted by T;
// a stop list of length 0 or 1 degenerates to a uniform color.
func New(stops []Stop, spread Spread) *Gradient {
	s := append([]Stop(nil), stops...)
	sort.Slice(s, func(i, j int) bool { return s[i].T < s[j].T })

	g := &Gradient{Spread: spread}
	if len(s) == 0 {
		return g
	}
	if len(s) == 1 {
		g.twoStop = true
		g.factor0 = f32.Vec4{}
		g.bias0 = s[0].Color
		return g
	}
	if len(s) == 2 && s[0].T == 0 && s[1].T == 1 {
		g.twoStop = true
		g.factor0 = sub(s[1].Color, s[0].Color)
		g.bias0 = s[0].Color
		return g
	}

	g.buildLUT(s)
	return g
}

// buildLUT fills the general-case (factor, bias) table: for bucket i
// covering t in [i/lutSize, (i+1)/lutSize), factor/bias satisfy
// color(t) = factor*t + bias for t in that bucket, matching the linear
// interpolation between whichever two stops bracket it.
func (g *Gradient) buildLUT(s []Stop) {
	for i := 0; i < lutSize; i++ {
		t := (float32(i) + 0.5) / lutSize
		lo, hi := bracket(s, t)
		if lo.T == hi.T {
			g.lutFactor[i] = f32.Vec4{}
			g.lutBias[i] = lo.Color
			continue
		}
		factor := scale(sub(hi.Color, lo.Color), 1/(hi.T-lo.T))
		bias := sub(lo.Color, scale(factor, lo.T))
		g.lutFactor[i] = factor
		g.lutBias[i] = bias
	}
}

// bracket returns the two stops surrounding t, clamped to the stop list's
// endpoints outside [s[0].T, s[len-1].T].
func bracket(s []Stop, t float32) (lo, hi Stop) {
	if t <= s[0].T {
		return s[0], s[0]
	}
	if t >= s[len(s)-1].T {
		return s[len(s)-1], s[len(s)-1]
	}
	for i := 1; i < len(s); i++ {
		if t <= s[i].T {
			return s[i-1], s[i]
		}
	}
	return s[len(s)-1], s[len(s)-1]
}

// At samples the gradient at parameter t (pre-spread). t is first folded
// into [0,1] by Spread, then evaluated via the two-stop fast path or the
// general lookup table.
func (g *Gradient) At(t float32) f32.Vec4 {
	t = applySpread(g.Spread, t)
	if g.twoStop {
		return add(scale(g.factor0, t), g.bias0)
	}
	idx := int(t * lutSize)
	if idx < 0 {
		idx = 0
	}
	if idx >= lutSize {
		idx = lutSize - 1
	}
	return add(scale(g.lutFactor[idx], t), g.lutBias[idx])
}

// applySpread implements the pad_x1/reflect_x1/repeat_x1 stages of
// spec.md §4.7 as plain scalar math (no lane registers at this layer;
// pipeline stages call this per-lane).
func applySpread(spread Spread, t float32) float32 {
	switch spread {
	case Repeat:
		t -= float32(int(t))
		if t < 0 {
			t += 1
		}
		return t
	case Reflect:
		t = abs32(t)
		period := t - float32(int(t/2)*2)
		if period > 1 {
			period = 2 - period
		}
		return period
	default: // Pad
		if t < 0 {
			return 0
		}
		if t > 1 {
			return 1
		}
		return t
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func add(a, b f32.Vec4) f32.Vec4 {
	return f32.Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func sub(a, b f32.Vec4) f32.Vec4 {
	return f32.Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func scale(a f32.Vec4, k float32) f32.Vec4 {
	return f32.Vec4{a[0] * k, a[1] * k, a[2] * k, a[3] * k}
}
