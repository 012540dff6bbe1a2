package shader

import (
	"image/color"
	"math"

	"golang.org/x/image/math/f32"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/gradient"
)

// patternSource is the subset of pixmap.Pixmap a Pattern needs; satisfied
// directly by *pixmap.Pixmap.
type patternSource interface {
	Pixel(x, y int) (color.RGBA, bool)
}

// Pattern is the image-pattern shader of spec.md §4.8: samples a source
// pixmap through a local+inverse-paint transform, tiling each axis
// independently (reusing gradient.Spread's Pad/Reflect/Repeat enum, since
// tile-1D addressing is the same arithmetic whether it folds a gradient T
// or a pixel coordinate) and filtering per Quality.
type Pattern struct {
	Source        patternSource
	Width, Height int
	Inverse       geom.Transform
	TileX, TileY  gradient.Spread
	Quality       FilterQuality
}

// EffectiveQuality downgrades Quality to Nearest when transform is a pure
// integer translation, per spec.md §4.8's filter-quality downgrade rule.
func EffectiveQuality(transform geom.Transform, quality FilterQuality) FilterQuality {
	if !transform.IsTranslateOnly() {
		return quality
	}
	if transform.TX == math.Trunc(float64(transform.TX)) && transform.TY == math.Trunc(float64(transform.TY)) {
		return Nearest
	}
	return quality
}

// EightBitExact reports whether this pattern's sampling can't introduce
// sub-8-bit interpolation error: true only under nearest-neighbor sampling.
func (s Pattern) EightBitExact() bool { return s.Quality == Nearest }

func (s Pattern) Sample(p geom.Point) f32.Vec4 {
	local := s.Inverse.Apply(p)
	q := EffectiveQuality(s.Inverse, s.Quality)

	switch q {
	case Bicubic:
		return s.sampleBicubic(local.X, local.Y)
	case Bilinear:
		return s.sampleBilinear(local.X, local.Y)
	default:
		return s.texel(int(math.Floor(float64(local.X))), int(math.Floor(float64(local.Y))))
	}
}

// tileCoord maps an integer pixel coordinate into [0, n) per TileX/TileY,
// the pad_x1/reflect_x1/repeat_x1 stages of spec.md §4.7 applied to pixel
// indices instead of a gradient T.
func tileCoord(i, n int, spread gradient.Spread) int {
	if n <= 0 {
		return 0
	}
	switch spread {
	case gradient.Repeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case gradient.Reflect:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default: // Pad
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
}

func (s Pattern) texel(x, y int) f32.Vec4 {
	tx := tileCoord(x, s.Width, s.TileX)
	ty := tileCoord(y, s.Height, s.TileY)
	c, ok := s.Source.Pixel(tx, ty)
	if !ok {
		return f32.Vec4{}
	}
	return f32.Vec4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// sampleBilinear is the 2x2 separable sampler of spec.md §4.7, weights
// {1-f, f}.
func (s Pattern) sampleBilinear(x, y float32) f32.Vec4 {
	fx, fy := float64(x)-0.5, float64(y)-0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := float32(fx-math.Floor(fx)), float32(fy-math.Floor(fy))

	c00 := s.texel(x0, y0)
	c10 := s.texel(x0+1, y0)
	c01 := s.texel(x0, y0+1)
	c11 := s.texel(x0+1, y0+1)

	top := lerpVec(c00, c10, tx)
	bot := lerpVec(c01, c11, tx)
	return lerpVec(top, bot, ty)
}

// sampleBicubic is the 4x4 separable sampler of spec.md §4.7, using the
// near/far Mitchell-Netravali-style weights named there.
func (s Pattern) sampleBicubic(x, y float32) f32.Vec4 {
	fx, fy := float64(x)-0.5, float64(y)-0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	tx, ty := float32(fx-math.Floor(fx)), float32(fy-math.Floor(fy))

	wx := cubicWeights(tx)
	wy := cubicWeights(ty)

	var rows [4]f32.Vec4
	for j := -1; j <= 2; j++ {
		var acc f32.Vec4
		for i := -1; i <= 2; i++ {
			c := s.texel(x0+i, y0+j)
			w := wx[i+1]
			acc = addVec(acc, scaleVec(c, w))
		}
		rows[j+1] = acc
	}
	var out f32.Vec4
	for j := 0; j < 4; j++ {
		out = addVec(out, scaleVec(rows[j], wy[j]))
	}
	return out
}

// cubicWeights returns the 4 sample weights for fractional offset t in
// [0,1), per spec.md §4.7: near(t) = t*(t*(-21t/18+27/18)+9/18)+1/18,
// far(t) = t^2*(7t/18-6/18).
func cubicWeights(t float32) [4]float32 {
	near := func(t float32) float32 {
		return t*(t*(-21*t/18+27.0/18)+9.0/18) + 1.0/18
	}
	far := func(t float32) float32 {
		return t * t * (7*t/18 - 6.0/18)
	}
	return [4]float32{
		far(1 - t),
		near(1 - t),
		near(t),
		far(t),
	}
}

func lerpVec(a, b f32.Vec4, t float32) f32.Vec4 {
	return f32.Vec4{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		a[3] + (b[3]-a[3])*t,
	}
}

func addVec(a, b f32.Vec4) f32.Vec4 {
	return f32.Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func scaleVec(a f32.Vec4, k float32) f32.Vec4 {
	return f32.Vec4{a[0] * k, a[1] * k, a[2] * k, a[3] * k}
}
