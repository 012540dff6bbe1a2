package shader

import (
	"image/color"
	"testing"

	"golang.org/x/image/math/f32"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/gradient"
)

func TestSolidIsConstant(t *testing.T) {
	s := Solid{Color: f32.Vec4{0.1, 0.2, 0.3, 0.4}}
	if s.Sample(geom.Pt(0, 0)) != s.Sample(geom.Pt(1000, -1000)) {
		t.Error("expected solid shader to be constant")
	}
}

func TestLinearGradientSamplesAlongX(t *testing.T) {
	g := gradient.New([]gradient.Stop{
		{T: 0, Color: f32.Vec4{0, 0, 0, 1}},
		{T: 1, Color: f32.Vec4{1, 1, 1, 1}},
	}, gradient.Pad)
	s := Linear{Gradient: g, Inverse: geom.Identity}

	left := s.Sample(geom.Pt(0, 0))
	right := s.Sample(geom.Pt(1, 0))
	if left[0] >= right[0] {
		t.Errorf("expected gradient to increase along x: %v vs %v", left, right)
	}
}

func TestRadialPlainCircle(t *testing.T) {
	g := gradient.New([]gradient.Stop{
		{T: 0, Color: f32.Vec4{1, 0, 0, 1}},
		{T: 1, Color: f32.Vec4{0, 0, 1, 1}},
	}, gradient.Pad)
	s := Radial{
		Gradient: g,
		Inverse:  geom.Identity,
		C0:       geom.Pt(0, 0), R0: 0,
		C1: geom.Pt(0, 0), R1: 10,
	}

	center := s.Sample(geom.Pt(0, 0))
	edge := s.Sample(geom.Pt(10, 0))
	if center[0] < 0.9 {
		t.Errorf("expected center to sample near first stop, got %v", center)
	}
	if edge[2] < 0.9 {
		t.Errorf("expected edge to sample near second stop, got %v", edge)
	}
}

type fakeSource struct {
	w, h int
	c    color.RGBA
}

func (f fakeSource) Pixel(x, y int) (color.RGBA, bool) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return color.RGBA{}, false
	}
	return f.c, true
}

func TestPatternNearestSampling(t *testing.T) {
	src := fakeSource{w: 4, h: 4, c: color.RGBA{R: 100, G: 50, B: 25, A: 200}}
	p := Pattern{Source: src, Width: 4, Height: 4, Inverse: geom.Identity, Quality: Nearest}
	got := p.Sample(geom.Pt(1, 1))
	want := f32.Vec4{100.0 / 255, 50.0 / 255, 25.0 / 255, 200.0 / 255}
	if got != want {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestPatternTileRepeat(t *testing.T) {
	src := fakeSource{w: 2, h: 2, c: color.RGBA{R: 10, G: 10, B: 10, A: 10}}
	p := Pattern{Source: src, Width: 2, Height: 2, Inverse: geom.Identity, TileX: gradient.Repeat, TileY: gradient.Repeat, Quality: Nearest}
	in := p.Sample(geom.Pt(0, 0))
	out := p.Sample(geom.Pt(2, 0)) // wraps back to column 0 under Repeat
	if in != out {
		t.Errorf("expected repeat tiling to wrap, got %v vs %v", in, out)
	}
}

func TestEffectiveQualityDowngradesUnderIntegerTranslation(t *testing.T) {
	tr := geom.NewTranslate(3, 4)
	if got := EffectiveQuality(tr, Bicubic); got != Nearest {
		t.Errorf("expected downgrade to Nearest, got %v", got)
	}
	tr2 := geom.NewTranslate(3.5, 4)
	if got := EffectiveQuality(tr2, Bicubic); got != Bicubic {
		t.Errorf("expected no downgrade for fractional translation, got %v", got)
	}
}
