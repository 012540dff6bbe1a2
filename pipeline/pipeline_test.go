package pipeline

import (
	stdcolor "image/color"
	"testing"

	"golang.org/x/image/math/f32"

	"goraster.dev/raster2d/blend"
	"goraster.dev/raster2d/pixmap"
	"goraster.dev/raster2d/shader"
)

func TestCompileSelectsLowpForSolidSourceOver(t *testing.T) {
	s := shader.Solid{Color: f32.Vec4{1, 0, 0, 1}}
	p := Compile(s, blend.SourceOver, nil, false)
	if p.Precision != LowPrecision {
		t.Errorf("expected lowp for solid+SourceOver, got %v", p.Precision)
	}
}

func TestCompileForcesHighPrecision(t *testing.T) {
	s := shader.Solid{Color: f32.Vec4{1, 0, 0, 1}}
	p := Compile(s, blend.SourceOver, nil, true)
	if p.Precision != HighPrecision {
		t.Errorf("expected forced highp, got %v", p.Precision)
	}
}

func TestCompileStaysHighpForHSLBlend(t *testing.T) {
	s := shader.Solid{Color: f32.Vec4{1, 0, 0, 1}}
	p := Compile(s, blend.Hue, nil, false)
	if p.Precision != HighPrecision {
		t.Errorf("expected highp for HSL blend mode, got %v", p.Precision)
	}
}

func TestRunRowOpaqueSourceOverReplacesDest(t *testing.T) {
	pm, _ := pixmap.New(4, 1)
	pm.Fill(toColor(0, 1, 0, 1))

	s := shader.Solid{Color: f32.Vec4{1, 0, 0, 1}}
	prog := Compile(s, blend.SourceOver, nil, false)
	prog.RunRow(pm, 0, 0, 4, nil)

	for x := 0; x < 4; x++ {
		c, _ := pm.Pixel(x, 0)
		if c.R != 255 || c.G != 0 {
			t.Errorf("pixel %d: got %v, expected opaque red", x, c)
		}
	}
}

func TestRunRowPartialCoverageBlends(t *testing.T) {
	pm, _ := pixmap.New(1, 1)
	pm.Fill(toColor(0, 0, 0, 1)) // opaque black dest

	s := shader.Solid{Color: f32.Vec4{1, 1, 1, 1}}
	prog := Compile(s, blend.SourceOver, nil, true) // force highp for float precision
	prog.RunRow(pm, 0, 0, 1, []float32{0.5})

	c, _ := pm.Pixel(0, 0)
	if c.R < 100 || c.R > 155 {
		t.Errorf("expected ~50%% coverage to blend toward midpoint, got %v", c)
	}
}

func toColor(r, g, b, a float32) stdcolor.RGBA {
	conv := func(v float32) uint8 { return uint8(v * 255) }
	return stdcolor.RGBA{R: conv(r), G: conv(g), B: conv(b), A: conv(a)}
}
