package raster2d

import (
	stdcolor "image/color"
	"testing"

	"golang.org/x/image/math/f32"

	"goraster.dev/raster2d/blend"
	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/mask"
	"goraster.dev/raster2d/paint"
	"goraster.dev/raster2d/pixmap"
	"goraster.dev/raster2d/scan"
	"goraster.dev/raster2d/shader"
	"goraster.dev/raster2d/stroke"
	"goraster.dev/raster2d/vpath"
)

func line(t *testing.T, a, b geom.Point) *vpath.Path {
	t.Helper()
	p, ok := vpath.NewBuilder().MoveTo(a).LineTo(b).Finish()
	if !ok {
		t.Fatal("expected path")
	}
	return p
}


func TestFillRectOpaque(t *testing.T) {
	pm, _ := pixmap.New(10, 10)
	c := NewCanvas(pm)

	r, _ := geom.NewRect(2, 2, 8, 8)
	pnt := paint.NewSolid(shader.Solid{Color: f32.Vec4{1, 0, 0, 1}})
	pnt.BlendMode = blend.Source
	c.FillRect(r, pnt)

	px, _ := pm.Pixel(5, 5)
	if px.R != 255 || px.A != 255 {
		t.Errorf("expected opaque red inside rect, got %v", px)
	}
	px, _ = pm.Pixel(0, 0)
	if px.A != 0 {
		t.Errorf("expected untouched pixel outside rect, got %v", px)
	}
}

func TestStrokePathDrawsOutline(t *testing.T) {
	pm, _ := pixmap.New(20, 20)
	c := NewCanvas(pm)

	p := line(t, geom.Pt(2, 10), geom.Pt(18, 10))
	params := stroke.DefaultParams()
	params.Width = 4
	pnt := paint.NewSolid(shader.Solid{Color: f32.Vec4{0, 0, 0, 1}})
	pnt.BlendMode = blend.Source
	c.StrokePath(p, params, pnt)

	px, _ := pm.Pixel(10, 10)
	if px.A == 0 {
		t.Error("expected the stroked line to cover its center")
	}
	px, _ = pm.Pixel(10, 19)
	if px.A != 0 {
		t.Error("expected pixels far from the stroke to stay untouched")
	}
}

func TestFillPathTiledMatchesUntiled(t *testing.T) {
	pmA, _ := pixmap.New(20, 20)
	pmB, _ := pixmap.New(20, 20)
	cA := NewCanvas(pmA)
	cB := NewCanvas(pmB)

	r, _ := geom.NewRect(3, 3, 17, 17)
	pnt := paint.NewSolid(shader.Solid{Color: f32.Vec4{0, 1, 0, 1}})
	pnt.BlendMode = blend.Source

	p, _ := vpath.FromRect(r)
	cA.FillPath(p, pnt)
	cB.drawTiled(func(clip geom.IntRect) {
		cB.fillClipped(p, pnt.FillRule, pnt, clip)
	})

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			ca, _ := pmA.Pixel(x, y)
			cb, _ := pmB.Pixel(x, y)
			if ca != cb {
				t.Fatalf("pixel %d,%d differs: %v vs %v", x, y, ca, cb)
			}
		}
	}
}

func TestDrawPixmapPlacesAtOffset(t *testing.T) {
	src, _ := pixmap.New(4, 4)
	src.Fill(stdcolor.RGBA{R: 200, G: 0, B: 0, A: 200})

	pm, _ := pixmap.New(20, 20)
	c := NewCanvas(pm)
	pnt := paint.Paint{BlendMode: blend.Source, Quality: shader.Nearest}
	c.DrawPixmap(5, 5, src, pnt, nil)

	inside, _ := pm.Pixel(6, 6)
	if inside != (stdcolor.RGBA{R: 200, G: 0, B: 0, A: 200}) {
		t.Errorf("expected src color placed at offset, got %v", inside)
	}
	outside, _ := pm.Pixel(1, 1)
	if outside.A != 0 {
		t.Errorf("expected pixels outside the placed rect to stay untouched, got %v", outside)
	}
	beyond, _ := pm.Pixel(10, 10)
	if beyond.A != 0 {
		t.Errorf("expected pixels past src's extent to stay untouched, got %v", beyond)
	}
}

func TestDrawPixmapRespectsExtraClipMask(t *testing.T) {
	src, _ := pixmap.New(6, 6)
	src.Fill(stdcolor.RGBA{R: 100, G: 100, B: 100, A: 100})

	pm, _ := pixmap.New(20, 20)
	c := NewCanvas(pm)

	r, _ := geom.NewRect(0, 0, 3, 20)
	clipPath, _ := vpath.FromRect(r)
	clip := mask.Fill(clipPath, scan.NonZero, true, geom.Identity, 0.25, 20, 20)

	pnt := paint.Paint{BlendMode: blend.Source, Quality: shader.Nearest}
	c.DrawPixmap(0, 0, src, pnt, clip)

	allowed, _ := pm.Pixel(1, 1)
	if allowed.A == 0 {
		t.Error("expected pixels inside the extra clip mask to be drawn")
	}
	blocked, _ := pm.Pixel(4, 1)
	if blocked.A != 0 {
		t.Errorf("expected pixels outside the extra clip mask to stay untouched, got %v", blocked)
	}
}
