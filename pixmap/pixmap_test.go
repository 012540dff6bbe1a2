package pixmap

import (
	"image/color"
	"testing"

	"goraster.dev/raster2d/geom"
)

func TestNewRejectsNonPositiveSize(t *testing.T) {
	if _, ok := New(0, 5); ok {
		t.Error("expected 0 width to be rejected")
	}
	if _, ok := New(5, -1); ok {
		t.Error("expected negative height to be rejected")
	}
}

func TestSetPixelRejectsNonPremultiplied(t *testing.T) {
	p, _ := New(4, 4)
	p.SetPixel(1, 1, color.RGBA{R: 200, G: 0, B: 0, A: 100})
	got, _ := p.Pixel(1, 1)
	if got != (color.RGBA{}) {
		t.Errorf("expected invalid (R>A) color to be rejected, got %v", got)
	}
}

func TestSetPixelAndFill(t *testing.T) {
	p, _ := New(3, 3)
	c := color.RGBA{R: 100, G: 50, B: 25, A: 200}
	p.Fill(c)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			got, ok := p.Pixel(x, y)
			if !ok || got != c {
				t.Fatalf("pixel %d,%d = %v, %v", x, y, got, ok)
			}
		}
	}
}

func TestCloneRectOutOfBoundsRejected(t *testing.T) {
	p, _ := New(4, 4)
	r, _ := geom.NewIntRect(0, 0, 10, 10)
	if _, ok := p.CloneRect(r); ok {
		t.Error("expected out-of-bounds CloneRect to fail rather than clamp")
	}
}

func TestCloneRectCopiesSubRegion(t *testing.T) {
	p, _ := New(4, 4)
	c := color.RGBA{R: 10, G: 20, B: 30, A: 40}
	p.SetPixel(2, 2, c)

	r, _ := geom.NewIntRect(2, 2, 4, 4)
	clone, ok := p.CloneRect(r)
	if !ok {
		t.Fatal("expected ok")
	}
	got, _ := clone.Pixel(0, 0)
	if got != c {
		t.Errorf("got %v want %v", got, c)
	}

	// Mutating the clone must not affect the original.
	clone.SetPixel(0, 0, color.RGBA{})
	orig, _ := p.Pixel(2, 2)
	if orig != c {
		t.Error("expected CloneRect to produce an independent copy")
	}
}

func TestFromDataRejectsInvalidInvariant(t *testing.T) {
	data := make([]uint8, 4)
	data[0], data[3] = 255, 100 // R > A
	if _, ok := FromData(1, 1, data); ok {
		t.Error("expected premultiplied-invariant violation to be rejected")
	}
}

func TestImageInterop(t *testing.T) {
	p, _ := New(2, 2)
	p.SetPixel(1, 0, color.RGBA{R: 10, G: 10, B: 10, A: 10})
	b := p.Bounds()
	if b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("unexpected bounds %v", b)
	}
	if p.At(1, 0) != (color.RGBA{R: 10, G: 10, B: 10, A: 10}) {
		t.Errorf("unexpected At result %v", p.At(1, 0))
	}
}
