package mask

import (
	"testing"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/scan"
	"goraster.dev/raster2d/vpath"
)

func TestFillProducesFullCoverageInsideRect(t *testing.T) {
	r, _ := geom.NewRect(2, 2, 6, 6)
	p, ok := vpath.FromRect(r)
	if !ok {
		t.Fatal("expected path")
	}

	m := Fill(p, scan.NonZero, true, geom.Identity, 0.25, 10, 10)
	if m.At(4, 4) != 255 {
		t.Errorf("expected full coverage inside rect, got %d", m.At(4, 4))
	}
	if m.At(0, 0) != 0 {
		t.Errorf("expected zero coverage outside rect, got %d", m.At(0, 0))
	}
}

func TestFillOutOfBoundsReturnsZero(t *testing.T) {
	r, _ := geom.NewRect(2, 2, 6, 6)
	p, _ := vpath.FromRect(r)
	m := Fill(p, scan.NonZero, true, geom.Identity, 0.25, 10, 10)
	if m.At(-1, 0) != 0 || m.At(100, 100) != 0 {
		t.Error("expected out-of-bounds samples to be 0")
	}
}

func TestFillAliasedProducesFullCoverageNoPartialEdges(t *testing.T) {
	r, _ := geom.NewRect(2, 2, 6, 6)
	p, ok := vpath.FromRect(r)
	if !ok {
		t.Fatal("expected path")
	}

	m := Fill(p, scan.NonZero, false, geom.Identity, 0.25, 10, 10)
	if m.At(4, 4) != 255 {
		t.Errorf("expected full coverage inside rect, got %d", m.At(4, 4))
	}
	if m.At(0, 0) != 0 {
		t.Errorf("expected zero coverage outside rect, got %d", m.At(0, 0))
	}
}

func TestIntersect(t *testing.T) {
	a := New(2, 1)
	a.Data[0], a.Data[1] = 255, 128
	b := New(2, 1)
	b.Data[0], b.Data[1] = 255, 255

	a.Intersect(b)
	if a.Data[0] != 255 {
		t.Errorf("expected 255*255/255=255, got %d", a.Data[0])
	}
	if a.Data[1] != 128 {
		t.Errorf("expected 128*255/255=128, got %d", a.Data[1])
	}
}
