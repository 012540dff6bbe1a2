package stroke

import (
	"testing"

	"goraster.dev/raster2d/geom"
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

func TestStrokeLineProducesOutline(t *testing.T) {
	s := NewStroker()
	p := line(t, geom.Pt(0, 0), geom.Pt(10, 0))

	out, ok := s.Stroke(p, DefaultParams(), 1, 0.25)
	if !ok {
		t.Fatal("expected ok")
	}
	bounds, ok := out.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	// Butt cap, width 1: outline spans exactly x in [0,10], y in [-0.5,0.5].
	if bounds.Left != 0 || bounds.Right != 10 {
		t.Errorf("unexpected x bounds %v", bounds)
	}
	if bounds.Top != -0.5 || bounds.Bottom != 0.5 {
		t.Errorf("unexpected y bounds %v", bounds)
	}
}

func TestStrokeSquareCapExtendsBeyondEndpoints(t *testing.T) {
	s := NewStroker()
	p := line(t, geom.Pt(0, 0), geom.Pt(10, 0))
	params := DefaultParams()
	params.Cap = CapSquare

	out, ok := s.Stroke(p, params, 1, 0.25)
	if !ok {
		t.Fatal("expected ok")
	}
	bounds, _ := out.Bounds()
	if bounds.Left != -0.5 || bounds.Right != 10.5 {
		t.Errorf("expected square cap to extend by half-width, got %v", bounds)
	}
}

func TestStrokeEmptyPathFails(t *testing.T) {
	s := NewStroker()
	if _, ok := s.Stroke(&vpath.Path{}, DefaultParams(), 1, 0.25); ok {
		t.Error("expected empty path to fail")
	}
}

func TestStrokeZeroLengthButtProducesNothing(t *testing.T) {
	s := NewStroker()
	p := line(t, geom.Pt(5, 5), geom.Pt(5, 5))
	if _, ok := s.Stroke(p, DefaultParams(), 1, 0.25); ok {
		t.Error("expected zero-length butt-capped stroke to be empty")
	}
}

func TestStrokeZeroLengthRoundProducesDot(t *testing.T) {
	s := NewStroker()
	p := line(t, geom.Pt(5, 5), geom.Pt(5, 5))
	params := DefaultParams()
	params.Cap = CapRound

	out, ok := s.Stroke(p, params, 1, 0.25)
	if !ok {
		t.Fatal("expected a dot for a zero-length round-capped stroke")
	}
	bounds, _ := out.Bounds()
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		t.Errorf("expected non-degenerate dot bounds, got %v", bounds)
	}
}

func TestStrokeLargeWidthDoesNotPanic(t *testing.T) {
	s := NewStroker()
	p := line(t, geom.Pt(0, 0), geom.Pt(10, 10))
	params := DefaultParams()
	params.Width = 1e10

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panicked on huge stroke width: %v", r)
		}
	}()
	s.Stroke(p, params, 1, 0.25)
}

func TestReusedStrokerAcrossCalls(t *testing.T) {
	s := NewStroker()
	a := line(t, geom.Pt(0, 0), geom.Pt(5, 0))
	b := line(t, geom.Pt(0, 0), geom.Pt(20, 0))

	out1, ok1 := s.Stroke(a, DefaultParams(), 1, 0.25)
	out2, ok2 := s.Stroke(b, DefaultParams(), 1, 0.25)
	if !ok1 || !ok2 {
		t.Fatal("expected both strokes to succeed")
	}
	b1, _ := out1.Bounds()
	b2, _ := out2.Bounds()
	if b1.Right == b2.Right {
		t.Error("expected scratch reuse to not leak state between calls")
	}
}

func TestMiterClipJoin(t *testing.T) {
	b := vpath.NewBuilder()
	// A sharp spike: two segments meeting at a very acute angle, which
	// exceeds the default miter limit.
	p, ok := b.MoveTo(geom.Pt(0, 0)).LineTo(geom.Pt(10, 0.1)).LineTo(geom.Pt(0, 0.2)).Finish()
	if !ok {
		t.Fatal("expected path")
	}

	params := DefaultParams()
	params.Join = JoinMiterClip
	params.MiterLimit = 2

	s := NewStroker()
	out, ok := s.Stroke(p, params, 1, 0.25)
	if !ok {
		t.Fatal("expected ok")
	}
	if out.IsEmpty() {
		t.Error("expected a non-empty clipped-miter outline")
	}
}
