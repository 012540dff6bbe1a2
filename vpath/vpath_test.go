package vpath

import (
	"testing"

	"goraster.dev/raster2d/geom"
)

func TestBuilderLineTriangle(t *testing.T) {
	b := NewBuilder()
	p, ok := b.MoveTo(geom.Pt(0, 0)).
		LineTo(geom.Pt(10, 0)).
		LineTo(geom.Pt(5, 10)).
		Close().
		Finish()
	if !ok {
		t.Fatal("expected ok")
	}

	var verbs []Verb
	p.Segments(false, func(seg Segment) bool {
		verbs = append(verbs, seg.Verb)
		return true
	})
	want := []Verb{Move, Line, Line, Close}
	if len(verbs) != len(want) {
		t.Fatalf("got %v want %v", verbs, want)
	}
	for i := range want {
		if verbs[i] != want[i] {
			t.Errorf("verb %d: got %v want %v", i, verbs[i], want[i])
		}
	}

	bounds, ok := p.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if bounds.Left != 0 || bounds.Right != 10 || bounds.Top != 0 || bounds.Bottom != 10 {
		t.Errorf("unexpected bounds %v", bounds)
	}
}

func TestSegmentsAutoClose(t *testing.T) {
	b := NewBuilder()
	p, ok := b.MoveTo(geom.Pt(1, 2)).LineTo(geom.Pt(3, 4)).Close().Finish()
	if !ok {
		t.Fatal("expected ok")
	}

	var closeSeg Segment
	p.Segments(true, func(seg Segment) bool {
		if seg.Verb == Close {
			closeSeg = seg
		}
		return true
	})
	if closeSeg.N != 1 || closeSeg.Points[0] != (geom.Point{X: 1, Y: 2}) {
		t.Errorf("expected auto-close to re-emit start point, got %v", closeSeg)
	}
}

func TestEmptyPath(t *testing.T) {
	var p *Path
	if !p.IsEmpty() {
		t.Error("expected nil path to be empty")
	}
	if _, ok := p.Bounds(); ok {
		t.Error("expected no bounds on empty path")
	}
}

func TestFromRect(t *testing.T) {
	r, _ := geom.NewRect(0, 0, 4, 4)
	p, ok := FromRect(r)
	if !ok {
		t.Fatal("expected ok")
	}
	if len(p.Verbs()) != 5 { // move, line, line, line, close
		t.Errorf("got %d verbs", len(p.Verbs()))
	}
}

func TestTransform(t *testing.T) {
	b := NewBuilder()
	p, _ := b.MoveTo(geom.Pt(1, 1)).LineTo(geom.Pt(2, 2)).Finish()
	out, ok := p.Transform(geom.NewTranslate(10, 0))
	if !ok {
		t.Fatal("expected ok")
	}
	if out.Points()[0] != (geom.Point{X: 11, Y: 1}) {
		t.Errorf("got %v", out.Points()[0])
	}
}
