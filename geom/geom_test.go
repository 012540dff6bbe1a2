package geom

import (
	"math"
	"testing"
)

func TestPointNormalize(t *testing.T) {
	p := Pt(3, 4)
	n, ok := p.Normalize()
	if !ok {
		t.Fatal("expected ok")
	}
	if math.Abs(float64(n.Length())-1) > 1e-5 {
		t.Errorf("expected unit length, got %v", n.Length())
	}

	if _, ok := Pt(0, 0).Normalize(); ok {
		t.Error("expected zero vector to fail to normalize")
	}
}

func TestPointDotCross(t *testing.T) {
	a, b := Pt(1, 0), Pt(0, 1)
	if a.Dot(b) != 0 {
		t.Errorf("expected perpendicular dot 0, got %v", a.Dot(b))
	}
	if a.Cross(b) != 1 {
		t.Errorf("expected cross 1, got %v", a.Cross(b))
	}
}

func TestTransformApply(t *testing.T) {
	tr := NewScaleTranslate(2, 3, 10, 20)
	p := tr.Apply(Pt(1, 1))
	if p != (Point{X: 12, Y: 23}) {
		t.Errorf("got %v", p)
	}
}

func TestTransformInvert(t *testing.T) {
	tr := NewScaleTranslate(2, 4, 5, -5)
	inv, ok := tr.Invert()
	if !ok {
		t.Fatal("expected invertible")
	}
	p := Pt(7, -3)
	round := inv.Apply(tr.Apply(p))
	if round.Sub(p).Length() > 1e-3 {
		t.Errorf("round trip mismatch: %v vs %v", round, p)
	}

	degenerate := Transform{}
	if _, ok := degenerate.Invert(); ok {
		t.Error("expected zero transform to be non-invertible")
	}
}

func TestTransformConcat(t *testing.T) {
	a := NewTranslate(1, 0)
	b := NewTranslate(0, 1)
	c := a.Concat(b)
	p := c.Apply(Pt(0, 0))
	if p != (Point{X: 1, Y: 1}) {
		t.Errorf("got %v", p)
	}
}

func TestRectIntersect(t *testing.T) {
	a, _ := NewRect(0, 0, 10, 10)
	b, _ := NewRect(5, 5, 15, 15)
	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("expected overlap")
	}
	want, _ := NewRect(5, 5, 10, 10)
	if got != want {
		t.Errorf("got %v want %v", got, want)
	}

	c, _ := NewRect(20, 20, 30, 30)
	if _, ok := a.Intersect(c); ok {
		t.Error("expected no overlap")
	}
}

func TestNewRectRejectsInverted(t *testing.T) {
	if _, ok := NewRect(10, 0, 0, 10); ok {
		t.Error("expected inverted rect to be rejected")
	}
}
