package gradient

import (
	"testing"

	"golang.org/x/image/math/f32"
)

func TestTwoStopInterpolation(t *testing.T) {
	g := New([]Stop{
		{T: 0, Color: f32.Vec4{0, 0, 0, 1}},
		{T: 1, Color: f32.Vec4{1, 1, 1, 1}},
	}, Pad)

	mid := g.At(0.5)
	for i, c := range mid {
		if c < 0.49 || c > 0.51 {
			t.Errorf("component %d: got %v, want ~0.5", i, c)
		}
	}
}

func TestGeneralLUTMultiStop(t *testing.T) {
	g := New([]Stop{
		{T: 0, Color: f32.Vec4{0, 0, 0, 1}},
		{T: 0.5, Color: f32.Vec4{1, 0, 0, 1}},
		{T: 1, Color: f32.Vec4{1, 1, 0, 1}},
	}, Pad)

	start := g.At(0)
	if start[0] > 0.05 {
		t.Errorf("expected near-black at t=0, got %v", start)
	}
	mid := g.At(0.5)
	if mid[0] < 0.9 {
		t.Errorf("expected near-red at t=0.5, got %v", mid)
	}
	end := g.At(1)
	if end[1] < 0.9 {
		t.Errorf("expected green channel high at t=1, got %v", end)
	}
}

func TestSingleStopIsUniform(t *testing.T) {
	g := New([]Stop{{T: 0.3, Color: f32.Vec4{0.1, 0.2, 0.3, 1}}}, Pad)
	if g.At(-5) != g.At(5) {
		t.Error("expected a single-stop gradient to be uniform everywhere")
	}
}

func TestSpreadPad(t *testing.T) {
	if got := applySpread(Pad, -1); got != 0 {
		t.Errorf("got %v", got)
	}
	if got := applySpread(Pad, 2); got != 1 {
		t.Errorf("got %v", got)
	}
}

func TestSpreadRepeat(t *testing.T) {
	if got := applySpread(Repeat, 1.25); got < 0.24 || got > 0.26 {
		t.Errorf("got %v", got)
	}
	if got := applySpread(Repeat, -0.25); got < 0.74 || got > 0.76 {
		t.Errorf("got %v", got)
	}
}

func TestSpreadReflect(t *testing.T) {
	if got := applySpread(Reflect, 1.25); got < 0.74 || got > 0.76 {
		t.Errorf("got %v", got)
	}
	if got := applySpread(Reflect, 0.25); got < 0.24 || got > 0.26 {
		t.Errorf("got %v", got)
	}
}

func TestEmptyStopsIsTransparent(t *testing.T) {
	g := New(nil, Pad)
	if g.At(0.5) != (f32.Vec4{}) {
		t.Errorf("expected transparent black for no stops, got %v", g.At(0.5))
	}
}
