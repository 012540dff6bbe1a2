package dash

import (
	"testing"
	"time"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/vpath"
)

func timeoutChan() <-chan time.Time {
	return time.After(5 * time.Second)
}

func straightLine(t *testing.T, length float32) *vpath.Path {
	t.Helper()
	p, ok := vpath.NewBuilder().MoveTo(geom.Pt(0, 0)).LineTo(geom.Pt(length, 0)).Finish()
	if !ok {
		t.Fatal("expected path")
	}
	return p
}

func TestApplyEvenDashes(t *testing.T) {
	p := straightLine(t, 10)
	out, ok := Apply(p, Pattern{Intervals: []float32{2, 2}}, 0.25, 1)
	if !ok {
		t.Fatal("expected ok")
	}
	// 10 units / (2 on + 2 off) = 2.5 periods -> 3 full on-segments
	// (0-2, 4-6, 8-10).
	moves := 0
	out.Segments(false, func(seg vpath.Segment) bool {
		if seg.Verb == vpath.Move {
			moves++
		}
		return true
	})
	if moves == 0 {
		t.Error("expected at least one dash segment")
	}
}

func TestApplyZeroSumPatternFails(t *testing.T) {
	p := straightLine(t, 10)
	if _, ok := Apply(p, Pattern{Intervals: []float32{0, 0}}, 0.25, 1); ok {
		t.Error("expected zero-sum pattern to fail")
	}
}

func TestApplyEmptyIntervalsFails(t *testing.T) {
	p := straightLine(t, 10)
	if _, ok := Apply(p, Pattern{}, 0.25, 1); ok {
		t.Error("expected empty pattern to fail")
	}
}

func TestApplyOddLengthPatternDoubles(t *testing.T) {
	p := straightLine(t, 10)
	// Odd-length [2] conceptually doubles to [2,2]; should behave like the
	// even-length equivalent.
	odd, ok := Apply(p, Pattern{Intervals: []float32{2}}, 0.25, 1)
	if !ok {
		t.Fatal("expected ok")
	}
	even, ok := Apply(p, Pattern{Intervals: []float32{2, 2}}, 0.25, 1)
	if !ok {
		t.Fatal("expected ok")
	}
	oddBounds, _ := odd.Bounds()
	evenBounds, _ := even.Bounds()
	if oddBounds != evenBounds {
		t.Errorf("expected odd-length doubling to match explicit even pattern: %v vs %v", oddBounds, evenBounds)
	}
}

func TestApplyExtremeRatioDoesNotHang(t *testing.T) {
	p := straightLine(t, 1e8)
	done := make(chan struct{})
	go func() {
		Apply(p, Pattern{Intervals: []float32{1e-6, 1e-6}}, 0.25, 1)
		close(done)
	}()
	select {
	case <-done:
	case <-timeoutChan():
		t.Fatal("Apply did not terminate on a pathological dash/length ratio")
	}
}

func TestApplyPhaseWraps(t *testing.T) {
	p := straightLine(t, 10)
	a, okA := Apply(p, Pattern{Intervals: []float32{2, 2}, Phase: 4}, 0.25, 1)
	b, okB := Apply(p, Pattern{Intervals: []float32{2, 2}, Phase: 0}, 0.25, 1)
	if !okA || !okB {
		t.Fatal("expected both to succeed")
	}
	// Phase 4 is exactly one full period (2+2) ahead of phase 0, so the
	// resulting dash pattern should be identical.
	ab, _ := a.Bounds()
	bb, _ := b.Bounds()
	if ab != bb {
		t.Errorf("expected phase-wrapped pattern to match: %v vs %v", ab, bb)
	}
}
