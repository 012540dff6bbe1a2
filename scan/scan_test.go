package scan

import (
	"testing"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/vpath"
)

func square(t *testing.T, x0, y0, x1, y1 float32) *vpath.Path {
	t.Helper()
	r, ok := geom.NewRect(x0, y0, x1, y1)
	if !ok {
		t.Fatal("invalid rect")
	}
	p, ok := vpath.FromRect(r)
	if !ok {
		t.Fatal("expected path")
	}
	return p
}

func TestRasterizerFillsUnitSquare(t *testing.T) {
	clip, _ := geom.NewIntRect(0, 0, 10, 10)
	r := NewRasterizer(clip)

	p := square(t, 2, 2, 6, 6)

	var total float32
	rows := 0
	r.Fill(p, NonZero, func(y, xMin int, coverage []float32) {
		rows++
		for _, c := range coverage {
			total += c
		}
		if y < 2 || y >= 6 {
			t.Errorf("row %d out of expected range", y)
		}
	})

	if rows != 4 {
		t.Errorf("expected 4 rows, got %d", rows)
	}
	if total < 15.9 || total > 16.1 {
		t.Errorf("expected ~16 total coverage (4x4 square), got %v", total)
	}
}

func TestRasterizerClipsToDeviceRect(t *testing.T) {
	clip, _ := geom.NewIntRect(0, 0, 4, 4)
	r := NewRasterizer(clip)
	p := square(t, -5, -5, 20, 20)

	r.Fill(p, NonZero, func(y, xMin int, coverage []float32) {
		if y < 0 || y >= 4 {
			t.Errorf("row %d escaped clip", y)
		}
		if xMin < 0 || xMin+len(coverage) > 4 {
			t.Errorf("row %d columns escaped clip: xMin=%d len=%d", y, xMin, len(coverage))
		}
	})
}

func TestAliasedRasterizerRuns(t *testing.T) {
	clip, _ := geom.NewIntRect(0, 0, 10, 10)
	ar := NewAliasedRasterizer(clip)
	p := square(t, 2, 2, 6, 6)

	var runs []Run
	ar.Fill(p, NonZero, func(run Run) {
		runs = append(runs, run)
	})

	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(runs))
	}
	for _, run := range runs {
		if run.X != 2 || run.Len != 4 {
			t.Errorf("unexpected run %+v", run)
		}
	}
}

func TestEvenOddVsNonZero(t *testing.T) {
	// Two overlapping squares: nonzero fills the union solid, evenodd
	// leaves a hole where they overlap.
	b := vpath.NewBuilder()
	b.MoveTo(geom.Pt(0, 0)).LineTo(geom.Pt(6, 0)).LineTo(geom.Pt(6, 6)).LineTo(geom.Pt(0, 6)).Close()
	b.MoveTo(geom.Pt(2, 2)).LineTo(geom.Pt(8, 2)).LineTo(geom.Pt(8, 8)).LineTo(geom.Pt(2, 8)).Close()
	p, ok := b.Finish()
	if !ok {
		t.Fatal("expected path")
	}

	clip, _ := geom.NewIntRect(0, 0, 10, 10)

	sum := func(rule FillRule) float32 {
		r := NewRasterizer(clip)
		var total float32
		r.Fill(p, rule, func(y, xMin int, coverage []float32) {
			for _, c := range coverage {
				total += c
			}
		})
		return total
	}

	nz := sum(NonZero)
	eo := sum(EvenOdd)
	if eo >= nz {
		t.Errorf("expected even-odd coverage (%v) < nonzero coverage (%v)", eo, nz)
	}
}
