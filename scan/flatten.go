package scan

import (
	"math"

	"goraster.dev/raster2d/geom"
)

// flattenQuad and flattenCubic flatten curves directly in the rasterizer's
// own coordinate space, using r.CTM's linear part for CTM-aware tolerance
// checking (mirrors the teacher's transformLinear-based flattenQuadratic/
// flattenCubic, since here the edges still need a device-space transform
// applied per segment by the caller).
func flattenQuad(p0, p1, p2 geom.Point, flatness float32, linear func(geom.Point) geom.Point, emit func(from, to geom.Point)) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	errDev := linear(e).Length()

	n := 1
	if errDev > flatness {
		n = int(math.Ceil(math.Sqrt(float64(errDev / flatness))))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

func flattenCubic(p0, p1, p2, p3 geom.Point, flatness float32, linear func(geom.Point) geom.Point, emit func(from, to geom.Point)) {
	d1 := linear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := linear(p1.Sub(p2.Mul(2)).Add(p3))
	mDev := d1.Length()
	if d2.Length() > mDev {
		mDev = d2.Length()
	}

	n := 1
	if mDev > 0 {
		nf := math.Sqrt(3 * float64(mDev) / (4 * float64(flatness)))
		if nf > 1 {
			n = int(math.Ceil(nf))
		}
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float32(i) / float32(n)
		omt := 1 - t
		omt2 := omt * omt
		omt3 := omt2 * omt
		t2 := t * t
		t3 := t2 * t
		pt := p0.Mul(omt3).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t3))
		emit(prev, pt)
		prev = pt
	}
}
