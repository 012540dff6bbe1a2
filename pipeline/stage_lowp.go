package pipeline

import (
	stdcolor "image/color"

	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/mask"
	"goraster.dev/raster2d/pixmap"
	"goraster.dev/raster2d/shader"
)

// lowpLanes mirrors highpLanes for the low-precision engine: the same
// row-wide scalar-array lane layout, but channels are normalized uint16
// (spec.md §4.7's "u16 normalized to 0..255") instead of float32.
type lowpLanes struct {
	r, g, b, a     []uint16
	dr, dg, db, da []uint16
	cov            []float32
}

func newLowpLanes(n int, coverage []float32) *lowpLanes {
	l := &lowpLanes{
		r: make([]uint16, n), g: make([]uint16, n), b: make([]uint16, n), a: make([]uint16, n),
		dr: make([]uint16, n), dg: make([]uint16, n), db: make([]uint16, n), da: make([]uint16, n),
		cov: make([]float32, n),
	}
	for i := range l.cov {
		if coverage == nil {
			l.cov[i] = 1
		} else {
			l.cov[i] = coverage[i]
		}
	}
	return l
}

// lowpStage is highpStage's low-precision counterpart; Compile builds the
// lowpStages list only when it has already selected LowPrecision.
type lowpStage func(pm *pixmap.Pixmap, y, xStart int, l *lowpLanes)

func lowpSeedShader(s shader.Shader) lowpStage {
	return func(pm *pixmap.Pixmap, y, xStart int, l *lowpLanes) {
		for i := range l.r {
			v := s.Sample(geom.Point{X: float32(xStart+i) + 0.5, Y: float32(y) + 0.5})
			l.r[i], l.g[i], l.b[i], l.a[i] = toU8(v[0]), toU8(v[1]), toU8(v[2]), toU8(v[3])
		}
	}
}

func lowpLoadDest(pm *pixmap.Pixmap, y, xStart int, l *lowpLanes) {
	for i := range l.dr {
		c, _ := pm.Pixel(xStart+i, y)
		l.dr[i], l.dg[i], l.db[i], l.da[i] = uint16(c.R), uint16(c.G), uint16(c.B), uint16(c.A)
	}
}

func lowpMaskMultiply(m *mask.Mask) lowpStage {
	return func(pm *pixmap.Pixmap, y, xStart int, l *lowpLanes) {
		for i := range l.cov {
			l.cov[i] *= float32(m.At(xStart+i, y)) / 255
		}
	}
}

func lowpBlendStage(mode lowpMode) lowpStage {
	return func(pm *pixmap.Pixmap, y, xStart int, l *lowpLanes) {
		for i := range l.r {
			src := lowpRGBA{l.r[i], l.g[i], l.b[i], l.a[i]}
			dst := lowpRGBA{l.dr[i], l.dg[i], l.db[i], l.da[i]}
			out := lowpBlend(mode, src, dst)
			l.r[i], l.g[i], l.b[i], l.a[i] = out.R, out.G, out.B, out.A
		}
	}
}

func lowpCoverageLerp(pm *pixmap.Pixmap, y, xStart int, l *lowpLanes) {
	for i := range l.cov {
		cov := l.cov[i]
		if cov >= 1 {
			continue
		}
		c := toU8(cov)
		inv := uint16(255) - c
		l.r[i] = mul255(l.r[i], c) + mul255(l.dr[i], inv)
		l.g[i] = mul255(l.g[i], c) + mul255(l.dg[i], inv)
		l.b[i] = mul255(l.b[i], c) + mul255(l.db[i], inv)
		l.a[i] = mul255(l.a[i], c) + mul255(l.da[i], inv)
	}
}

func lowpStore(pm *pixmap.Pixmap, y, xStart int, l *lowpLanes) {
	for i := range l.r {
		if l.cov[i] <= 0 {
			continue
		}
		pm.SetPixel(xStart+i, y, stdcolor.RGBA{R: uint8(l.r[i]), G: uint8(l.g[i]), B: uint8(l.b[i]), A: uint8(l.a[i])})
	}
}
