package pipeline

import (
	"goraster.dev/raster2d/blend"
	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/mask"
	"goraster.dev/raster2d/pixmap"
	"goraster.dev/raster2d/shader"
)

// highpLanes is one row's working pixel state as parallel scalar arrays,
// the "fall back to scalar arrays behind a uniform lane API" rendering of
// spec.md §9's 8-wide high-precision lane registers. r/g/b/a is the
// current working color: seeded by the shader, then overwritten in place
// by each later stage. dr/dg/db/da is the untouched destination, kept
// around for the blend and coverage-lerp stages. cov is the
// per-pixel combined coverage in [0,1].
type highpLanes struct {
	r, g, b, a     []float32
	dr, dg, db, da []float32
	cov            []float32
}

func newHighpLanes(n int, coverage []float32) *highpLanes {
	l := &highpLanes{
		r: make([]float32, n), g: make([]float32, n), b: make([]float32, n), a: make([]float32, n),
		dr: make([]float32, n), dg: make([]float32, n), db: make([]float32, n), da: make([]float32, n),
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

// highpStage is one tagged, independently dispatchable stage in
// spec.md §4.7's pipeline taxonomy (gather, mask-multiply, blend, store),
// run across an entire row of lanes before the next stage begins. Compile
// assembles the ordered stage list a Program executes (highpStages); this
// is the "Program synthesis" recipe of spec.md §4.7.
type highpStage func(pm *pixmap.Pixmap, y, xStart int, l *highpLanes)

// highpSeedShader is the gather stage: it samples the shader (which may
// itself be a tile/sampler/gradient-lookup chain, e.g. shader.Pattern or
// shader.Linear) at every lane's pixel center.
func highpSeedShader(s shader.Shader) highpStage {
	return func(pm *pixmap.Pixmap, y, xStart int, l *highpLanes) {
		for i := range l.r {
			v := s.Sample(geom.Point{X: float32(xStart+i) + 0.5, Y: float32(y) + 0.5})
			l.r[i], l.g[i], l.b[i], l.a[i] = v[0], v[1], v[2], v[3]
		}
	}
}

func highpLoadDest(pm *pixmap.Pixmap, y, xStart int, l *highpLanes) {
	for i := range l.dr {
		d := loadDest(pm, xStart+i, y)
		l.dr[i], l.dg[i], l.db[i], l.da[i] = d.R, d.G, d.B, d.A
	}
}

// highpMaskMultiply is the mask-multiply stage: it folds the clip mask's
// per-pixel coverage into the running coverage lane, in addition to
// whatever coverage the scan converter already seeded.
func highpMaskMultiply(m *mask.Mask) highpStage {
	return func(pm *pixmap.Pixmap, y, xStart int, l *highpLanes) {
		for i := range l.cov {
			l.cov[i] *= float32(m.At(xStart+i, y)) / 255
		}
	}
}

func highpBlend(mode blend.Mode) highpStage {
	return func(pm *pixmap.Pixmap, y, xStart int, l *highpLanes) {
		for i := range l.r {
			src := blend.RGBA{R: l.r[i], G: l.g[i], B: l.b[i], A: l.a[i]}
			dst := blend.RGBA{R: l.dr[i], G: l.dg[i], B: l.db[i], A: l.da[i]}
			out := blend.Apply(mode, src, dst)
			l.r[i], l.g[i], l.b[i], l.a[i] = out.R, out.G, out.B, out.A
		}
	}
}

// highpCoverageLerp is the scale_u8/lerp_u8 stage: it mixes the blended
// result back toward the untouched destination by (1-coverage), uniformly
// regardless of blend mode.
func highpCoverageLerp(pm *pixmap.Pixmap, y, xStart int, l *highpLanes) {
	for i := range l.cov {
		cov := l.cov[i]
		if cov >= 1 {
			continue
		}
		inv := 1 - cov
		l.r[i] = l.r[i]*cov + l.dr[i]*inv
		l.g[i] = l.g[i]*cov + l.dg[i]*inv
		l.b[i] = l.b[i]*cov + l.db[i]*inv
		l.a[i] = l.a[i]*cov + l.da[i]*inv
	}
}

func highpStore(pm *pixmap.Pixmap, y, xStart int, l *highpLanes) {
	for i := range l.r {
		if l.cov[i] <= 0 {
			continue
		}
		pm.SetPixel(xStart+i, y, toPixel(blend.RGBA{R: l.r[i], G: l.g[i], B: l.b[i], A: l.a[i]}))
	}
}
