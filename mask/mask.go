// Package mask implements the clip-mask engine (C7): an 8-bit coverage
// buffer that can be rendered from a path and intersected with other masks
// or with a paint operation's coverage, thinly wrapping scan.Rasterizer.
package mask

import (
	"goraster.dev/raster2d/geom"
	"goraster.dev/raster2d/scan"
	"goraster.dev/raster2d/vpath"
)

// Mask is a rectangular 8-bit alpha buffer: Data[y*Width+x] is the
// coverage at (x,y), 0 (fully excluded) to 255 (fully included).
type Mask struct {
	Width, Height int
	Data          []uint8
}

// New returns a zeroed (fully excluded) Mask of the given size.
func New(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{Width: width, Height: height, Data: make([]uint8, width*height)}
}

// At returns the coverage at (x, y), or 0 if out of bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Data[y*m.Width+x]
}

// Fill renders p (in the coordinate space mapped to the mask by ctm) into a
// new full-resolution Mask covering [0,width)x[0,height). antiAlias selects
// which scan converter produces the coverage, per spec.md §6's
// Mask::fill_path(path, fill_rule, anti_alias, transform): true uses the
// coverage-based scan.Rasterizer, false uses the run-based
// scan.AliasedRasterizer, whose runs are each full (255) coverage.
func Fill(p *vpath.Path, rule scan.FillRule, antiAlias bool, ctm geom.Transform, flatness float32, width, height int) *Mask {
	m := New(width, height)
	clip, ok := geom.NewIntRect(0, 0, int32(width), int32(height))
	if !ok {
		return m
	}

	if !antiAlias {
		ar := scan.NewAliasedRasterizer(clip)
		ar.CTM = ctm
		if flatness > 0 {
			ar.Flatness = flatness
		}
		ar.Fill(p, rule, func(run scan.Run) {
			if run.Y < 0 || run.Y >= height {
				return
			}
			row := m.Data[run.Y*width : run.Y*width+width]
			for x := run.X; x < run.X+run.Len; x++ {
				if x < 0 || x >= width {
					continue
				}
				row[x] = 255
			}
		})
		return m
	}

	r := scan.NewRasterizer(clip)
	r.CTM = ctm
	if flatness > 0 {
		r.Flatness = flatness
	}
	r.Fill(p, rule, func(y, xMin int, coverage []float32) {
		if y < 0 || y >= height {
			return
		}
		row := m.Data[y*width : y*width+width]
		for i, c := range coverage {
			x := xMin + i
			if x < 0 || x >= width {
				continue
			}
			v := c * 255
			if v > 255 {
				v = 255
			}
			if v < 0 {
				v = 0
			}
			row[x] = uint8(v)
		}
	})
	return m
}

// Intersect multiplies every sample of m by the corresponding sample of
// other (both as coverage fractions of 255), in place. Used to combine
// nested clip paths (spec.md §4.6).
func (m *Mask) Intersect(other *Mask) {
	n := min(len(m.Data), len(other.Data))
	for i := 0; i < n; i++ {
		m.Data[i] = uint8((uint32(m.Data[i])*uint32(other.Data[i]) + 127) / 255)
	}
}
