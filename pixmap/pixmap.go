// Package pixmap implements the premultiplied-alpha pixel buffer that
// raster2d renders into. It has no direct teacher analogue (the teacher
// never touches pixels, only coverage); its image.Image interop follows
// golang.org/x/image's conventions so a Pixmap composes with any
// golang.org/x/image-based codec or image/draw consumer without a copy.
package pixmap

import (
	"image"
	stdcolor "image/color"

	"goraster.dev/raster2d/geom"
)

// Pixmap is an owned, contiguous buffer of premultiplied 8-bit RGBA
// pixels. Invariant (spec.md §3/§8 property 1): every stored pixel
// satisfies R,G,B <= A.
type Pixmap struct {
	Width, Height int
	Stride        int // bytes per row, always Width*4
	Pix           []uint8
}

// New returns a zeroed (fully transparent) Pixmap of the given size, or
// false if w or h is non-positive.
func New(w, h int) (*Pixmap, bool) {
	if w <= 0 || h <= 0 {
		return nil, false
	}
	return &Pixmap{Width: w, Height: h, Stride: w * 4, Pix: make([]uint8, w*h*4)}, true
}

// FromData wraps an existing premultiplied RGBA buffer (len == w*h*4)
// without copying. Returns false if the length doesn't match or any pixel
// violates the premultiplied invariant.
func FromData(w, h int, data []uint8) (*Pixmap, bool) {
	if w <= 0 || h <= 0 || len(data) != w*h*4 {
		return nil, false
	}
	p := &Pixmap{Width: w, Height: h, Stride: w * 4, Pix: data}
	if !p.isValid() {
		return nil, false
	}
	return p, true
}

func (p *Pixmap) isValid() bool {
	for i := 0; i+3 < len(p.Pix); i += 4 {
		a := p.Pix[i+3]
		if p.Pix[i] > a || p.Pix[i+1] > a || p.Pix[i+2] > a {
			return false
		}
	}
	return true
}

// Data returns the pixmap's underlying premultiplied RGBA bytes.
func (p *Pixmap) Data() []uint8 { return p.Pix }

// Pixel returns the premultiplied RGBA color at (x, y), or false if out of
// bounds.
func (p *Pixmap) Pixel(x, y int) (stdcolor.RGBA, bool) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return stdcolor.RGBA{}, false
	}
	i := y*p.Stride + x*4
	return stdcolor.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: p.Pix[i+3]}, true
}

// SetPixel stores a premultiplied RGBA color at (x, y). No-op if out of
// bounds or the color violates the premultiplied invariant.
func (p *Pixmap) SetPixel(x, y int, c stdcolor.RGBA) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return
	}
	if c.R > c.A || c.G > c.A || c.B > c.A {
		return
	}
	i := y*p.Stride + x*4
	p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3] = c.R, c.G, c.B, c.A
}

// Fill overwrites every pixel with c.
func (p *Pixmap) Fill(c stdcolor.RGBA) {
	if c.R > c.A || c.G > c.A || c.B > c.A {
		return
	}
	for y := 0; y < p.Height; y++ {
		row := p.Pix[y*p.Stride : y*p.Stride+p.Width*4]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
		}
	}
}

// CloneRect copies the sub-rectangle r into a new, independent Pixmap.
// Returns false if r isn't fully contained in the pixmap (original_source's
// clone_rect_out_of_bound: out-of-range rects are rejected, not clamped).
func (p *Pixmap) CloneRect(r geom.IntRect) (*Pixmap, bool) {
	if r.Left < 0 || r.Top < 0 || int(r.Right) > p.Width || int(r.Bottom) > p.Height {
		return nil, false
	}
	w, h := int(r.Width()), int(r.Height())
	out, ok := New(w, h)
	if !ok {
		return nil, false
	}
	for y := 0; y < h; y++ {
		srcOff := (int(r.Top)+y)*p.Stride + int(r.Left)*4
		dstOff := y * out.Stride
		copy(out.Pix[dstOff:dstOff+w*4], p.Pix[srcOff:srcOff+w*4])
	}
	return out, true
}

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() stdcolor.Model { return stdcolor.RGBAModel }

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

// At implements image.Image.
func (p *Pixmap) At(x, y int) stdcolor.Color {
	c, ok := p.Pixel(x, y)
	if !ok {
		return stdcolor.RGBA{}
	}
	return c
}
