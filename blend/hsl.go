package blend

// applyHSL implements the four non-separable CSS-Compositing blend modes
// (Hue, Saturation, Color, Luminosity) via the spec's clipColor/setSat/setLum
// auxiliaries, operating on unpremultiplied RGB triples and recombining with
// the same Co = Sc*(1-Da) + Dc*(1-Sa) + Sa*Da*B(Cs,Cb) formula used by the
// separable modes, alpha via source-over.
func applyHSL(m Mode, src, dst RGBA) RGBA {
	a := src.A + dst.A*(1-src.A)

	cs := [3]float32{unpremul(src.R, src.A), unpremul(src.G, src.A), unpremul(src.B, src.A)}
	cb := [3]float32{unpremul(dst.R, dst.A), unpremul(dst.G, dst.A), unpremul(dst.B, dst.A)}

	var b [3]float32
	switch m {
	case Hue:
		b = setLum(setSat(cs, sat(cb)), lum(cb))
	case Saturation:
		b = setLum(setSat(cb, sat(cs)), lum(cb))
	case Color:
		b = setLum(cs, lum(cb))
	case Luminosity:
		b = setLum(cb, lum(cs))
	}

	out := RGBA{A: a}
	out.R = src.R*(1-dst.A) + dst.R*(1-src.A) + src.A*dst.A*b[0]
	out.G = src.G*(1-dst.A) + dst.G*(1-src.A) + src.A*dst.A*b[1]
	out.B = src.B*(1-dst.A) + dst.B*(1-src.A) + src.A*dst.A*b[2]
	return out
}

func lum(c [3]float32) float32 {
	return 0.3*c[0] + 0.59*c[1] + 0.11*c[2]
}

func sat(c [3]float32) float32 {
	return max32(max32(c[0], c[1]), c[2]) - min32(min32(c[0], c[1]), c[2])
}

// clipColor pulls an out-of-gamut color back into [0,1] while preserving
// its luminosity, per the CSS Compositing spec's ClipColor.
func clipColor(c [3]float32) [3]float32 {
	l := lum(c)
	n := min32(min32(c[0], c[1]), c[2])
	x := max32(max32(c[0], c[1]), c[2])

	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setLum(c [3]float32, l float32) [3]float32 {
	d := l - lum(c)
	for i := range c {
		c[i] += d
	}
	return clipColor(c)
}

// setSat rescales c so its saturation equals s while preserving hue and the
// relative order of its three channels, per the CSS Compositing spec's
// SetSat.
func setSat(c [3]float32, s float32) [3]float32 {
	minI, maxI := 0, 0
	for i := 1; i < 3; i++ {
		if c[i] < c[minI] {
			minI = i
		}
		if c[i] > c[maxI] {
			maxI = i
		}
	}
	midI := 3 - minI - maxI
	if minI == maxI {
		midI = (maxI + 1) % 3
		if midI == minI {
			midI = (midI + 1) % 3
		}
	}

	var out [3]float32
	if c[maxI] > c[minI] {
		out[midI] = (c[midI] - c[minI]) * s / (c[maxI] - c[minI])
		out[maxI] = s
	}
	out[minI] = 0
	return out
}
