package blend

import "testing"

func almostEqual(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}

func TestClearIsZero(t *testing.T) {
	got := Apply(Clear, RGBA{R: 1, G: 1, B: 1, A: 1}, RGBA{R: 1, G: 1, B: 1, A: 1})
	if got != (RGBA{}) {
		t.Errorf("got %v", got)
	}
}

func TestSourceOverOpaqueSourceWins(t *testing.T) {
	src := RGBA{R: 1, G: 0, B: 0, A: 1}
	dst := RGBA{R: 0, G: 1, B: 0, A: 1}
	got := Apply(SourceOver, src, dst)
	if !almostEqual(got.R, 1) || !almostEqual(got.G, 0) {
		t.Errorf("expected opaque source to fully replace dest, got %v", got)
	}
}

func TestSourceOverTransparentSourceIsNoop(t *testing.T) {
	src := RGBA{}
	dst := RGBA{R: 0.2, G: 0.3, B: 0.4, A: 0.5}
	got := Apply(SourceOver, src, dst)
	if got != dst {
		t.Errorf("expected transparent source to be a no-op, got %v vs %v", got, dst)
	}
}

func TestPlusSaturates(t *testing.T) {
	src := RGBA{R: 0.8, G: 0.8, B: 0.8, A: 0.8}
	dst := RGBA{R: 0.8, G: 0.8, B: 0.8, A: 0.8}
	got := Apply(Plus, src, dst)
	if got.R != 1 || got.A != 1 {
		t.Errorf("expected saturating add to clamp to 1, got %v", got)
	}
}

func TestMultiplyWithWhiteIsNoop(t *testing.T) {
	src := RGBA{R: 1, G: 1, B: 1, A: 1} // opaque white, unpremultiplied (1,1,1)
	dst := RGBA{R: 0.2, G: 0.4, B: 0.6, A: 1}
	got := Apply(Multiply, src, dst)
	if !almostEqual(got.R, dst.R) || !almostEqual(got.G, dst.G) || !almostEqual(got.B, dst.B) {
		t.Errorf("expected multiply-by-white to be a no-op, got %v vs %v", got, dst)
	}
}

func TestScreenWithBlackIsNoop(t *testing.T) {
	src := RGBA{R: 0, G: 0, B: 0, A: 1} // opaque black
	dst := RGBA{R: 0.3, G: 0.5, B: 0.7, A: 1}
	got := Apply(Screen, src, dst)
	if !almostEqual(got.R, dst.R) || !almostEqual(got.G, dst.G) {
		t.Errorf("expected screen-with-black to be a no-op, got %v vs %v", got, dst)
	}
}

func TestColorDodgeFiniteAtExtremes(t *testing.T) {
	// cb=0 must yield 0, not NaN/Inf; cs=1 (Sa) must yield 1.
	if got := colorDodge(0.5, 0); got != 0 {
		t.Errorf("expected 0 for cb=0, got %v", got)
	}
	if got := colorDodge(1, 0.5); got != 1 {
		t.Errorf("expected 1 for cs=1, got %v", got)
	}
}

func TestColorBurnFiniteAtExtremes(t *testing.T) {
	if got := colorBurn(0.5, 1); got != 1 {
		t.Errorf("expected 1 for cb=1, got %v", got)
	}
	if got := colorBurn(0, 0.5); got != 0 {
		t.Errorf("expected 0 for cs=0, got %v", got)
	}
}

func TestLuminosityOfOpaqueInputsIsOpaque(t *testing.T) {
	src := RGBA{R: 1, G: 0, B: 0, A: 1}
	dst := RGBA{R: 0, G: 0.6, B: 0.2, A: 1}
	got := Apply(Luminosity, src, dst)
	// Luminosity mode takes dest's hue/sat with src's luminosity; alpha must
	// stay fully opaque (both inputs opaque -> source-over alpha == 1).
	if !almostEqual(got.A, 1) {
		t.Errorf("expected opaque result, got alpha %v", got.A)
	}
}

func TestClipColorStaysInGamut(t *testing.T) {
	out := clipColor([3]float32{1.5, -0.2, 0.5})
	for _, c := range out {
		if c < -1e-4 || c > 1+1e-4 {
			t.Errorf("clipColor left an out-of-gamut component: %v", out)
		}
	}
}
