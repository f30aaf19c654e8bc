package render

import (
	"math"
	"testing"
)

// refBlend is the float reference for source-over with straight alpha.
// A transparent top leaves bottom unchanged.
func refBlend(bottom, top Color) Color {
	if top.A == 0 {
		return bottom
	}
	ta := float64(top.A) / 255.0
	ba := float64(bottom.A) / 255.0
	outA := ta + ba*(1-ta)
	if outA == 0 {
		return Color{}
	}
	ch := func(tc, bc uint8) uint8 {
		v := (float64(tc)*ta + float64(bc)*ba*(1-ta)) / outA
		return uint8(math.Min(255, math.Round(v)))
	}
	return Color{
		R: ch(top.R, bottom.R),
		G: ch(top.G, bottom.G),
		B: ch(top.B, bottom.B),
		A: uint8(math.Round(outA * 255)),
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestBlendEdgeCases(t *testing.T) {
	under := RGBA(10, 20, 30, 200)

	// Transparent top returns bottom unchanged
	got := BlendSourceOver(under, RGBA(255, 255, 255, 0))
	if got != under {
		t.Errorf("alpha-0 top must return bottom: got %v", got)
	}

	// Opaque top returns top unchanged
	top := RGBA(1, 2, 3, 255)
	got = BlendSourceOver(under, top)
	if got != top {
		t.Errorf("alpha-255 top must return top: got %v", got)
	}

	// Both transparent yields transparent black
	got = BlendSourceOver(Color{}, Color{})
	if got != (Color{}) {
		t.Errorf("transparent over transparent must be clear: got %v", got)
	}
}

func TestBlendMatchesReference(t *testing.T) {
	// Sample the channel/alpha space; exhaustive would be 256^4.
	// The LUT scheme divides a ±0.5-rounded numerator by the output
	// alpha, so precision degrades as outA shrinks: over an opaque
	// bottom (the pipeline case, outA=255) results stay within ±2,
	// elsewhere within ±5 for the sampled alphas.
	alphas := []uint8{0, 64, 127, 128, 200, 255}
	chans := []uint8{0, 1, 33, 127, 128, 200, 254, 255}

	for _, ba := range alphas {
		for _, ta := range alphas {
			tol := 5
			if ba == 255 {
				tol = 2
			}
			for _, bc := range chans {
				for _, tc := range chans {
					bottom := RGBA(bc, bc, bc, ba)
					top := RGBA(tc, tc, tc, ta)
					got := BlendSourceOver(bottom, top)
					want := refBlend(bottom, top)

					if absDiff(got.A, want.A) > tol {
						t.Fatalf("blend(%v over %v): alpha %d, want %d", top, bottom, got.A, want.A)
					}
					if absDiff(got.R, want.R) > tol {
						t.Fatalf("blend(%v over %v): R %d, want %d", top, bottom, got.R, want.R)
					}
				}
			}
		}
	}
}

func TestBlendHalfRedOverBlue(t *testing.T) {
	got := BlendSourceOver(RGBA(0, 0, 255, 255), RGBA(255, 0, 0, 128))
	want := RGBA(128, 0, 127, 255)

	if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 ||
		absDiff(got.B, want.B) > 1 || got.A != 255 {
		t.Errorf("50%% red over blue: got %v, want ≈%v", got, want)
	}
}

// Source-over folds must associate within LUT rounding
func TestBlendAssociativity(t *testing.T) {
	a := RGBA(200, 30, 40, 90)
	b := RGBA(10, 220, 60, 140)
	c := RGBA(80, 80, 250, 200)
	base := RGBA(0, 0, 0, 255)

	seq := BlendSourceOver(BlendSourceOver(BlendSourceOver(base, a), b), c)

	ref := refBlend(refBlend(refBlend(base, a), b), c)

	const tol = 6 // three folds, ±2 each over an opaque base
	if absDiff(seq.R, ref.R) > tol || absDiff(seq.G, ref.G) > tol ||
		absDiff(seq.B, ref.B) > tol || absDiff(seq.A, ref.A) > tol {
		t.Errorf("fold diverged from reference: got %v, want ≈%v", seq, ref)
	}
}

func TestLerp(t *testing.T) {
	a := RGBA(0, 0, 0, 0)
	b := RGBA(255, 255, 255, 255)

	if got := Lerp(a, b, 0); got != a {
		t.Errorf("t=0 must return a: got %v", got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("t=1 must return b: got %v", got)
	}
	if got := Lerp(a, b, -5); got != a {
		t.Errorf("t<0 must clamp to a: got %v", got)
	}

	mid := Lerp(a, b, 0.5)
	if absDiff(mid.R, 128) > 1 {
		t.Errorf("midpoint R: got %d, want ≈128", mid.R)
	}
}

func BenchmarkBlendSourceOver(b *testing.B) {
	bottom := RGBA(12, 90, 200, 255)
	top := RGBA(250, 128, 7, 93)
	for i := 0; i < b.N; i++ {
		bottom = BlendSourceOver(bottom, top)
		bottom.A = 255
	}
}
