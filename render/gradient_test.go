package render

import (
	"testing"
)

func TestGradientSample(t *testing.T) {
	g := NewGradient(
		GradientStop{T: 0.0, Color: RGBA(255, 0, 0, 255)},
		GradientStop{T: 0.5, Color: RGBA(0, 255, 0, 255)},
		GradientStop{T: 1.0, Color: RGBA(0, 0, 255, 255)},
	)

	if got := g.Sample(0); got != RGBA(255, 0, 0, 255) {
		t.Errorf("t=0: got %v", got)
	}
	if got := g.Sample(1); got != RGBA(0, 0, 255, 255) {
		t.Errorf("t=1: got %v", got)
	}
	if got := g.Sample(-2); got != RGBA(255, 0, 0, 255) {
		t.Errorf("t<0 must clamp: got %v", got)
	}
	if got := g.Sample(9); got != RGBA(0, 0, 255, 255) {
		t.Errorf("t>1 must clamp: got %v", got)
	}

	mid := g.Sample(0.25)
	if absDiff(mid.R, 128) > 1 || absDiff(mid.G, 128) > 1 || mid.B != 0 {
		t.Errorf("t=0.25: got %v, want ≈(128,128,0)", mid)
	}
}

func TestGradientSingleStop(t *testing.T) {
	g := NewGradient(GradientStop{T: 0.5, Color: ColorTeal})
	for _, tv := range []float32{0, 0.3, 1} {
		if got := g.Sample(tv); got != ColorTeal {
			t.Errorf("single stop at t=%g: got %v", tv, got)
		}
	}
}

func TestGradientEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("empty gradient must panic")
		}
	}()
	NewGradient()
}

func TestGradientHSV(t *testing.T) {
	g := NewGradientHSV(0, 1, 1, 240, 1, 1, 8, 255)

	start := g.Sample(0)
	if start.R < 250 || start.G > 5 || start.B > 5 {
		t.Errorf("hue 0 must start red: got %v", start)
	}
	end := g.Sample(1)
	if end.B < 250 || end.R > 5 {
		t.Errorf("hue 240 must end blue: got %v", end)
	}
	if start.A != 255 {
		t.Errorf("alpha: got %d", start.A)
	}
}

func TestHex(t *testing.T) {
	if got := Hex("#ff8000"); got != RGBA(255, 128, 0, 255) {
		t.Errorf("hex parse: got %v", got)
	}
	if got := Hex("not-a-color"); got != ColorBlack {
		t.Errorf("invalid hex must fall back to black: got %v", got)
	}
}
