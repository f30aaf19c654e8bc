package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// GradientStop is a single stop in a Gradient. T is a position in the
// normalized 0..1 range.
type GradientStop struct {
	T     float32
	Color Color
}

// Gradient is a simple n-stop color gradient sampled along 0..1.
// Stops must be in visual order. Immutable after construction, so one
// gradient can be shared by any number of particles.
type Gradient struct {
	stops []GradientStop
}

// NewGradient creates a gradient from stops. Panics if stops is empty.
func NewGradient(stops ...GradientStop) *Gradient {
	if len(stops) == 0 {
		panic("render: gradient must have at least 1 stop")
	}
	owned := make([]GradientStop, len(stops))
	copy(owned, stops)
	return &Gradient{stops: owned}
}

// NewGradientHSV creates a gradient with stops evenly spaced between
// two HSV endpoints, interpolating through HSV space. Hues are degrees.
func NewGradientHSV(fromH, fromS, fromV, toH, toS, toV float64, steps int, alpha uint8) *Gradient {
	if steps < 2 {
		steps = 2
	}
	from := colorful.Hsv(fromH, fromS, fromV)
	to := colorful.Hsv(toH, toS, toV)

	stops := make([]GradientStop, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		c := from.BlendHsv(to, t).Clamped()
		r, g, b := c.RGB255()
		stops[i] = GradientStop{
			T:     float32(t),
			Color: Color{R: r, G: g, B: b, A: alpha},
		}
	}
	return &Gradient{stops: stops}
}

// Hex parses a "#rrggbb" hex string into an opaque color. Invalid input
// yields opaque black.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorBlack
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 255}
}

// Sample returns the gradient color at position t, clamped to 0..1.
func (g *Gradient) Sample(t float32) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	if len(g.stops) == 1 {
		return g.stops[0].Color
	}

	for i := 0; i+1 < len(g.stops); i++ {
		a, b := &g.stops[i], &g.stops[i+1]
		if t >= a.T && t <= b.T {
			span := b.T - a.T
			if span <= 0 {
				return b.Color
			}
			return Lerp(a.Color, b.Color, (t-a.T)/span)
		}
	}

	return g.stops[len(g.stops)-1].Color
}
