// Package particle implements the engine's particle subsystem: a dense
// vector of particles advanced each frame and emitted as sub-cell draw
// calls into a caller-chosen layer.
//
// Particles always draw at the end of the frame, after user drawing,
// so they land on top of anything else pushed to their layer. Spawn to
// a lower layer to put particles underneath other elements.
package particle

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/emberterm/render"
)

// Format selects the sub-cell glyph a particle renders with
type Format uint8

const (
	FormatOctad  Format = iota // braille dot, 2×4 sub-pixels per cell
	FormatTwoxel               // half block, 2 sub-pixels per cell
)

// EmitterShape selects the direction distribution of spawned particles
type EmitterShape uint8

const (
	EmitterCircle EmitterShape = iota
	EmitterCone
)

// Emitter describes one burst: how many particles and in which
// directions they leave the spawn point.
type Emitter struct {
	Shape EmitterShape
	Count int

	// Cone parameters, in degrees
	DirectionDeg float32
	WidthDeg     float32
}

// DefaultEmitter is a 25-particle circular burst
var DefaultEmitter = Emitter{Shape: EmitterCircle, Count: 25}

// ColorSource yields a particle's color over its lifetime: either a
// solid color or a gradient indexed by age fraction.
type ColorSource struct {
	solid    render.Color
	gradient *render.Gradient
}

// Solid returns a fixed-color source
func Solid(c render.Color) ColorSource {
	return ColorSource{solid: c}
}

// FromGradient returns a source sampling g by age fraction (0 at
// spawn, 1 at death)
func FromGradient(g *render.Gradient) ColorSource {
	return ColorSource{gradient: g}
}

func (s ColorSource) at(t float32) render.Color {
	if s.gradient != nil {
		return s.gradient.Sample(t)
	}
	return s.solid
}

// Spec describes the behavior of particles in a burst
type Spec struct {
	Color ColorSource

	// Initial speed range in cells per second
	SpeedMin float32
	SpeedMax float32

	// Lifetime in seconds
	Lifetime float32

	// GravityScale multiplies the system gravity constant; 0 floats
	GravityScale float32

	// Drag is an exponential velocity decay factor per second
	Drag float32

	Format Format
}

// DefaultSpec mirrors a small white firework
var DefaultSpec = Spec{
	Color:        Solid(render.ColorWhite),
	SpeedMin:     15.0,
	SpeedMax:     30.0,
	Lifetime:     3.0,
	GravityScale: 1.0,
	Drag:         3.0,
}

// Particle is one live particle. Position and velocity are in cell
// units; sub-cell precision comes from the octad/twoxel projection.
type Particle struct {
	X, Y   float32
	VX, VY float32
	AX, AY float32

	Life    float32 // seconds remaining
	MaxLife float32

	// Drag is an exponential velocity decay factor per second
	Drag float32

	Color  ColorSource
	Layer  render.LayerIndex
	Format Format
}

// System owns the dense particle vector. Storage is index-stable only
// within a frame: compaction swap-removes dead particles. Capacity
// grows as needed and never shrinks.
type System struct {
	particles []Particle

	// Gravity is the downward acceleration applied through each
	// spec's GravityScale, in cells per second squared
	Gravity float32

	// AspectY compresses vertical motion at draw time to compensate
	// for non-square terminal cells. 1 leaves physics untouched on
	// screen; 0.5 reads well on most terminals.
	AspectY float32

	rng *rand.Rand
}

// NewSystem creates a particle system with the given initial capacity
func NewSystem(capacity int) *System {
	if capacity <= 0 {
		capacity = 512
	}
	return &System{
		particles: make([]Particle, 0, capacity),
		Gravity:   200.0,
		AspectY:   1.0,
		rng:       rand.New(rand.NewSource(1)),
	}
}

// Seed reseeds the spawn randomness
func (s *System) Seed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Len returns the alive particle count
func (s *System) Len() int {
	return len(s.particles)
}

// Cap returns the current storage capacity
func (s *System) Cap() int {
	return cap(s.particles)
}

// Add appends a fully specified particle, bypassing the emitter
// distributions
func (s *System) Add(p Particle) {
	s.particles = append(s.particles, p)
}

// Spawn emits one burst at (x, y) into the given layer. Particles
// become live on the next Update.
func (s *System) Spawn(layer render.LayerIndex, x, y float32, spec *Spec, em *Emitter) {
	for i := 0; i < em.Count; i++ {
		var angle float32
		switch em.Shape {
		case EmitterCone:
			half := em.WidthDeg / 2 * math.Pi / 180
			dir := em.DirectionDeg * math.Pi / 180
			angle = dir + (s.rng.Float32()*2-1)*half
		default:
			angle = s.rng.Float32() * 2 * math.Pi
		}
		speed := spec.SpeedMin + s.rng.Float32()*(spec.SpeedMax-spec.SpeedMin)

		s.particles = append(s.particles, Particle{
			X:       x,
			Y:       y,
			VX:      speed * float32(math.Cos(float64(angle))),
			VY:      speed * float32(math.Sin(float64(angle))),
			AY:      s.Gravity * spec.GravityScale,
			Life:    spec.Lifetime,
			MaxLife: spec.Lifetime,
			Drag:    spec.Drag,
			Color:   spec.Color,
			Layer:   layer,
			Format:  spec.Format,
		})
	}
}

// Update advances every particle by dt seconds, then compacts the
// dead. The integration is exact for constant acceleration:
// x += v·dt + ½a·dt², then v += a·dt.
func (s *System) Update(dt float32) {
	if dt <= 0 {
		return
	}

	for i := range s.particles {
		p := &s.particles[i]

		p.X += (p.VX + 0.5*p.AX*dt) * dt
		p.Y += (p.VY + 0.5*p.AY*dt) * dt
		p.VX += p.AX * dt
		p.VY += p.AY * dt

		if p.Drag > 0 {
			decay := 1.0 / (1.0 + p.Drag*dt)
			p.VX *= decay
			p.VY *= decay
		}

		p.Life -= dt

		// Terminate particles whose state went non-finite
		if !finite(p.X) || !finite(p.Y) || !finite(p.Life) {
			p.Life = 0
		}
	}

	// Swap-remove compaction: O(1) per removal, reorders the vector
	for i := 0; i < len(s.particles); {
		if s.particles[i].Life <= 0 {
			last := len(s.particles) - 1
			s.particles[i] = s.particles[last]
			s.particles = s.particles[:last]
			continue
		}
		i++
	}
}

// Emit pushes one sub-cell draw call per alive particle into its
// layer. Dead particles were compacted by Update and never draw.
func (s *System) Emit(queue *render.LayeredDrawQueue) {
	for i := range s.particles {
		p := &s.particles[i]

		t := 1 - p.Life/p.MaxLife
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		color := p.Color.at(t)

		y := p.Y * s.AspectY
		switch p.Format {
		case FormatTwoxel:
			cellX := int(floor(p.X))
			cellY := int(floor(y))
			subY := int(clampF((y-float32(cellY))*2, 0, 1))
			if subY == 0 {
				queue.Push(p.Layer, render.TwoxelCall(cellX, cellY, color, render.ColorClear))
			} else {
				queue.Push(p.Layer, render.TwoxelCall(cellX, cellY, render.ColorClear, color))
			}
		default:
			cellX := int(floor(p.X))
			cellY := int(floor(y))
			subX := int(clampF((p.X-float32(cellX))*2, 0, 1))
			subY := int(clampF((y-float32(cellY))*4, 0, 3))
			mask := uint8(1) << uint(subY*2+subX)
			queue.Push(p.Layer, render.OctadCall(cellX, cellY, color, mask))
		}
	}
}

func floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
