// Package engine ties together the terminal, frame buffers, drawing
// layers, FPS pacing, and particle state. It owns the per-frame control
// flow: StartFrame clears the queues and ticks the pacing clock, user
// drawing and particle updates push draw calls, EndFrame composes,
// diffs, writes, and swaps.
package engine

import (
	"fmt"

	"github.com/lixenwraith/emberterm/particle"
	"github.com/lixenwraith/emberterm/render"
	"github.com/lixenwraith/emberterm/terminal"
)

// Engine owns the rendering pipeline state. Not safe for concurrent
// use; all methods run on the caller's goroutine.
type Engine struct {
	term terminal.Terminal

	queue     *render.LayeredDrawQueue
	frames    *render.FramePair
	particles *particle.System

	width  int
	height int

	blendBase    Color
	blendBaseSet bool

	limiter fpsLimiter
	counter fpsCounter

	deltaTime float32
	gameTime  float32

	title       string
	initialized bool
}

// New creates an engine with the given configuration. When cfg.Terminal
// is nil the default ANSI terminal is used.
func New(cfg Config) *Engine {
	cfg.fill()

	term := cfg.Terminal
	if term == nil {
		term = terminal.New()
	}

	e := &Engine{
		term:      term,
		queue:     render.NewLayeredDrawQueue(),
		frames:    render.NewFramePair(cfg.Width, cfg.Height),
		particles: particle.NewSystem(cfg.ParticleCapacity),
		width:     cfg.Width,
		height:    cfg.Height,
		deltaTime: 1.0 / 60.0,
		title:     cfg.Title,
		limiter:   newFpsLimiter(cfg.FPSLimit),
		counter:   newFpsCounter(0.3),
	}
	e.particles.AspectY = cfg.ParticleAspectY
	if cfg.BlendColor != nil {
		e.OverrideBlendColor(*cfg.BlendColor)
	}
	return e
}

// Init enters raw terminal mode and prepares the screen. Call once
// after New and before the update loop.
func (e *Engine) Init() error {
	if err := e.term.Init(); err != nil {
		return err
	}
	if e.title != "" {
		e.term.SetTitle(e.title)
	}
	if !e.blendBaseSet {
		e.blendBase = e.term.BackgroundColor()
	}
	if err := e.term.Clear(e.blendBase); err != nil {
		return fmt.Errorf("engine init: %w", err)
	}
	e.initialized = true
	return nil
}

// Close restores the terminal state. Not calling it before exit leaves
// the terminal in raw mode. Safe to call multiple times.
func (e *Engine) Close() {
	e.term.Fini()
}

// Terminal exposes the backing terminal, mainly for event polling
func (e *Engine) Terminal() terminal.Terminal {
	return e.term
}

// Size returns the engine's current grid dimensions
func (e *Engine) Size() (int, int) {
	return e.width, e.height
}

// CreateLayer inserts a drawing layer at depth z and returns its
// handle. Higher z draws on top; equal z draws in creation order.
func (e *Engine) CreateLayer(z int) render.LayerIndex {
	return e.queue.CreateLayer(z)
}

// Particles exposes the particle system for spawn calls and tuning
func (e *Engine) Particles() *particle.System {
	return e.particles
}

// SpawnParticles emits one particle burst at (x, y) into a layer
func (e *Engine) SpawnParticles(layer render.LayerIndex, x, y float32, spec *particle.Spec, em *particle.Emitter) {
	e.particles.Spawn(layer, x, y, spec, em)
}

// OverrideBlendColor replaces the backend-detected background used as
// the bottom layer of all source-over blends. Only needed on terminals
// where detection fails.
func (e *Engine) OverrideBlendColor(c Color) {
	e.blendBase = c.Opaque()
	e.blendBaseSet = true
}

// BlendColor returns the active blend base
func (e *Engine) BlendColor() Color {
	return e.blendBase
}

// Resize adjusts the grid. The previous frame is invalidated and the
// next EndFrame emits a full redraw.
func (e *Engine) Resize(width, height int) {
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	e.frames.Resize(width, height)
}

// StartFrame ticks the pacing clock and prepares fresh frame state.
// Call once at the top of each update-loop iteration; draw only
// between StartFrame and EndFrame.
func (e *Engine) StartFrame() {
	e.deltaTime = e.limiter.wait()
	e.counter.update(e.deltaTime)
	e.queue.Clear()
}

// EndFrame updates particles, composes the frame, writes the diff to
// the terminal, and swaps buffers. On a write error the swap is
// skipped so undelivered changes stay pending for the next frame.
func (e *Engine) EndFrame() error {
	e.particles.Update(e.deltaTime)
	e.particles.Emit(e.queue)

	current := e.frames.Current()
	current.Reset(render.CellEmpty)
	render.Compose(current, e.queue, e.blendBase)

	e.frames.Diff(func(x, y int, c render.Cell) {
		e.term.MoveCursor(x, y)
		e.term.WriteCell(c)
	})

	if err := e.term.Flush(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}

	e.frames.Present()
	e.gameTime += e.deltaTime
	return nil
}

// FPS returns the smoothed frames-per-second estimate (EMA)
func (e *Engine) FPS() float32 {
	return e.counter.fps()
}

// DeltaTime returns the duration of the last frame in seconds
func (e *Engine) DeltaTime() float32 {
	return e.deltaTime
}

// GameTime returns seconds of presented frames since Init
func (e *Engine) GameTime() float32 {
	return e.gameTime
}
