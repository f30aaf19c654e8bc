// Particle-benchmark: spawns large particle bursts and records
// seconds-per-frame to frametimes.csv on exit.
//
// Keys: w spawns 100k particles, e spawns 25k, q quits.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/emberterm/engine"
	"github.com/lixenwraith/emberterm/particle"
	"github.com/lixenwraith/emberterm/render"
	"github.com/lixenwraith/emberterm/terminal"
)

const (
	cols = 40
	rows = 20
)

func main() {
	e := engine.New(engine.Config{
		Width:            cols,
		Height:           rows,
		FPSLimit:         240,
		Title:            "particle-benchmark",
		ParticleCapacity: 200_000,
		ParticleAspectY:  0.5,
	})

	base := e.CreateLayer(0)
	sparks := e.CreateLayer(1)

	if err := e.Init(); err != nil {
		log.Fatalf("init: %v", err)
	}
	defer e.Close()

	gradient := render.NewGradient(
		render.GradientStop{T: 0.0, Color: render.ColorWhite},
		render.GradientStop{T: 0.4, Color: render.ColorYellow},
		render.GradientStop{T: 1.0, Color: render.RGBA(200, 40, 20, 255)},
	)
	spec := particle.Spec{
		Color:        particle.FromGradient(gradient),
		SpeedMin:     10,
		SpeedMax:     35,
		Lifetime:     3.0,
		GravityScale: 1.0,
		Drag:         3.0,
	}

	events := make(chan terminal.Event, 16)
	go func() {
		for {
			events <- e.Terminal().PollEvent()
		}
	}()

	frametimes := make([]float32, 0, 200_000)

	for running := true; running; {
		e.StartFrame()

		e.FillScreen(base, render.ColorBlack)
		e.DrawFPSCounter(base, 0, 0)
		e.DrawText(base, 0, 1, fmt.Sprintf("particles: %d", e.Particles().Len()))

		if err := e.EndFrame(); err != nil {
			log.Fatalf("frame: %v", err)
		}
		frametimes = append(frametimes, e.DeltaTime())

		select {
		case ev := <-events:
			switch {
			case ev.Type == terminal.EventKey && (ev.Rune == 'q' || ev.Key == terminal.KeyCtrlC):
				running = false
			case ev.Type == terminal.EventKey && ev.Rune == 'w':
				burst(e, sparks, &spec, 100_000)
			case ev.Type == terminal.EventKey && ev.Rune == 'e':
				burst(e, sparks, &spec, 25_000)
			case ev.Type == terminal.EventResize:
				e.Resize(ev.Width, ev.Height)
			}
		default:
		}
	}

	if err := writeFrametimes("frametimes.csv", frametimes); err != nil {
		log.Printf("frametimes: %v", err)
	}
}

func burst(e *engine.Engine, layer render.LayerIndex, spec *particle.Spec, count int) {
	em := particle.Emitter{Shape: particle.EmitterCircle, Count: count}
	// World y is scaled by the aspect (0.5) at draw time; spawn at rows
	// so the burst lands mid-screen
	e.SpawnParticles(layer, cols/2, rows, spec, &em)
}

func writeFrametimes(path string, times []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, t := range times {
		if _, err := fmt.Fprintf(f, "%g\n", t); err != nil {
			return err
		}
	}
	return nil
}
