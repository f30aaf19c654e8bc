// Blending-showcase: overlapping translucent rectangles, erase areas,
// and sub-cell formats on separate layers.
package main

import (
	"log"
	"math"

	"github.com/lixenwraith/emberterm/engine"
	"github.com/lixenwraith/emberterm/render"
	"github.com/lixenwraith/emberterm/terminal"
)

func main() {
	e := engine.New(engine.Config{
		Width:    80,
		Height:   24,
		FPSLimit: 60,
		Title:    "blending-showcase",
	})

	back := e.CreateLayer(0)
	mid := e.CreateLayer(1)
	front := e.CreateLayer(2)

	if err := e.Init(); err != nil {
		log.Fatalf("init: %v", err)
	}
	defer e.Close()

	events := make(chan terminal.Event, 16)
	go func() {
		for {
			events <- e.Terminal().PollEvent()
		}
	}()

	for {
		e.StartFrame()
		t := e.GameTime()

		// Static panels
		e.DrawRect(back, 2, 2, 24, 10, render.RGBA(200, 40, 40, 255))
		e.DrawRect(mid, 10, 5, 24, 10, render.RGBA(40, 200, 40, 128))
		e.DrawRect(mid, 18, 8, 24, 10, render.RGBA(40, 40, 200, 128))

		// Text sinking behind a translucent sweep
		e.DrawStyledText(back, 4, 14, engine.NewText("behind the glass").
			WithFg(render.ColorWhite))
		sweep := 4 + int(10*(1+math.Sin(float64(t))))
		e.DrawRect(mid, sweep, 13, 12, 3, render.RGBA(240, 200, 60, 140))

		// Sub-cell formats
		for i := 0; i < 40; i++ {
			fx := 46 + float32(i)/4
			fy := 4 + 3*float32(math.Sin(float64(t)+float64(i)/6))
			e.DrawOctad(front, fx, 8+fy/2, render.ColorCyan)
			e.DrawTwoxel(front, fx, 16+fy/2, render.ColorOrange)
		}

		// Erased window punched through everything
		e.EraseRect(front, 30, 18, 20, 4)
		e.DrawText(front, 31, 19, "erased to default")

		e.DrawFPSCounter(front, 0, 0)

		if err := e.EndFrame(); err != nil {
			log.Fatalf("frame: %v", err)
		}

		select {
		case ev := <-events:
			switch {
			case ev.Type == terminal.EventKey && (ev.Rune == 'q' || ev.Key == terminal.KeyCtrlC):
				return
			case ev.Type == terminal.EventResize:
				e.Resize(ev.Width, ev.Height)
			}
		default:
		}
	}
}
