// Hello-world: a colored greeting with a translucent panel behind it.
package main

import (
	"log"

	"github.com/lixenwraith/emberterm/engine"
	"github.com/lixenwraith/emberterm/render"
	"github.com/lixenwraith/emberterm/terminal"
)

func main() {
	e := engine.New(engine.Config{
		Width:    60,
		Height:   20,
		FPSLimit: 60,
		Title:    "hello",
	})

	background := e.CreateLayer(0)
	ui := e.CreateLayer(1)

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

		e.DrawRect(background, 4, 3, 30, 5, render.RGBA(40, 90, 160, 200))
		e.DrawStyledText(ui, 6, 5, engine.NewText("Hello, terminal!").
			WithFg(render.ColorYellow).
			WithAttrs(render.AttrBold))
		e.DrawFPSCounter(ui, 0, 0)

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
