package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// tcellTerminal implements Terminal over a tcell.Screen. It trades the
// zero-alloc ANSI writer for tcell's terminfo coverage; the engine is
// agnostic between the two.
type tcellTerminal struct {
	screen tcell.Screen

	resizeCh    chan ResizeEvent
	syntheticCh chan Event
	background  Color

	cursorX int
	cursorY int

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell creates a Terminal backed by a tcell.Screen. Pass nil to let
// tcell pick the platform screen.
func NewTcell(screen tcell.Screen) (Terminal, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		screen = s
	}
	return &tcellTerminal{
		screen:      screen,
		resizeCh:    make(chan ResizeEvent, 1),
		syntheticCh: make(chan Event, 16),
		background:  Color{0, 0, 0, 255},
	}, nil
}

func (t *tcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	t.initialized = true
	return nil
}

func (t *tcellTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized || t.finalized {
		return
	}
	t.screen.Fini()
	t.finalized = true
}

func (t *tcellTerminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *tcellTerminal) ResizeChan() <-chan ResizeEvent {
	return t.resizeCh
}

func (t *tcellTerminal) ColorMode() ColorMode {
	return ColorModeTrueColor // tcell downsamples internally when needed
}

func (t *tcellTerminal) BackgroundColor() Color {
	return t.background
}

func (t *tcellTerminal) SetTitle(title string) {
	t.screen.SetTitle(title)
}

func (t *tcellTerminal) Clear(bg Color) error {
	st := tcell.StyleDefault.Background(toTcellColor(bg, bg.A == 0))
	t.screen.Fill(' ', st)
	t.screen.Show()
	return nil
}

func (t *tcellTerminal) MoveCursor(x, y int) {
	t.cursorX = x
	t.cursorY = y
}

func (t *tcellTerminal) WriteCell(cell Cell) {
	st := tcell.StyleDefault.
		Foreground(toTcellColor(cell.Fg, cell.Attrs&AttrNoFg != 0 || cell.Fg.A == 0)).
		Background(toTcellColor(cell.Bg, cell.Attrs&AttrNoBg != 0 || cell.Bg.A == 0)).
		Attributes(toTcellAttrs(cell.Attrs))

	r := cell.Rune
	if r == 0 {
		r = ' '
	}
	t.screen.SetContent(t.cursorX, t.cursorY, r, nil, st)
	t.cursorX++
}

func (t *tcellTerminal) Flush() error {
	t.screen.Show()
	return nil
}

func (t *tcellTerminal) PollEvent() Event {
	select {
	case ev := <-t.syntheticCh:
		return ev
	default:
	}

	for {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			return Event{Type: EventResize, Width: w, Height: h}
		case *tcell.EventKey:
			return fromTcellKey(ev)
		case *tcell.EventInterrupt:
			return Event{Type: EventInterrupt}
		case nil:
			return Event{Type: EventInterrupt}
		}
	}
}

func (t *tcellTerminal) PostEvent(ev Event) {
	select {
	case t.syntheticCh <- ev:
		t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	default:
	}
}

func toTcellColor(c Color, erased bool) tcell.Color {
	if erased {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toTcellAttrs(a Attr) tcell.AttrMask {
	var mask tcell.AttrMask
	if a&AttrBold != 0 {
		mask |= tcell.AttrBold
	}
	if a&AttrDim != 0 {
		mask |= tcell.AttrDim
	}
	if a&AttrItalic != 0 {
		mask |= tcell.AttrItalic
	}
	if a&AttrUnderline != 0 {
		mask |= tcell.AttrUnderline
	}
	if a&AttrBlink != 0 {
		mask |= tcell.AttrBlink
	}
	if a&AttrReverse != 0 {
		mask |= tcell.AttrReverse
	}
	return mask
}

func fromTcellKey(ev *tcell.EventKey) Event {
	switch ev.Key() {
	case tcell.KeyRune:
		return Event{Type: EventKey, Key: KeyRune, Rune: ev.Rune()}
	case tcell.KeyEnter:
		return Event{Type: EventKey, Key: KeyEnter}
	case tcell.KeyTab:
		return Event{Type: EventKey, Key: KeyTab}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Type: EventKey, Key: KeyBackspace}
	case tcell.KeyEscape:
		return Event{Type: EventKey, Key: KeyEscape}
	case tcell.KeyUp:
		return Event{Type: EventKey, Key: KeyUp}
	case tcell.KeyDown:
		return Event{Type: EventKey, Key: KeyDown}
	case tcell.KeyLeft:
		return Event{Type: EventKey, Key: KeyLeft}
	case tcell.KeyRight:
		return Event{Type: EventKey, Key: KeyRight}
	case tcell.KeyHome:
		return Event{Type: EventKey, Key: KeyHome}
	case tcell.KeyEnd:
		return Event{Type: EventKey, Key: KeyEnd}
	case tcell.KeyPgUp:
		return Event{Type: EventKey, Key: KeyPgUp}
	case tcell.KeyPgDn:
		return Event{Type: EventKey, Key: KeyPgDn}
	case tcell.KeyDelete:
		return Event{Type: EventKey, Key: KeyDelete}
	case tcell.KeyCtrlC:
		return Event{Type: EventKey, Key: KeyCtrlC}
	case tcell.KeyCtrlD:
		return Event{Type: EventKey, Key: KeyCtrlD}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
