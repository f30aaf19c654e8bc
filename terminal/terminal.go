package terminal

import (
	"fmt"
	"sync"
)

// Attr represents cell attributes (bitmask)
type Attr uint16

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5

	// AttrNoFg and AttrNoBg mark a channel as erased: the cell renders
	// with the terminal's own default color for that channel. Distinct
	// from alpha 0, which keeps whatever was composited underneath.
	AttrNoFg Attr = 1 << 6
	AttrNoBg Attr = 1 << 7

	// Format bits tag sub-cell drawing formats so the compositor can
	// merge same-format glyphs sharing a cell. Not meaningful to set
	// directly; draw-call constructors apply them.
	AttrTwoxel   Attr = 1 << 8
	AttrOctad    Attr = 1 << 9
	AttrBlocktad Attr = 1 << 10
)

// AttrStyle masks only the style bits (excludes erase and format flags)
const AttrStyle Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse

// AttrFormat masks the sub-cell format bits
const AttrFormat Attr = AttrTwoxel | AttrOctad | AttrBlocktad

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Fg    Color
	Bg    Color
	Attrs Attr
}

// CellEmpty is the cleared cell state: a space with both channels
// transparent and no flags set.
var CellEmpty = Cell{Rune: ' '}

// ResizeEvent represents a terminal resize
type ResizeEvent struct {
	Width  int
	Height int
}

// Terminal is the capability set the engine renders through.
// Implementations: the ANSI terminal below and the tcell adapter.
type Terminal interface {
	// Init enters raw mode, alternate screen, hides the cursor and
	// disables auto-wrap
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ResizeChan returns a channel that receives resize events
	ResizeChan() <-chan ResizeEvent

	// ColorMode returns detected color capability
	ColorMode() ColorMode

	// BackgroundColor returns the terminal's detected background color,
	// used as the bottom layer of all alpha blends
	BackgroundColor() Color

	// SetTitle sets the terminal window title
	SetTitle(title string)

	// Clear fills the screen with the specified background color
	Clear(bg Color) error

	// MoveCursor positions the output cursor (0-indexed, buffered)
	MoveCursor(x, y int)

	// WriteCell writes one cell at the current cursor position and
	// advances it. Buffered; nothing reaches the terminal until Flush.
	WriteCell(cell Cell)

	// Flush drains buffered output to the terminal
	Flush() error

	// PollEvent blocks until the next input event
	PollEvent() Event

	// PostEvent injects a synthetic event
	PostEvent(Event)
}

// backendWriter adapts Backend to io.Writer for newOutputWriter.
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ansiTerminal implements Terminal over the platform Backend
type ansiTerminal struct {
	backend Backend

	output      *outputWriter
	input       *inputReader
	resizeCh    chan ResizeEvent
	syntheticCh chan Event

	background Color

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal driving the platform backend directly with
// ANSI sequences. Color mode is detected from the environment unless
// given explicitly.
func New(colorMode ...ColorMode) Terminal {
	b := newBackend()

	var c ColorMode
	if len(colorMode) == 0 {
		c = DetectColorMode()
	} else {
		c = colorMode[0]
	}

	t := &ansiTerminal{
		backend:     b,
		syntheticCh: make(chan Event, 16),
		resizeCh:    make(chan ResizeEvent, 1),
		background:  Color{0, 0, 0, 255},
	}
	t.output = newOutputWriter(backendWriter{b}, c)
	return t
}

func (t *ansiTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	// Query the background before the input reader owns stdin
	if bg, ok := queryBackground(t.backend); ok {
		t.background = bg
	}

	t.input = newInputReader(t.backend)

	t.backend.SetResizeHandler(func(w, h int) {
		// Non-blocking send, keeping only the latest size pending
		select {
		case t.resizeCh <- ResizeEvent{Width: w, Height: h}:
		default:
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- ResizeEvent{Width: w, Height: h}:
			default:
			}
		}
	})

	t.writeRaw(csiAltScreenEnter)
	t.writeRaw(csiCursorHide)

	// DECAWM off: prevents scroll/wrap when writing the bottom-right cell
	t.writeRaw(csiAutoWrapOff)

	t.input.start()

	t.initialized = true
	return nil
}

func (t *ansiTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if t.input != nil {
		t.input.stop()
	}

	t.writeRaw(csiCursorShow)
	t.writeRaw(csiAltScreenExit)
	// Re-enable auto-wrap after leaving the alt screen so the main
	// buffer keeps wrapping
	t.writeRaw(csiAutoWrapOn)
	t.writeRaw(csiSGR0)

	t.backend.Fini()
	t.finalized = true
}

func (t *ansiTerminal) Size() (int, int) {
	return t.backend.Size()
}

func (t *ansiTerminal) ResizeChan() <-chan ResizeEvent {
	return t.resizeCh
}

func (t *ansiTerminal) ColorMode() ColorMode {
	return t.output.colorMode
}

func (t *ansiTerminal) BackgroundColor() Color {
	return t.background
}

func (t *ansiTerminal) SetTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w := t.output.writer
	w.Write(oscTitle)
	w.WriteString(title)
	w.Write(oscEnd)
}

func (t *ansiTerminal) Clear(bg Color) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	return t.output.clear(bg)
}

func (t *ansiTerminal) MoveCursor(x, y int) {
	t.output.moveCursor(x, y)
}

func (t *ansiTerminal) WriteCell(cell Cell) {
	t.output.writeCell(cell)
}

func (t *ansiTerminal) Flush() error {
	return t.output.flush()
}

func (t *ansiTerminal) PollEvent() Event {
	select {
	case ev := <-t.syntheticCh:
		return ev
	default:
	}

	select {
	case ev := <-t.syntheticCh:
		return ev
	case ev := <-t.input.events():
		return ev
	case re := <-t.resizeCh:
		return Event{Type: EventResize, Width: re.Width, Height: re.Height}
	}
}

func (t *ansiTerminal) PostEvent(ev Event) {
	select {
	case t.syntheticCh <- ev:
	default:
		// Channel full, drop
	}
}

func (t *ansiTerminal) writeRaw(data []byte) {
	t.backend.Write(data)
}
