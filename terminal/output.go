package terminal

import (
	"bufio"
	"io"
)

// outputWriter drains engine diff streams to the terminal, coalescing
// cursor moves and SGR state. The engine already diffs against the
// previous frame; this layer only minimizes escape bytes per update.
type outputWriter struct {
	writer    *bufio.Writer
	colorMode ColorMode

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    Color
	lastBg    Color
	lastAttr  Attr
	lastValid bool
}

func newOutputWriter(w io.Writer, colorMode ColorMode) *outputWriter {
	return &outputWriter{
		writer:    bufio.NewWriterSize(w, 131072), // 128KB buffer
		colorMode: colorMode,
	}
}

// moveCursor buffers a cursor move, eliding the escape when the target
// is where the cursor already is and using short forward motion within
// a row
func (o *outputWriter) moveCursor(x, y int) {
	if o.cursorValid && x == o.cursorX && y == o.cursorY {
		return
	}
	if o.cursorValid && y == o.cursorY && x > o.cursorX && x-o.cursorX <= 4 {
		writeCursorForward(o.writer, x-o.cursorX)
	} else {
		writeCursorPos(o.writer, x, y)
	}
	o.cursorX = x
	o.cursorY = y
	o.cursorValid = true
}

// writeCell emits one cell at the current cursor position and advances it
func (o *outputWriter) writeCell(c Cell) {
	o.writeStyleCoalesced(c.Fg, c.Bg, c.Attrs)

	r := c.Rune
	if r == 0 {
		r = ' '
	}
	if r < 0x80 {
		o.writer.WriteByte(byte(r))
	} else {
		o.writer.WriteRune(r)
	}
	o.cursorX++
}

func (o *outputWriter) flush() error {
	return o.writer.Flush()
}

// writeStyleCoalesced emits a single combined SGR sequence when style changes
func (o *outputWriter) writeStyleCoalesced(fg, bg Color, attr Attr) {
	fgChanged := !o.lastValid || fg != o.lastFg || (attr&AttrNoFg) != (o.lastAttr&AttrNoFg)
	bgChanged := !o.lastValid || bg != o.lastBg || (attr&AttrNoBg) != (o.lastAttr&AttrNoBg)
	styleAttr := attr & AttrStyle
	attrChanged := !o.lastValid || styleAttr != o.lastAttr&AttrStyle

	if !fgChanged && !bgChanged && !attrChanged {
		return
	}

	w := o.writer

	if attrChanged {
		// Attributes changed: reset and rebuild the full style
		w.Write(csi)
		w.WriteByte('0')
		if styleAttr&AttrBold != 0 {
			w.Write([]byte(";1"))
		}
		if styleAttr&AttrDim != 0 {
			w.Write([]byte(";2"))
		}
		if styleAttr&AttrItalic != 0 {
			w.Write([]byte(";3"))
		}
		if styleAttr&AttrUnderline != 0 {
			w.Write([]byte(";4"))
		}
		if styleAttr&AttrBlink != 0 {
			w.Write([]byte(";5"))
		}
		if styleAttr&AttrReverse != 0 {
			w.Write([]byte(";7"))
		}
		o.writeFgInline(fg, attr)
		o.writeBgInline(bg, attr)
		w.WriteByte('m')
	} else {
		// Only colors changed, emit minimal sequences
		if fgChanged {
			o.writeFgFull(fg, attr)
		}
		if bgChanged {
			o.writeBgFull(bg, attr)
		}
	}

	o.lastFg = fg
	o.lastBg = bg
	o.lastAttr = attr
	o.lastValid = true
}

// fgErased reports whether the fg channel renders as the terminal default
func fgErased(fg Color, attr Attr) bool {
	return attr&AttrNoFg != 0 || fg.A == 0
}

func bgErased(bg Color, attr Attr) bool {
	return attr&AttrNoBg != 0 || bg.A == 0
}

// writeFgInline writes fg color parameters (no CSI prefix, no 'm' suffix)
func (o *outputWriter) writeFgInline(fg Color, attr Attr) {
	w := o.writer
	w.WriteByte(';')
	if fgErased(fg, attr) {
		w.Write([]byte("39"))
		return
	}
	if o.colorMode == ColorModeTrueColor {
		w.Write([]byte("38;2;"))
		writeInt(w, int(fg.R))
		w.WriteByte(';')
		writeInt(w, int(fg.G))
		w.WriteByte(';')
		writeInt(w, int(fg.B))
	} else {
		w.Write([]byte("38;5;"))
		writeInt(w, int(fg.To256()))
	}
}

func (o *outputWriter) writeBgInline(bg Color, attr Attr) {
	w := o.writer
	w.WriteByte(';')
	if bgErased(bg, attr) {
		w.Write([]byte("49"))
		return
	}
	if o.colorMode == ColorModeTrueColor {
		w.Write([]byte("48;2;"))
		writeInt(w, int(bg.R))
		w.WriteByte(';')
		writeInt(w, int(bg.G))
		w.WriteByte(';')
		writeInt(w, int(bg.B))
	} else {
		w.Write([]byte("48;5;"))
		writeInt(w, int(bg.To256()))
	}
}

// writeFgFull writes a complete fg color sequence
func (o *outputWriter) writeFgFull(fg Color, attr Attr) {
	w := o.writer
	if fgErased(fg, attr) {
		w.Write(csiDefaultFg)
		return
	}
	if o.colorMode == ColorModeTrueColor {
		w.Write(csiFgRGB)
		writeInt(w, int(fg.R))
		w.WriteByte(';')
		writeInt(w, int(fg.G))
		w.WriteByte(';')
		writeInt(w, int(fg.B))
		w.WriteByte('m')
	} else {
		w.Write(csiFg256)
		writeInt(w, int(fg.To256()))
		w.WriteByte('m')
	}
}

// writeBgFull writes a complete bg color sequence
func (o *outputWriter) writeBgFull(bg Color, attr Attr) {
	w := o.writer
	if bgErased(bg, attr) {
		w.Write(csiDefaultBg)
		return
	}
	if o.colorMode == ColorModeTrueColor {
		w.Write(csiBgRGB)
		writeInt(w, int(bg.R))
		w.WriteByte(';')
		writeInt(w, int(bg.G))
		w.WriteByte(';')
		writeInt(w, int(bg.B))
		w.WriteByte('m')
	} else {
		w.Write(csiBg256)
		writeInt(w, int(bg.To256()))
		w.WriteByte('m')
	}
}

// clear writes a cleared screen with the specified background
func (o *outputWriter) clear(bg Color) error {
	w := o.writer
	w.Write(csiSGR0)
	o.writeBgFull(bg, 0)
	w.Write(csiClear)

	o.lastValid = false
	o.cursorValid = false
	return w.Flush()
}

// invalidate marks cursor and style state as unknown
func (o *outputWriter) invalidate() {
	o.cursorValid = false
	o.lastValid = false
}
