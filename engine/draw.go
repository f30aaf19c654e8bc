package engine

import (
	"fmt"

	"github.com/lixenwraith/emberterm/render"
)

// Drawing helpers. All of these are immediate-mode: they enqueue draw
// calls that the compositor consumes at EndFrame. Coordinates are
// terminal columns and rows; octad/twoxel/blocktad helpers accept
// floats for sub-cell precision.
//
// Most terminal fonts are roughly twice as tall as wide. When drawing
// motion that should look isotropic, either double x or halve y before
// drawing.

// Text is styled text: content plus fg, bg, and attribute flags
type Text struct {
	S     string
	Fg    Color
	Bg    Color
	Attrs render.Attr
}

// NewText creates white-on-transparent text
func NewText(s string) Text {
	return Text{S: s, Fg: render.ColorWhite}
}

// WithFg sets the foreground color
func (t Text) WithFg(c Color) Text {
	t.Fg = c
	return t
}

// WithBg sets the background color
func (t Text) WithBg(c Color) Text {
	t.Bg = c
	return t
}

// WithAttrs sets style attributes
func (t Text) WithAttrs(a render.Attr) Text {
	t.Attrs = a
	return t
}

// DrawText draws a plain white text run at (x, y)
func (e *Engine) DrawText(layer render.LayerIndex, x, y int, s string) {
	e.queue.Push(layer, render.TextCall(x, y, s, render.ColorWhite, render.ColorClear, 0))
}

// DrawStyledText draws a styled text run at (x, y)
func (e *Engine) DrawStyledText(layer render.LayerIndex, x, y int, t Text) {
	e.queue.Push(layer, render.TextCall(x, y, t.S, t.Fg, t.Bg, t.Attrs))
}

// DrawRect draws a filled rectangle with the given color
func (e *Engine) DrawRect(layer render.LayerIndex, x, y, w, h int, color Color) {
	e.queue.Push(layer, render.FillCall(x, y, w, h, color))
}

// FillScreen fills the whole grid with the given color
func (e *Engine) FillScreen(layer render.LayerIndex, color Color) {
	e.queue.Push(layer, render.FillCall(0, 0, e.width, e.height, color))
}

// EraseRect restores a rectangle to the terminal default colors and
// deletes its characters
func (e *Engine) EraseRect(layer render.LayerIndex, x, y, w, h int) {
	e.queue.Push(layer, render.EraseCall(x, y, w, h))
}

// DrawCells draws a caller-built rectangular cell array. cells is
// row-major w×h and must stay valid until EndFrame.
func (e *Engine) DrawCells(layer render.LayerIndex, x, y, w, h int, cells []render.Cell) {
	e.queue.Push(layer, render.CellsCall(x, y, w, h, cells))
}

// DrawOctad draws a single braille sub-pixel at float coordinates.
// Octads drawn to the same cell merge; the merged cluster shows the
// color of the last octad drawn.
func (e *Engine) DrawOctad(layer render.LayerIndex, x, y float32, color Color) {
	cellX, cellY, mask := octadAt(x, y)
	e.queue.Push(layer, render.OctadCall(cellX, cellY, color, mask))
}

// DrawOctadMask draws a full 8-bit octad occupancy mask in one cell.
// Bit 0 is the top-left sub-pixel, bit 7 the bottom-right, row-major.
func (e *Engine) DrawOctadMask(layer render.LayerIndex, x, y int, color Color, mask uint8) {
	e.queue.Push(layer, render.OctadCall(x, y, color, mask))
}

// DrawBlocktad draws a single octant-block sub-pixel at float
// coordinates. Blocktads sharing a cell merge like octads. The octant
// characters may be missing from older fonts.
func (e *Engine) DrawBlocktad(layer render.LayerIndex, x, y float32, color Color) {
	cellX, cellY, mask := octadAt(x, y)
	e.queue.Push(layer, render.BlocktadCall(cellX, cellY, color, mask))
}

// DrawTwoxel draws one of the two vertical sub-pixels of a cell at
// float coordinates. Opposing twoxels in one cell merge with fully
// independent colors.
func (e *Engine) DrawTwoxel(layer render.LayerIndex, x, y float32, color Color) {
	cellX := floorInt(x)
	cellY := floorInt(y)
	subY := int(clamp((y-float32(cellY))*2, 0, 1))
	if subY == 0 {
		e.queue.Push(layer, render.TwoxelCall(cellX, cellY, color, render.ColorClear))
	} else {
		e.queue.Push(layer, render.TwoxelCall(cellX, cellY, render.ColorClear, color))
	}
}

// DrawFPSCounter draws the smoothed FPS with default styling
func (e *Engine) DrawFPSCounter(layer render.LayerIndex, x, y int) {
	e.DrawText(layer, x, y, fmt.Sprintf("FPS: %3.0f", e.FPS()))
}

// octadAt converts float cell coordinates to a cell position and a
// single-bit occupancy mask
func octadAt(x, y float32) (int, int, uint8) {
	cellX := floorInt(x)
	cellY := floorInt(y)
	subX := int(clamp((x-float32(cellX))*2, 0, 1))
	subY := int(clamp((y-float32(cellY))*4, 0, 3))
	return cellX, cellY, uint8(1) << uint(subY*2+subX)
}

func floorInt(v float32) int {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return i
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
