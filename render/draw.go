package render

import (
	"github.com/mattn/go-runewidth"
)

// DrawKind tags the variant of a DrawCall
type DrawKind uint8

const (
	DrawText DrawKind = iota
	DrawFill
	DrawErase
	DrawCells
	DrawTwoxel
	DrawOctad
	DrawBlocktad
)

// DrawCall is one primitive's pending contribution to the current
// frame. Calls are stored by value in layer queues and normalized into
// per-cell contributions only when the compositor visits them; nothing
// is allocated in between.
type DrawCall struct {
	Kind DrawKind
	X, Y int

	// Fill / Erase / Cells dimensions
	W, H int

	// Text run
	Text string

	Fg    Color
	Bg    Color
	Attrs Attr

	// Twoxel colors
	Top    Color
	Bottom Color

	// Octad / Blocktad occupancy (row-major, bit = subY*2 + subX)
	Mask uint8

	// Cells backing for the Standard variant, row-major W×H.
	// Owned by the caller; must stay valid until end of frame.
	Cells []Cell
}

// TextCall builds a text-run draw call
func TextCall(x, y int, text string, fg, bg Color, attrs Attr) DrawCall {
	return DrawCall{Kind: DrawText, X: x, Y: y, Text: text, Fg: fg, Bg: bg, Attrs: attrs & AttrStyle}
}

// FillCall builds a filled-rectangle draw call
func FillCall(x, y, w, h int, color Color) DrawCall {
	return DrawCall{Kind: DrawFill, X: x, Y: y, W: w, H: h, Bg: color}
}

// EraseCall builds an erase-rectangle draw call: both channels revert
// to the terminal default and glyphs are deleted
func EraseCall(x, y, w, h int) DrawCall {
	return DrawCall{Kind: DrawErase, X: x, Y: y, W: w, H: h, Attrs: AttrNoFg | AttrNoBg}
}

// CellsCall builds a standard rectangular cell-array draw call. cells
// is row-major w×h and stays owned by the caller.
func CellsCall(x, y, w, h int, cells []Cell) DrawCall {
	if len(cells) < w*h {
		panic("render: cell array shorter than w*h")
	}
	return DrawCall{Kind: DrawCells, X: x, Y: y, W: w, H: h, Cells: cells}
}

// TwoxelCall builds a two-pixel draw call for one cell: top and bottom
// colors packed into a half-block glyph
func TwoxelCall(x, y int, top, bottom Color) DrawCall {
	return DrawCall{Kind: DrawTwoxel, X: x, Y: y, Top: top, Bottom: bottom}
}

// OctadCall builds a braille sub-pixel draw call. mask is row-major
// occupancy: bit 0 top-left through bit 7 bottom-right.
func OctadCall(x, y int, fg Color, mask uint8) DrawCall {
	return DrawCall{Kind: DrawOctad, X: x, Y: y, Fg: fg, Mask: mask}
}

// BlocktadCall builds an octant-block sub-pixel draw call with the same
// mask ordering as OctadCall. The octant characters are a recent
// Unicode addition and may be missing from older fonts.
func BlocktadCall(x, y int, fg Color, mask uint8) DrawCall {
	return DrawCall{Kind: DrawBlocktad, X: x, Y: y, Fg: fg, Mask: mask}
}

// EachCell visits the call's cell contributions in row-major order.
// Coordinates may fall outside any particular buffer; the compositor
// clips.
func (d *DrawCall) EachCell(visit func(x, y int, c Cell)) {
	switch d.Kind {
	case DrawText:
		x := d.X
		for _, r := range d.Text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			visit(x, d.Y, Cell{Rune: r, Fg: d.Fg, Bg: d.Bg, Attrs: d.Attrs})
			if w == 2 {
				// Continuation cell: the background carries over; the fg
				// is transparent, so the glyph beneath is kept
				visit(x+1, d.Y, Cell{Rune: ' ', Fg: Color{}, Bg: d.Bg, Attrs: d.Attrs})
			}
			x += w
		}

	case DrawFill:
		cell := Cell{Rune: ' ', Bg: d.Bg}
		for y := d.Y; y < d.Y+d.H; y++ {
			for x := d.X; x < d.X+d.W; x++ {
				visit(x, y, cell)
			}
		}

	case DrawErase:
		cell := Cell{Rune: ' ', Attrs: AttrNoFg | AttrNoBg}
		for y := d.Y; y < d.Y+d.H; y++ {
			for x := d.X; x < d.X+d.W; x++ {
				visit(x, y, cell)
			}
		}

	case DrawCells:
		i := 0
		for y := d.Y; y < d.Y+d.H; y++ {
			for x := d.X; x < d.X+d.W; x++ {
				visit(x, y, d.Cells[i])
				i++
			}
		}

	case DrawTwoxel:
		// A lone pixel rides the fg channel of its half block so that
		// an opposing twoxel can later merge into the same cell. Both
		// pixels at once use fg for top and bg for bottom.
		switch {
		case d.Top.A > 0 && d.Bottom.A == 0:
			visit(d.X, d.Y, Cell{Rune: TwoxelUpper, Fg: d.Top, Attrs: AttrTwoxel})
		case d.Bottom.A > 0 && d.Top.A == 0:
			visit(d.X, d.Y, Cell{Rune: TwoxelLower, Fg: d.Bottom, Attrs: AttrTwoxel})
		default:
			visit(d.X, d.Y, Cell{Rune: TwoxelUpper, Fg: d.Top, Bg: d.Bottom, Attrs: AttrTwoxel})
		}

	case DrawOctad:
		visit(d.X, d.Y, Cell{Rune: OctadRune(d.Mask), Fg: d.Fg, Attrs: AttrOctad})

	case DrawBlocktad:
		visit(d.X, d.Y, Cell{Rune: BlocktadRune(d.Mask), Fg: d.Fg, Attrs: AttrBlocktad})
	}
}
