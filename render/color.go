package render

import (
	"github.com/lixenwraith/emberterm/terminal"
)

// Color is an alias to terminal.Color so composited cells flow to the
// output layer without conversion
type Color = terminal.Color

// Cell and Attr are aliases for the same reason
type Cell = terminal.Cell
type Attr = terminal.Attr

const (
	AttrNone      = terminal.AttrNone
	AttrBold      = terminal.AttrBold
	AttrDim       = terminal.AttrDim
	AttrItalic    = terminal.AttrItalic
	AttrUnderline = terminal.AttrUnderline
	AttrBlink     = terminal.AttrBlink
	AttrReverse   = terminal.AttrReverse
	AttrNoFg      = terminal.AttrNoFg
	AttrNoBg      = terminal.AttrNoBg
	AttrTwoxel    = terminal.AttrTwoxel
	AttrOctad     = terminal.AttrOctad
	AttrBlocktad  = terminal.AttrBlocktad
	AttrStyle     = terminal.AttrStyle
	AttrFormat    = terminal.AttrFormat
)

// CellEmpty is the cleared cell state
var CellEmpty = terminal.CellEmpty

// RGBA constructs a color from channel values
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB constructs an opaque color
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Predefined colors
var (
	ColorClear    = Color{}
	ColorWhite    = RGB(255, 255, 255)
	ColorBlack    = RGB(0, 0, 0)
	ColorRed      = RGB(255, 0, 0)
	ColorGreen    = RGB(0, 255, 0)
	ColorBlue     = RGB(0, 0, 255)
	ColorYellow   = RGB(255, 255, 0)
	ColorCyan     = RGB(0, 255, 255)
	ColorMagenta  = RGB(255, 0, 255)
	ColorOrange   = RGB(255, 165, 0)
	ColorPink     = RGB(255, 192, 203)
	ColorViolet   = RGB(127, 0, 255)
	ColorTeal     = RGB(0, 128, 128)
	ColorGray     = RGB(169, 169, 169)
	ColorDarkGray = RGB(64, 64, 64)
)
